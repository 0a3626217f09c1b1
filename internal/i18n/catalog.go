package i18n

// Key identifies a localized message.
type Key string

// Shared chrome.
const (
	AppName        Key = "app.name"
	Footer         Key = "app.footer"
	Save           Key = "app.save"
	CheckingAccess Key = "guard.checking_access"
	CheckingAuth   Key = "guard.checking_auth"
	ErrorTitle     Key = "error.title"
	ErrorBack      Key = "error.back"
)

// Landing page.
const (
	LandingTitle      Key = "landing.title"
	LandingSubtitle   Key = "landing.subtitle"
	LandingLogin      Key = "landing.login"
	LandingStepsTitle Key = "landing.steps_title"
	LandingStep1Title Key = "landing.step1.title"
	LandingStep1Desc  Key = "landing.step1.desc"
	LandingStep2Title Key = "landing.step2.title"
	LandingStep2Desc  Key = "landing.step2.desc"
	LandingStep3Title Key = "landing.step3.title"
	LandingStep3Desc  Key = "landing.step3.desc"
)

// Login page and its error taxonomy.
const (
	LoginTitle               Key = "login.title"
	LoginSubtitle            Key = "login.subtitle"
	LoginPasswordLabel       Key = "login.password_label"
	LoginPasswordPlaceholder Key = "login.password_placeholder"
	LoginButton              Key = "login.button"
	LoginLoading             Key = "login.loading"
	LoginBackHome            Key = "login.back_home"
	LoginWiFiMode            Key = "login.wifi_mode"
	LoginIPLabel             Key = "login.ip_label"
	LoginSuccess             Key = "login.success"
	LoginErrPasswordRequired Key = "login.err.password_required"
	LoginErrInvalidIP        Key = "login.err.invalid_ip"
	LoginErrTimeout          Key = "login.err.timeout"
	LoginErrInvalidPassword  Key = "login.err.invalid_password"
	LoginErrEndpointNotFound Key = "login.err.endpoint_not_found"
	LoginErrUnreachable      Key = "login.err.unreachable"
	LoginErrGeneric          Key = "login.err.generic"
	ModeAccessPoint          Key = "mode.access_point"
	ModeStation              Key = "mode.station"
	ModeNone                 Key = "mode.none"
)

// Sidebar.
const (
	MenuDashboard Key = "menu.dashboard"
	MenuWiFi      Key = "menu.wifi"
	MenuSettings  Key = "menu.settings"
	MenuUpdate    Key = "menu.update"
	MenuLogout    Key = "menu.logout"
)

// Logout confirmation.
const (
	LogoutTitle   Key = "logout.title"
	LogoutConfirm Key = "logout.confirm"
	LogoutCancel  Key = "logout.cancel"
)

// Dashboard.
const (
	DashboardTitle    Key = "dashboard.title"
	DashboardSubtitle Key = "dashboard.subtitle"
	DashboardHost     Key = "dashboard.host"
	DashboardMode     Key = "dashboard.mode"
	DashboardIP       Key = "dashboard.ip"
	DashboardLanguage Key = "dashboard.language"
)

// WiFi page.
const (
	WiFiTitle             Key = "wifi.title"
	WiFiSubtitle          Key = "wifi.subtitle"
	WiFiAvailable         Key = "wifi.available"
	WiFiSaved             Key = "wifi.saved"
	WiFiScan              Key = "wifi.scan"
	WiFiScanning          Key = "wifi.scanning"
	WiFiSignal            Key = "wifi.signal"
	WiFiConnect           Key = "wifi.connect"
	WiFiConnecting        Key = "wifi.connecting"
	WiFiConnected         Key = "wifi.connected"
	WiFiAuto              Key = "wifi.auto"
	WiFiLastConnected     Key = "wifi.last_connected"
	WiFiPassword          Key = "wifi.password"
	WiFiEmpty             Key = "wifi.empty"
	WiFiScanFailed        Key = "wifi.scan_failed"
	WiFiConnectOK         Key = "wifi.connect_ok"
	WiFiConnectFailed     Key = "wifi.connect_failed"
	WiFiErrSSIDRequired   Key = "wifi.err.ssid_required"
	WiFiErrPasswordNeeded Key = "wifi.err.password_required"
)

// Settings page.
const (
	SettingsTitle           Key = "settings.title"
	SettingsSubtitle        Key = "settings.subtitle"
	SettingsSaved           Key = "settings.saved"
	TabIdentity             Key = "settings.tab.identity"
	TabNetwork              Key = "settings.tab.network"
	TabWebServer            Key = "settings.tab.webserver"
	TabServerIntegration    Key = "settings.tab.server_integration"
	TabLog                  Key = "settings.tab.log"
	TabUART                 Key = "settings.tab.uart"
	HeadingIdentity         Key = "settings.heading.identity"
	HeadingNetwork          Key = "settings.heading.network"
	HeadingWebServer        Key = "settings.heading.webserver"
	HeadingIntegration      Key = "settings.heading.server_integration"
	HeadingLog              Key = "settings.heading.log"
	HeadingUART             Key = "settings.heading.uart"
	FieldDeviceName         Key = "settings.field.device_name"
	FieldDeviceID           Key = "settings.field.device_id"
	FieldLocation           Key = "settings.field.location"
	FieldDescription        Key = "settings.field.description"
	FieldWiFiMode           Key = "settings.field.wifi_mode"
	FieldSSID               Key = "settings.field.ssid"
	FieldWiFiPassword       Key = "settings.field.wifi_password"
	FieldIPAddress          Key = "settings.field.ip_address"
	FieldPort               Key = "settings.field.port"
	FieldTimeout            Key = "settings.field.timeout"
	FieldHTTPS              Key = "settings.field.https"
	FieldServerURL          Key = "settings.field.server_url"
	FieldAPIKey             Key = "settings.field.api_key"
	FieldSendInterval       Key = "settings.field.send_interval"
	FieldRetryCount         Key = "settings.field.retry_count"
	FieldLogLevel           Key = "settings.field.log_level"
	FieldMaxLogFiles        Key = "settings.field.max_log_files"
	FieldLogFileSize        Key = "settings.field.log_file_size"
	FieldServerLogging      Key = "settings.field.server_logging"
	FieldBaudRate           Key = "settings.field.baud_rate"
	FieldDataBits           Key = "settings.field.data_bits"
	FieldParity             Key = "settings.field.parity"
	FieldStopBits           Key = "settings.field.stop_bits"
	SettingsErrRequired     Key = "settings.err.required"
	SettingsErrInvalidIP    Key = "settings.err.invalid_ip"
	SettingsErrPort         Key = "settings.err.port"
	SettingsErrPositive     Key = "settings.err.positive"
	SettingsErrURL          Key = "settings.err.url"
	SettingsErrRetry        Key = "settings.err.retry"
	SettingsErrChoice       Key = "settings.err.choice"
	SettingsErrUnknownTab   Key = "settings.err.unknown_tab"
	SettingsSecretUnchanged Key = "settings.secret_unchanged"
)

// Update manager (bundle upload).
const (
	UpdateTitle          Key = "update.title"
	UpdateSubtitle       Key = "update.subtitle"
	UpdateFile           Key = "update.file"
	UpdateInclude        Key = "update.include"
	UpdateExclude        Key = "update.exclude"
	UpdateButton         Key = "update.button"
	UpdateDone           Key = "update.done"
	UpdateDoneWithErrors Key = "update.done_with_errors"
	UpdateErrNotZip      Key = "update.err.not_zip"
	UpdateErrTooLarge    Key = "update.err.too_large"
	UpdateErrExpands     Key = "update.err.expands"
	UpdateErrEmpty       Key = "update.err.empty"
	UpdateErrNoSelection Key = "update.err.no_selection"
	UpdateErrCorrupt     Key = "update.err.corrupt"
	UpdateErrNoFile      Key = "update.err.no_file"
	UpdateColumnPath     Key = "update.column.path"
	UpdateColumnSize     Key = "update.column.size"
	UpdateColumnStatus   Key = "update.column.status"
)

var catalog = map[Key]map[Language]string{
	AppName:        {ID: "Molinar", EN: "Molinar"},
	Footer:         {ID: "© 2024 Molinar IoT Setup. Semua hak dilindungi.", EN: "© 2024 Molinar IoT Setup. All rights reserved."},
	Save:           {ID: "Simpan", EN: "Save"},
	CheckingAccess: {ID: "Memverifikasi akses...", EN: "Verifying access..."},
	CheckingAuth:   {ID: "Memeriksa autentikasi...", EN: "Checking authentication..."},
	ErrorTitle:     {ID: "Terjadi kesalahan", EN: "Something went wrong"},
	ErrorBack:      {ID: "Kembali ke Beranda", EN: "Back to Home"},

	LandingTitle:      {ID: "Setup IoT Molinar", EN: "Molinar IoT Setup"},
	LandingSubtitle:   {ID: "Konfigurasi perangkat IoT Anda dengan mudah dan aman", EN: "Configure your IoT devices easily and securely"},
	LandingLogin:      {ID: "Masuk", EN: "Login"},
	LandingStepsTitle: {ID: "Langkah-langkah Setup", EN: "Setup Steps"},
	LandingStep1Title: {ID: "Akses Website", EN: "Access Website"},
	LandingStep1Desc:  {ID: "Buka https://setup.molinar.id dan tunggu hingga halaman sepenuhnya dimuat", EN: "Open https://setup.molinar.id and wait until the page is fully loaded"},
	LandingStep2Title: {ID: "Login ke Sistem", EN: "Login to System"},
	LandingStep2Desc:  {ID: "Klik tombol \"Masuk\" untuk mengakses panel konfigurasi perangkat", EN: "Click the \"Login\" button to access the device configuration panel"},
	LandingStep3Title: {ID: "Pilih Metode WiFi", EN: "Choose WiFi Method"},
	LandingStep3Desc:  {ID: "Pilih antara WiFi Access Point atau WiFi Station (IP dapat diedit) dan masukkan password yang sesuai", EN: "Select between WiFi Access Point or WiFi Station (editable IP) and enter the appropriate password"},

	LoginTitle:               {ID: "Login ke Sistem IoT", EN: "IoT System Login"},
	LoginSubtitle:            {ID: "Masukkan password untuk mengakses sistem", EN: "Enter password to access the system"},
	LoginPasswordLabel:       {ID: "Password", EN: "Password"},
	LoginPasswordPlaceholder: {ID: "Masukkan password", EN: "Enter password"},
	LoginButton:              {ID: "Masuk", EN: "Login"},
	LoginLoading:             {ID: "Menghubungkan...", EN: "Connecting..."},
	LoginBackHome:            {ID: "Kembali ke Beranda", EN: "Back to Home"},
	LoginWiFiMode:            {ID: "Mode WiFi", EN: "WiFi Mode"},
	LoginIPLabel:             {ID: "IP Address Perangkat", EN: "Device IP Address"},
	LoginSuccess:             {ID: "Login berhasil!", EN: "Login successful!"},
	LoginErrPasswordRequired: {ID: "Password tidak boleh kosong", EN: "Password cannot be empty"},
	LoginErrInvalidIP:        {ID: "Format IP Address tidak valid", EN: "Invalid IP address format"},
	LoginErrTimeout:          {ID: "Koneksi timeout. Periksa koneksi jaringan.", EN: "Connection timeout. Check network connection."},
	LoginErrInvalidPassword:  {ID: "Password salah", EN: "Incorrect password"},
	LoginErrEndpointNotFound: {ID: "Endpoint tidak ditemukan.", EN: "Endpoint not found."},
	LoginErrUnreachable:      {ID: "Tidak dapat terhubung ke perangkat. Periksa koneksi jaringan.", EN: "Cannot connect to device. Check network connection."},
	LoginErrGeneric:          {ID: "Terjadi kesalahan saat login", EN: "An error occurred during login"},
	ModeAccessPoint:          {ID: "Access Point", EN: "Access Point"},
	ModeStation:              {ID: "Station", EN: "Station"},
	ModeNone:                 {ID: "Belum dipilih", EN: "Not selected"},

	MenuDashboard: {ID: "Dashboard", EN: "Dashboard"},
	MenuWiFi:      {ID: "Connect WiFi", EN: "Connect WiFi"},
	MenuSettings:  {ID: "Pengaturan", EN: "Settings"},
	MenuUpdate:    {ID: "Update Manager", EN: "Update Manager"},
	MenuLogout:    {ID: "Keluar", EN: "Logout"},

	LogoutTitle:   {ID: "Keluar dari perangkat?", EN: "Log out of the device?"},
	LogoutConfirm: {ID: "Ya, keluar", EN: "Yes, log out"},
	LogoutCancel:  {ID: "Batal", EN: "Cancel"},

	DashboardTitle:    {ID: "Dashboard", EN: "Dashboard"},
	DashboardSubtitle: {ID: "Ringkasan koneksi perangkat", EN: "Device connection summary"},
	DashboardHost:     {ID: "Alamat Perangkat", EN: "Device Address"},
	DashboardMode:     {ID: "Mode WiFi", EN: "WiFi Mode"},
	DashboardIP:       {ID: "IP Address", EN: "IP Address"},
	DashboardLanguage: {ID: "Bahasa", EN: "Language"},

	WiFiTitle:             {ID: "Koneksi WiFi", EN: "WiFi Connection"},
	WiFiSubtitle:          {ID: "Kelola koneksi WiFi dan jaringan tersimpan", EN: "Manage WiFi connections and saved networks"},
	WiFiAvailable:         {ID: "Jaringan Tersedia", EN: "Available Networks"},
	WiFiSaved:             {ID: "Jaringan Tersimpan", EN: "Saved Networks"},
	WiFiScan:              {ID: "Pindai", EN: "Scan"},
	WiFiScanning:          {ID: "Memindai...", EN: "Scanning..."},
	WiFiSignal:            {ID: "Sinyal", EN: "Signal"},
	WiFiConnect:           {ID: "Hubungkan", EN: "Connect"},
	WiFiConnecting:        {ID: "Menghubungkan...", EN: "Connecting..."},
	WiFiConnected:         {ID: "Terhubung", EN: "Connected"},
	WiFiAuto:              {ID: "Otomatis", EN: "Auto"},
	WiFiLastConnected:     {ID: "Terakhir terhubung", EN: "Last connected"},
	WiFiPassword:          {ID: "Password WiFi", EN: "WiFi Password"},
	WiFiEmpty:             {ID: "Tidak ada jaringan ditemukan", EN: "No networks found"},
	WiFiScanFailed:        {ID: "Gagal memindai jaringan WiFi", EN: "WiFi scan failed"},
	WiFiConnectOK:         {ID: "Berhasil terhubung", EN: "Connected successfully"},
	WiFiConnectFailed:     {ID: "Gagal terhubung", EN: "Connection failed"},
	WiFiErrSSIDRequired:   {ID: "SSID tidak boleh kosong", EN: "SSID cannot be empty"},
	WiFiErrPasswordNeeded: {ID: "Password WiFi diperlukan untuk jaringan ini", EN: "A WiFi password is required for this network"},

	SettingsTitle:           {ID: "Pengaturan", EN: "Settings"},
	SettingsSubtitle:        {ID: "Konfigurasi perangkat Molinar", EN: "Molinar device configuration"},
	SettingsSaved:           {ID: "Pengaturan tersimpan", EN: "Settings saved"},
	TabIdentity:             {ID: "Identitas", EN: "Identity"},
	TabNetwork:              {ID: "Jaringan", EN: "Network"},
	TabWebServer:            {ID: "Web Server", EN: "Web Server"},
	TabServerIntegration:    {ID: "Integrasi Server", EN: "Server Integration"},
	TabLog:                  {ID: "Log", EN: "Log"},
	TabUART:                 {ID: "UART", EN: "UART"},
	HeadingIdentity:         {ID: "Informasi Perangkat", EN: "Device Information"},
	HeadingNetwork:          {ID: "Konfigurasi Jaringan", EN: "Network Configuration"},
	HeadingWebServer:        {ID: "Konfigurasi Web Server", EN: "Web Server Configuration"},
	HeadingIntegration:      {ID: "Integrasi Server", EN: "Server Integration"},
	HeadingLog:              {ID: "Konfigurasi Log", EN: "Log Configuration"},
	HeadingUART:             {ID: "Konfigurasi UART", EN: "UART Configuration"},
	FieldDeviceName:         {ID: "Nama Perangkat", EN: "Device Name"},
	FieldDeviceID:           {ID: "ID Perangkat", EN: "Device ID"},
	FieldLocation:           {ID: "Lokasi", EN: "Location"},
	FieldDescription:        {ID: "Deskripsi", EN: "Description"},
	FieldWiFiMode:           {ID: "Mode WiFi", EN: "WiFi Mode"},
	FieldSSID:               {ID: "SSID", EN: "SSID"},
	FieldWiFiPassword:       {ID: "Password WiFi", EN: "WiFi Password"},
	FieldIPAddress:          {ID: "IP Address", EN: "IP Address"},
	FieldPort:               {ID: "Port", EN: "Port"},
	FieldTimeout:            {ID: "Timeout (detik)", EN: "Timeout (seconds)"},
	FieldHTTPS:              {ID: "Aktifkan HTTPS", EN: "Enable HTTPS"},
	FieldServerURL:          {ID: "URL Server", EN: "Server URL"},
	FieldAPIKey:             {ID: "API Key", EN: "API Key"},
	FieldSendInterval:       {ID: "Interval Kirim (detik)", EN: "Send Interval (seconds)"},
	FieldRetryCount:         {ID: "Retry Count", EN: "Retry Count"},
	FieldLogLevel:           {ID: "Level Log", EN: "Log Level"},
	FieldMaxLogFiles:        {ID: "Maksimal File Log", EN: "Max Log Files"},
	FieldLogFileSize:        {ID: "Ukuran File (KB)", EN: "File Size (KB)"},
	FieldServerLogging:      {ID: "Aktifkan Log ke Server", EN: "Enable Server Logging"},
	FieldBaudRate:           {ID: "Baud Rate", EN: "Baud Rate"},
	FieldDataBits:           {ID: "Data Bits", EN: "Data Bits"},
	FieldParity:             {ID: "Parity", EN: "Parity"},
	FieldStopBits:           {ID: "Stop Bits", EN: "Stop Bits"},
	SettingsErrRequired:     {ID: "wajib diisi", EN: "is required"},
	SettingsErrInvalidIP:    {ID: "harus berupa IPv4 yang valid", EN: "must be a valid IPv4 address"},
	SettingsErrPort:         {ID: "harus antara 1 dan 65535", EN: "must be between 1 and 65535"},
	SettingsErrPositive:     {ID: "harus lebih dari 0", EN: "must be greater than 0"},
	SettingsErrURL:          {ID: "harus berupa URL http atau https", EN: "must be an http or https URL"},
	SettingsErrRetry:        {ID: "harus antara 0 dan 10", EN: "must be between 0 and 10"},
	SettingsErrChoice:       {ID: "pilihan tidak valid", EN: "is not a valid choice"},
	SettingsErrUnknownTab:   {ID: "Tab tidak dikenal", EN: "Unknown settings tab"},
	SettingsSecretUnchanged: {ID: "Kosongkan untuk mempertahankan nilai lama", EN: "Leave empty to keep the current value"},

	UpdateTitle:          {ID: "Update Manager", EN: "Update Manager"},
	UpdateSubtitle:       {ID: "Unggah paket ZIP web ke perangkat", EN: "Upload the web ZIP bundle to the device"},
	UpdateFile:           {ID: "File ZIP", EN: "ZIP file"},
	UpdateInclude:        {ID: "Sertakan (pola glob, pisahkan dengan koma)", EN: "Include (glob patterns, comma separated)"},
	UpdateExclude:        {ID: "Kecualikan (pola glob, pisahkan dengan koma)", EN: "Exclude (glob patterns, comma separated)"},
	UpdateButton:         {ID: "Mulai Upload", EN: "Start Upload"},
	UpdateDone:           {ID: "Upload selesai! %d file berhasil diupload.", EN: "Upload finished! %d files uploaded."},
	UpdateDoneWithErrors: {ID: "Upload selesai dengan %d error. %d file berhasil, %d file gagal.", EN: "Upload finished with %d errors. %d files succeeded, %d files failed."},
	UpdateErrNotZip:      {ID: "Error: File harus berformat ZIP!", EN: "Error: File must be a ZIP archive!"},
	UpdateErrTooLarge:    {ID: "Error: File ZIP terlalu besar! Maksimal 100MB.", EN: "Error: ZIP file too large! Maximum 100MB."},
	UpdateErrExpands:     {ID: "Error: Isi file ZIP terlalu besar setelah diekstrak.", EN: "Error: ZIP contents are too large once extracted."},
	UpdateErrEmpty:       {ID: "Error: File ZIP kosong atau tidak mengandung file!", EN: "Error: ZIP file is empty or contains no files!"},
	UpdateErrNoSelection: {ID: "Error: Tidak ada file yang dipilih untuk diupload!", EN: "Error: No files selected for upload!"},
	UpdateErrCorrupt:     {ID: "Error: Gagal memproses file ZIP. Pastikan file tidak corrupt.", EN: "Error: Failed to process ZIP file. Make sure it is not corrupt."},
	UpdateErrNoFile:      {ID: "Error: Pilih file ZIP terlebih dahulu.", EN: "Error: Choose a ZIP file first."},
	UpdateColumnPath:     {ID: "Path", EN: "Path"},
	UpdateColumnSize:     {ID: "Ukuran", EN: "Size"},
	UpdateColumnStatus:   {ID: "Status", EN: "Status"},
}
