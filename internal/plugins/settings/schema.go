package settings

import (
	"github.com/molinar-iot/setup-dashboard/internal/i18n"
)

// fieldKind is the form control a field renders as.
type fieldKind string

const (
	kindText     fieldKind = "text"
	kindTextarea fieldKind = "textarea"
	kindPassword fieldKind = "password"
	kindNumber   fieldKind = "number"
	kindURL      fieldKind = "url"
	kindSelect   fieldKind = "select"
	kindCheckbox fieldKind = "checkbox"
)

// option is one select choice. An empty label shows the value.
type option struct {
	value string
	label i18n.Key
}

// field describes one setting: how it renders, its default, and how it
// is checked.
type field struct {
	name        string
	label       i18n.Key
	kind        fieldKind
	placeholder string
	def         string
	options     []option
	required    bool
	secret      bool
	check       func(string) i18n.Key
}

type tabSchema struct {
	label   i18n.Key
	heading i18n.Key
	fields  []field
}

func plain(values ...string) []option {
	out := make([]option, len(values))
	for i, v := range values {
		out[i] = option{value: v}
	}
	return out
}

var schema = map[Tab]tabSchema{
	TabIdentity: {
		label:   i18n.TabIdentity,
		heading: i18n.HeadingIdentity,
		fields: []field{
			{name: "device_name", label: i18n.FieldDeviceName, kind: kindText, placeholder: "Molinar IoT Device", required: true},
			{name: "device_id", label: i18n.FieldDeviceID, kind: kindText, placeholder: "MOL-001", required: true},
			{name: "location", label: i18n.FieldLocation, kind: kindText},
			{name: "description", label: i18n.FieldDescription, kind: kindTextarea},
		},
	},
	TabNetwork: {
		label:   i18n.TabNetwork,
		heading: i18n.HeadingNetwork,
		fields: []field{
			{name: "wifi_mode", label: i18n.FieldWiFiMode, kind: kindSelect, def: "ap", required: true, options: []option{
				{value: "ap", label: i18n.ModeAccessPoint},
				{value: "station", label: i18n.ModeStation},
			}},
			{name: "ssid", label: i18n.FieldSSID, kind: kindText, placeholder: "Molinar-IoT", required: true},
			{name: "wifi_password", label: i18n.FieldWiFiPassword, kind: kindPassword, placeholder: "********", secret: true},
			{name: "ip_address", label: i18n.FieldIPAddress, kind: kindText, placeholder: "192.168.4.1", check: checkIPv4},
		},
	},
	TabWebServer: {
		label:   i18n.TabWebServer,
		heading: i18n.HeadingWebServer,
		fields: []field{
			{name: "port", label: i18n.FieldPort, kind: kindNumber, placeholder: "80", def: "80", required: true, check: checkPort},
			{name: "timeout", label: i18n.FieldTimeout, kind: kindNumber, placeholder: "30", def: "30", required: true, check: checkPositive},
			{name: "https", label: i18n.FieldHTTPS, kind: kindCheckbox, def: "false"},
		},
	},
	TabServerIntegration: {
		label:   i18n.TabServerIntegration,
		heading: i18n.HeadingIntegration,
		fields: []field{
			{name: "server_url", label: i18n.FieldServerURL, kind: kindURL, placeholder: "https://api.molinar.id", check: checkHTTPURL},
			{name: "api_key", label: i18n.FieldAPIKey, kind: kindPassword, secret: true},
			{name: "send_interval", label: i18n.FieldSendInterval, kind: kindNumber, placeholder: "60", def: "60", required: true, check: checkPositive},
			{name: "retry_count", label: i18n.FieldRetryCount, kind: kindNumber, placeholder: "3", def: "3", required: true, check: checkRetry},
		},
	},
	TabLog: {
		label:   i18n.TabLog,
		heading: i18n.HeadingLog,
		fields: []field{
			{name: "log_level", label: i18n.FieldLogLevel, kind: kindSelect, def: "info", required: true, options: plain("debug", "info", "warning", "error")},
			{name: "max_log_files", label: i18n.FieldMaxLogFiles, kind: kindNumber, placeholder: "10", def: "10", required: true, check: checkPositive},
			{name: "log_file_size", label: i18n.FieldLogFileSize, kind: kindNumber, placeholder: "1024", def: "1024", required: true, check: checkPositive},
			{name: "server_logging", label: i18n.FieldServerLogging, kind: kindCheckbox, def: "false"},
		},
	},
	TabUART: {
		label:   i18n.TabUART,
		heading: i18n.HeadingUART,
		fields: []field{
			{name: "baud_rate", label: i18n.FieldBaudRate, kind: kindSelect, def: "115200", required: true, options: plain("9600", "19200", "38400", "57600", "115200")},
			{name: "data_bits", label: i18n.FieldDataBits, kind: kindSelect, def: "8", required: true, options: plain("7", "8")},
			{name: "parity", label: i18n.FieldParity, kind: kindSelect, def: "none", required: true, options: plain("none", "even", "odd")},
			{name: "stop_bits", label: i18n.FieldStopBits, kind: kindSelect, def: "1", required: true, options: plain("1", "2")},
		},
	},
}

// defaults returns every field of t at its default value.
func defaults(t Tab) map[string]string {
	out := make(map[string]string, len(schema[t].fields))
	for _, f := range schema[t].fields {
		out[f.name] = f.def
	}
	return out
}
