package device

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/molinar-iot/setup-dashboard/internal/metrics"
)

// maxErrorBody caps how much of a failed response body is kept for logs.
const maxErrorBody = 512

// Timeouts bounds each kind of device call.
type Timeouts struct {
	Validate time.Duration
	Login    time.Duration
	Logout   time.Duration
	Request  time.Duration
}

// DefaultTimeouts mirrors the limits the dashboard has always used.
var DefaultTimeouts = Timeouts{
	Validate: 5 * time.Second,
	Login:    10 * time.Second,
	Logout:   5 * time.Second,
	Request:  30 * time.Second,
}

// Client talks to one or more devices; the base URL is passed per call
// because it depends on the caller's session.
type Client struct {
	http     *http.Client
	timeouts Timeouts
}

// NewClient creates a device client. A nil httpClient uses a client without
// a global timeout; every call sets its own deadline.
func NewClient(timeouts Timeouts, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{http: httpClient, timeouts: timeouts}
}

// ValidateToken asks the device whether token is still a live session.
// It returns (true, nil) on 200 and (false, nil) on any other status.
// Transport failures, including the timeout, come back as errors.
func (c *Client) ValidateToken(ctx context.Context, host, token string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Validate)
	defer cancel()

	resp, err := c.do(ctx, "token-validate", http.MethodGet, endpoint(host, "/api/auth/token-validate", token), nil, "")
	if err != nil {
		return false, err
	}
	defer drain(resp)

	return resp.StatusCode == http.StatusOK, nil
}

// Login exchanges the device password for a session token.
func (c *Client) Login(ctx context.Context, host, password string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Login)
	defer cancel()

	body, err := json.Marshal(loginRequest{Password: password})
	if err != nil {
		return "", fmt.Errorf("login: marshaling request: %w", err)
	}

	resp, err := c.do(ctx, "login", http.MethodPost, endpoint(host, "/api/auth/login", ""), bytes.NewReader(body), "application/json")
	if err != nil {
		return "", err
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return "", fmt.Errorf("login: %w", ErrInvalidPassword)
	case http.StatusNotFound:
		return "", fmt.Errorf("login: %w", ErrEndpointNotFound)
	default:
		return "", statusError("login", resp)
	}

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("login: %w: %v", ErrBadResponse, err)
	}
	if out.Token == "" {
		return "", fmt.Errorf("login: %w: no token in response", ErrBadResponse)
	}
	return out.Token, nil
}

// Logout ends the device-side session. Callers usually ignore the error.
func (c *Client) Logout(ctx context.Context, host, token string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Logout)
	defer cancel()

	resp, err := c.do(ctx, "logout", http.MethodDelete, endpoint(host, "/api/auth/logout", token), nil, "")
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return statusError("logout", resp)
	}
	return nil
}

// ListWiFi runs a station scan on the device and returns what it sees plus
// the networks it has saved.
func (c *Client) ListWiFi(ctx context.Context, host, token string) (*WiFiList, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Request)
	defer cancel()

	resp, err := c.do(ctx, "wifi-list", http.MethodGet, endpoint(host, "/api/wifi/list", token), nil, "")
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if err := expectAuthorized("wifi-list", resp); err != nil {
		return nil, err
	}

	var env wifiListEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("wifi-list: %w: %v", ErrBadResponse, err)
	}
	if env.Data == nil {
		return &WiFiList{}, nil
	}
	return env.Data, nil
}

// ConnectWiFi asks the device to join ssid in station mode.
func (c *Client) ConnectWiFi(ctx context.Context, host, token, ssid, password string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Request)
	defer cancel()

	body, err := json.Marshal(connectRequest{SSID: ssid, Password: password})
	if err != nil {
		return fmt.Errorf("wifi-connect: marshaling request: %w", err)
	}

	resp, err := c.do(ctx, "wifi-connect", http.MethodPost, endpoint(host, "/api/wifi/connect", token), bytes.NewReader(body), "application/json")
	if err != nil {
		return err
	}
	defer drain(resp)

	return expectAuthorized("wifi-connect", resp)
}

// UploadFile writes one file of the web bundle onto the device.
func (c *Client) UploadFile(ctx context.Context, host, path string, content []byte) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Request)
	defer cancel()

	body, err := json.Marshal(uploadFileRequest{
		Path:    path,
		Content: base64.StdEncoding.EncodeToString(content),
	})
	if err != nil {
		return fmt.Errorf("upload-file: marshaling request: %w", err)
	}

	resp, err := c.do(ctx, "upload-file", http.MethodPost, endpoint(host, "/api/upload/ok", ""), bytes.NewReader(body), "application/json")
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError("upload-file", resp)
	}
	return nil
}

// UploadBundle pushes a whole zip to /upload/<id>; the device clears its web
// root and extracts the archive there.
func (c *Client) UploadBundle(ctx context.Context, host, id, filename string, archive io.Reader) (*BundleResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Request)
	defer cancel()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("upload-bundle: creating form file: %w", err)
	}
	if _, err := io.Copy(part, archive); err != nil {
		return nil, fmt.Errorf("upload-bundle: reading archive: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("upload-bundle: closing form: %w", err)
	}

	target := strings.TrimRight(host, "/") + "/upload/" + url.PathEscape(id)
	resp, err := c.do(ctx, "upload-bundle", http.MethodPost, target, &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("upload-bundle", resp)
	}

	var out BundleResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("upload-bundle: %w: %v", ErrBadResponse, err)
	}
	if !out.OK {
		return &out, fmt.Errorf("upload-bundle: device reported failure: %s", out.Error)
	}
	return &out, nil
}

// do sends one request and records it. Transport failures are classified;
// any response, whatever its status, is returned to the caller.
func (c *Client) do(ctx context.Context, op, method, target string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%s: building request: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveDeviceRequest(op, "error", start)
		slog.Debug("device request failed",
			slog.String("op", op),
			slog.String("method", method),
			slog.Any("error", err),
		)
		return nil, classifyTransport(op, err)
	}
	metrics.ObserveDeviceRequest(op, strconv.Itoa(resp.StatusCode/100)+"xx", start)
	return resp, nil
}

// endpoint joins host and path and attaches the token query parameter.
func endpoint(host, path, token string) string {
	u := strings.TrimRight(host, "/") + path
	if token == "" {
		return u
	}
	return u + "?" + url.Values{"token": {token}}.Encode()
}

// expectAuthorized turns the device's token-middleware answers into errors.
func expectAuthorized(op string, resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized, http.StatusBadRequest:
		return fmt.Errorf("%s: %w", op, ErrInvalidToken)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, ErrEndpointNotFound)
	default:
		return statusError(op, resp)
	}
}

func statusError(op string, resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{Op: op, Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
}

// drain discards the rest of the body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
	resp.Body.Close()
}
