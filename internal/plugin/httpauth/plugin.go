// Package httpauth implements an authentication plugin backed by an
// external identity service speaking a small JSON protocol.
package httpauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/res5515/jcommune/internal/plugin"
)

// Config holds connection settings for the identity service
type Config struct {
	// BaseURL is the root of the identity service API
	BaseURL string
	// Timeout bounds each call to the service
	Timeout time.Duration
	// Enabled controls whether the authenticator consults this plugin
	Enabled bool
}

// DefaultConfig returns sensible defaults for the plugin
func DefaultConfig() Config {
	return Config{
		Timeout: 10 * time.Second,
		Enabled: true,
	}
}

// Plugin talks to an external identity provider over HTTP
type Plugin struct {
	baseURL    string
	httpClient *http.Client
	state      plugin.State
}

// Ensure Plugin implements the auth plugin contract
var _ plugin.AuthPlugin = (*Plugin)(nil)

// New creates a new HTTP auth plugin
func New(cfg Config) *Plugin {
	state := plugin.StateDisabled
	if cfg.Enabled {
		state = plugin.StateEnabled
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultConfig().Timeout
	}
	return &Plugin{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		state:      state,
	}
}

// NewWithClient creates a plugin with an existing HTTP client (for testing)
func NewWithClient(baseURL string, client *http.Client, state plugin.State) *Plugin {
	return &Plugin{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: client,
		state:      state,
	}
}

// Name returns the plugin identifier
func (p *Plugin) Name() string {
	return "httpauth"
}

// State returns whether the plugin may be consulted
func (p *Plugin) State() plugin.State {
	return p.state
}

type authRequest struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

type registerRequest struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Email        string `json:"email"`
}

type registerResponse struct {
	Errors []string `json:"errors"`
}

// Authenticate verifies credentials against the identity service.
// A 401 from the service is a denial and yields an empty attribute map.
func (p *Plugin) Authenticate(ctx context.Context, username, passwordHash string) (map[string]string, error) {
	body, err := p.post(ctx, "/authenticate", authRequest{
		Username:     username,
		PasswordHash: passwordHash,
	}, http.StatusUnauthorized)
	if err != nil {
		return nil, err
	}
	if body == nil {
		// Denied
		return map[string]string{}, nil
	}

	attrs := make(map[string]string)
	if err := json.Unmarshal(body, &attrs); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", plugin.ErrUnexpectedProvider, err)
	}
	return attrs, nil
}

// RegisterUser asks the identity service to create the user and returns
// the provider-side validation error codes.
func (p *Plugin) RegisterUser(ctx context.Context, username, passwordHash, email string) ([]string, error) {
	body, err := p.post(ctx, "/users", registerRequest{
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
	}, 0)
	if err != nil {
		return nil, err
	}

	var resp registerResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", plugin.ErrUnexpectedProvider, err)
	}
	return resp.Errors, nil
}

// post performs a JSON POST against the service. deniedStatus, if nonzero,
// names a status that is a negative-but-valid outcome; it yields a nil
// body with a nil error. Any other non-2xx status maps to
// ErrUnexpectedProvider and transport failures map to ErrNoConnection.
func (p *Plugin) post(ctx context.Context, path string, payload any, deniedStatus int) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", plugin.ErrNoConnection, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", plugin.ErrNoConnection, err)
	}

	if deniedStatus != 0 && resp.StatusCode == deniedStatus {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: HTTP %d: %s", plugin.ErrUnexpectedProvider, resp.StatusCode, string(body))
	}
	return body, nil
}
