// Package transport provides the authenticated HTTP client for the VideoTube
// backend, with cookie-based credentials, client-side rate limiting, and
// transparent access-token refresh on authorization failure.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// Backend endpoints with special treatment in the 401 path. A 401 from
// either must not trigger a refresh attempt.
const (
	refreshPath = "/users/refresh-token"
	logoutPath  = "/users/logout"
)

// Config holds HTTP client configuration.
type Config struct {
	// Timeout for individual HTTP requests.
	Timeout time.Duration

	// UserAgent for HTTP requests.
	UserAgent string

	// RequestsPerSecond caps outbound request rate (0 disables limiting).
	RequestsPerSecond float64

	// Burst is the token bucket burst size.
	Burst int

	// CookieFile persists session cookies across processes so a login in
	// one run authenticates the next. Empty disables persistence.
	CookieFile string

	// Transport configures the connection pool.
	Transport TransportConfig
}

// TransportConfig configures the HTTP transport (connection pooling).
type TransportConfig struct {
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	MaxConnsPerHost     int
	IdleConnTimeout     time.Duration
	ForceAttemptHTTP2   bool
}

// DefaultConfig returns sensible defaults for the client configuration.
func DefaultConfig() *Config {
	return &Config{
		Timeout:           30 * time.Second,
		UserAgent:         "videotube/1.0",
		RequestsPerSecond: 10,
		Burst:             20,
		Transport: TransportConfig{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			MaxConnsPerHost:     20,
			IdleConnTimeout:     90 * time.Second,
			ForceAttemptHTTP2:   true,
		},
	}
}

// Client sends credentialed requests to the backend and recovers from an
// expired access token at most once per request. Credentials travel only as
// HTTP-only cookies managed by the jar; the client never reads or writes
// them directly.
type Client struct {
	base       *http.Client
	baseURL    string
	cookieURL  *url.URL
	cookieFile string
	config     *Config
	limiter    *rate.Limiter
	refresh    singleflight.Group
	log        zerolog.Logger

	mu             sync.Mutex
	sessionExpired func()
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, cfg *Config, log zerolog.Logger) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	base := &http.Client{
		Timeout: cfg.Timeout,
		Jar:     jar,
		Transport: &http.Transport{
			MaxIdleConns:        cfg.Transport.MaxIdleConns,
			MaxIdleConnsPerHost: cfg.Transport.MaxIdleConnsPerHost,
			MaxConnsPerHost:     cfg.Transport.MaxConnsPerHost,
			IdleConnTimeout:     cfg.Transport.IdleConnTimeout,
			ForceAttemptHTTP2:   cfg.Transport.ForceAttemptHTTP2,
		},
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	c := &Client{
		base:       base,
		baseURL:    strings.TrimRight(u.String(), "/"),
		cookieURL:  u,
		cookieFile: cfg.CookieFile,
		config:     cfg,
		limiter:    limiter,
		log:        log,
	}
	if c.cookieFile != "" {
		if err := c.loadCookies(); err != nil {
			log.Warn().Err(err).Str("file", c.cookieFile).Msg("cookie restore failed, starting unauthenticated")
		}
	}
	return c, nil
}

// OnSessionExpired registers the callback invoked when the refresh protocol
// gives up, i.e. the session is irrecoverably invalid.
func (c *Client) OnSessionExpired(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionExpired = fn
}

// Get performs a GET request and decodes the envelope data into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.send(ctx, http.MethodGet, path, nil, "", out, false)
}

// Post performs a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	body, contentType, err := encodeJSON(in)
	if err != nil {
		return err
	}
	return c.send(ctx, http.MethodPost, path, body, contentType, out, false)
}

// Patch performs a PATCH request with an optional JSON body.
func (c *Client) Patch(ctx context.Context, path string, in, out any) error {
	body, contentType, err := encodeJSON(in)
	if err != nil {
		return err
	}
	return c.send(ctx, http.MethodPatch, path, body, contentType, out, false)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.send(ctx, http.MethodDelete, path, nil, "", nil, false)
}

// PostForm performs a POST request with a multipart form body.
func (c *Client) PostForm(ctx context.Context, path string, form *Form, out any) error {
	body, contentType, err := form.Encode()
	if err != nil {
		return err
	}
	return c.send(ctx, http.MethodPost, path, body, contentType, out, false)
}

// PatchForm performs a PATCH request with a multipart form body.
func (c *Client) PatchForm(ctx context.Context, path string, form *Form, out any) error {
	body, contentType, err := form.Encode()
	if err != nil {
		return err
	}
	return c.send(ctx, http.MethodPatch, path, body, contentType, out, false)
}

// send issues one request. The retried flag is per-call request metadata: a
// request may be resent at most once after a successful token refresh, so a
// second 401 cannot loop.
func (c *Client) send(ctx context.Context, method, path string, body []byte, contentType string, out any, retried bool) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("X-Request-Id", reqID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.base.Do(req)
	if err != nil {
		c.log.Debug().Str("request_id", reqID).Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return fmt.Errorf("%s %s: %w: %v", method, path, ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	c.log.Debug().
		Str("request_id", reqID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("request")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return decodeEnvelope(respBody, out)
	}

	if resp.StatusCode == http.StatusUnauthorized && !retried && !refreshExempt(path) {
		if err := c.refreshToken(ctx); err != nil {
			c.log.Warn().Str("path", path).Err(err).Msg("token refresh failed, session expired")
			c.expireSession()
			return newAPIError(http.StatusUnauthorized, "session expired")
		}
		return c.send(ctx, method, path, body, contentType, out, true)
	}

	return newAPIError(resp.StatusCode, envelopeMessage(respBody))
}

// refreshToken rotates the access token. Concurrent callers are coalesced
// into a single in-flight refresh call that runs detached from any one
// caller's cancellation.
func (c *Client) refreshToken(ctx context.Context) error {
	_, err, shared := c.refresh.Do(refreshPath, func() (any, error) {
		// The flight serves every coalesced caller, so it must not be
		// aborted when the caller that happened to start it cancels.
		req, err := http.NewRequestWithContext(context.WithoutCancel(ctx), http.MethodPost, c.baseURL+refreshPath, nil)
		if err != nil {
			return nil, fmt.Errorf("build refresh request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.config.UserAgent)

		c.log.Warn().Msg("access token expired, refreshing")
		resp, err := c.base.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, newAPIError(resp.StatusCode, envelopeMessage(body))
		}
		return nil, nil
	})
	if shared {
		c.log.Debug().Msg("refresh coalesced with in-flight call")
	}
	return err
}

func (c *Client) expireSession() {
	c.mu.Lock()
	fn := c.sessionExpired
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// refreshExempt reports whether a 401 from the given path must not trigger
// the refresh protocol.
func refreshExempt(path string) bool {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return path == logoutPath || path == refreshPath
}

// Close releases idle connections and, when a cookie file is configured,
// persists the session cookies for the next run.
func (c *Client) Close() error {
	c.base.CloseIdleConnections()
	if c.cookieFile != "" {
		return c.saveCookies()
	}
	return nil
}

// envelope is the uniform response wrapper used by every endpoint.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// decodeEnvelope unwraps the data payload of a success response into out.
func decodeEnvelope(body []byte, out any) error {
	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

// envelopeMessage extracts the error message from a failure body, if any.
func envelopeMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return env.Message
}

// encodeJSON marshals in to a JSON body. A nil input produces no body.
func encodeJSON(in any) ([]byte, string, error) {
	if in == nil {
		return nil, "", nil
	}
	body, err := json.Marshal(in)
	if err != nil {
		return nil, "", fmt.Errorf("encode request body: %w", err)
	}
	return body, "application/json", nil
}
