package jsonrpc

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Connection constants.
const (
	// PathJSONRPC is the hub's JSON-RPC endpoint.
	PathJSONRPC = "/api/homematic.cgi"

	// ParamSessionID is the reserved params key carrying the session id.
	ParamSessionID = "_session_id_"

	// DefaultTimeout bounds a single hub round-trip.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxConnections caps concurrent sockets to the hub.
	DefaultMaxConnections = 3

	// tlsMinVersion is the minimum TLS version for https endpoints.
	tlsMinVersion = tls.VersionTLS12
)

// Session methods on the hub.
const (
	methodLogin  = "Session.login"
	methodRenew  = "Session.renew"
	methodLogout = "Session.logout"
)

// Config holds the connection settings of one hub.
type Config struct {
	Host     string
	Port     int // 0 means scheme default
	Username string
	Password string

	// TLS selects https. VerifyTLS enables certificate and hostname checks.
	TLS       bool
	VerifyTLS bool

	// Timeout bounds every request. Default: 30s.
	Timeout time.Duration

	// MaxConnections caps the owned connection pool. Default: 3.
	// Ignored when HTTPClient is set.
	MaxConnections int

	// HTTPClient is an optional shared client. When nil the Client builds
	// and owns its own pooled client.
	HTTPClient *http.Client
}

// SessionState is the state of the hub session.
type SessionState int

// Session states.
const (
	LoggedOut SessionState = iota
	LoggedIn
)

// String returns the state name.
func (s SessionState) String() string {
	if s == LoggedIn {
		return "logged_in"
	}
	return "logged_out"
}

// Session is a snapshot of the session state. ID is empty when logged out.
type Session struct {
	State SessionState
	ID    string
}

// Logger defines the logging interface used by the Client.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Client owns one JSON-RPC session against a hub.
//
// Every hub failure (transport, HTTP status, malformed body, rejected login)
// is returned as a Response with a non-nil Error; no method returns a Go
// error or panics on hub misbehaviour.
//
// Thread Safety:
//   - All methods are safe for concurrent use.
//   - Session transitions (login, renew, logout) are serialised.
type Client struct {
	cfg            Config
	url            string
	httpClient     *http.Client
	ownsHTTPClient bool

	session   Session
	sessionMu sync.Mutex

	logger Logger
}

// New creates a Client for the hub described by cfg.
// No network traffic happens until the first call.
//
// Parameters:
//   - cfg: Hub address and credentials; HTTPClient overrides the built-in transport
//
// Returns:
//   - *Client: Logged-out client ready for Call
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxConnections <= 0 {
		cfg.MaxConnections = DefaultMaxConnections
	}

	c := &Client{
		cfg:    cfg,
		url:    buildURL(cfg),
		logger: noopLogger{},
	}

	if cfg.HTTPClient != nil {
		c.httpClient = cfg.HTTPClient
	} else {
		c.httpClient = newHTTPClient(cfg)
		c.ownsHTTPClient = true
	}

	return c
}

// newHTTPClient builds the owned, pool-limited HTTP client.
func newHTTPClient(cfg Config) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxConnsPerHost = cfg.MaxConnections
	transport.MaxIdleConnsPerHost = cfg.MaxConnections
	if cfg.TLS {
		transport.TLSClientConfig = &tls.Config{
			MinVersion: tlsMinVersion,
			// #nosec G402 -- CCUs ship self-signed certificates; verification is opt-in
			InsecureSkipVerify: !cfg.VerifyTLS,
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}
}

// buildURL returns the JSON-RPC endpoint URL.
func buildURL(cfg Config) string {
	scheme := "http://"
	if cfg.TLS {
		scheme = "https://"
	}
	host := cfg.Host
	if cfg.Port != 0 {
		host = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	}
	return scheme + host + PathJSONRPC
}

// SetLogger sets the logger for the client. Call before first use.
func (c *Client) SetLogger(logger Logger) {
	c.logger = logger
}

// URL returns the JSON-RPC endpoint this client posts to.
func (c *Client) URL() string {
	return c.url
}

// Session returns a snapshot of the current session.
func (c *Client) Session() Session {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()
	return c.session
}

// IsActivated reports whether a session id is held.
func (c *Client) IsActivated() bool {
	return c.Session().State == LoggedIn
}

// LoginOrRenew logs in when no session is held and renews it otherwise.
// It reports whether the client now holds a usable session id.
func (c *Client) LoginOrRenew(ctx context.Context) bool {
	return c.loginOrRenew(ctx) != ""
}

// loginOrRenew performs the session transition and returns the resulting id.
func (c *Client) loginOrRenew(ctx context.Context) string {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()

	var id string
	if c.session.State == LoggedIn {
		id = c.renew(ctx, c.session.ID)
	} else {
		id = c.login(ctx)
	}

	if id == "" {
		c.session = Session{}
		return ""
	}
	c.session = Session{State: LoggedIn, ID: id}
	return id
}

// login posts the credentials and returns the new session id, or "" on failure.
func (c *Client) login(ctx context.Context) string {
	resp := c.post(ctx, "", methodLogin, Params{
		"username": c.cfg.Username,
		"password": c.cfg.Password,
	}, false)

	if resp.OK() && resultTruthy(resp.Result) {
		if id, ok := resultString(resp.Result); ok && id != "" {
			c.logger.Debug("json-rpc session opened")
			return id
		}
	}

	c.logger.Warn("json-rpc login: unable to open session", "error", resp.ErrorText())
	return ""
}

// renew refreshes sessionID. Any failure falls back to a fresh login.
//
// The hub answers a successful renew with either the session id or plain
// true; in the latter case the existing id stays valid.
func (c *Client) renew(ctx context.Context, sessionID string) string {
	resp := c.post(ctx, sessionID, methodRenew, Params{ParamSessionID: sessionID}, true)

	if resp.OK() && resultTruthy(resp.Result) {
		if id, ok := resultString(resp.Result); ok && id != "" {
			return id
		}
		return sessionID
	}

	c.logger.Debug("json-rpc renew rejected, logging in again", "error", resp.ErrorText())
	return c.login(ctx)
}

// CallOptions tune a single Call.
//
// The zero value includes the session id in params and closes the session
// after the call.
type CallOptions struct {
	// KeepSession reuses (and renews) the client's session and leaves it open.
	// When false the call runs in a one-shot session: login, call, logout.
	KeepSession bool

	// OmitSessionID leaves the session id out of params.
	OmitSessionID bool
}

// Call invokes method on the hub and returns its response.
//
// Missing credentials short-circuit with a structured error before any
// network traffic. A failed login returns
// {"error": "Unable to open session.", "result": {}} without issuing the call.
func (c *Client) Call(ctx context.Context, method string, params Params, opts CallOptions) Response {
	if resp, ok := c.checkCredentials(method); !ok {
		return resp
	}

	var sessionID string
	if opts.KeepSession {
		sessionID = c.loginOrRenew(ctx)
	} else {
		sessionID = c.login(ctx)
	}

	if sessionID == "" {
		c.logger.Error("json-rpc call: unable to open session", "method", method)
		return errorResponse(MsgUnableOpenSession)
	}

	resp := c.post(ctx, sessionID, method, params, !opts.OmitSessionID)

	if !opts.KeepSession {
		c.logout(ctx, sessionID)
	}

	return resp
}

// Logout closes the held session. Failures are logged, never returned.
func (c *Client) Logout(ctx context.Context) {
	c.sessionMu.Lock()
	sessionID := c.session.ID
	c.session = Session{}
	c.sessionMu.Unlock()

	c.logout(ctx, sessionID)
}

// logout ends sessionID on the hub (best effort).
func (c *Client) logout(ctx context.Context, sessionID string) {
	if sessionID == "" {
		c.logger.Warn("json-rpc logout: not logged in, not logging out")
		return
	}

	resp := c.post(ctx, sessionID, methodLogout, Params{ParamSessionID: sessionID}, true)
	if !resp.OK() {
		c.logger.Warn("json-rpc logout error", "error", resp.ErrorText())
	}
}

// Close logs out and releases idle connections of an owned HTTP client.
// An injected HTTP client is left untouched.
func (c *Client) Close(ctx context.Context) {
	if c.IsActivated() {
		c.Logout(ctx)
	}
	if c.ownsHTTPClient {
		c.httpClient.CloseIdleConnections()
	}
}

// checkCredentials returns the structured error for missing credentials.
func (c *Client) checkCredentials(method string) (Response, bool) {
	if c.cfg.Username == "" {
		c.logger.Warn("json-rpc: no username set", "method", method)
		return errorResponse(MsgNoUsername), false
	}
	if c.cfg.Password == "" {
		c.logger.Warn("json-rpc: no password set", "method", method)
		return errorResponse(MsgNoPassword), false
	}
	return Response{}, true
}
