package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SessionSource is the read-only session view the pipeline consults on
// every call. It is re-queried per call, never cached: a token expiring
// between two calls affects only the later one.
type SessionSource interface {
	Token() string
	Authenticated() bool
}

// Config fixes the wire conventions of the backend.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string

	// Anti-forgery token: read from this cookie, replayed in this header.
	CSRFCookieName string
	CSRFHeaderName string

	// AuthScheme prefixes the bearer credential in the Authorization
	// header. The dashboard backend uses DRF's "Token" scheme.
	AuthScheme string

	// RedactionMarker replaces the Authorization value in error records.
	RedactionMarker string

	// PublicEndpoints are matched by substring against the request path;
	// matching calls skip every authentication check.
	PublicEndpoints []string

	// SearchEndpoint is public but carries the bearer header when a live
	// session exists, so results can be personalized.
	SearchEndpoint string

	// LoginEndpoint identifies login calls, which are exempt from the
	// forced-logout classification: a failed login must never terminate a
	// session that does not exist.
	LoginEndpoint string

	// DisabledAccountMarkers are the backend detail strings that mark a 403
	// as "account disabled" rather than a plain permission failure.
	DisabledAccountMarkers []string
}

// Metrics carries the counter IDs the pipeline increments via Hooks.
// The IDs are opaque here; the root package owns the registry.
type Metrics struct {
	Unauthorized    int
	AccountDisabled int
	Validation      int
	ServerError     int
	RejectedLocally int
	RequestFailed   int
}

// Hooks wires the pipeline to the session owner without importing it.
type Hooks struct {
	// CurrentPath resolves the page the application is on, preferring a
	// per-call override from ctx.
	CurrentPath func(ctx context.Context) string
	// IsPublicPage classifies an application page (not an API endpoint).
	IsPublicPage func(path string) bool
	// IsAdminArea reports whether the page is inside the admin dashboard,
	// which must not count as public even when paths overlap.
	IsAdminArea func(path string) bool
	// ForceLogout terminates the session with a reason. Idempotent.
	ForceLogout func(ctx context.Context, reason string)
	// Notify surfaces a user-facing notice ("warn" or "error" severity).
	Notify func(ctx context.Context, severity, message string)
	// MetricInc increments a counter; nil disables metrics.
	MetricInc func(id int)
	// ObserveLatency records round-trip time for transmitted calls.
	ObserveLatency func(d time.Duration)
}

// Pipeline is the single outbound request path. Construct once via New;
// safe for concurrent use.
type Pipeline struct {
	cfg     Config
	hooks   Hooks
	metrics Metrics
	session SessionSource
	client  *http.Client
	base    *url.URL
	log     zerolog.Logger
}

// New builds a pipeline against cfg.BaseURL. When httpClient is nil a
// default client with a fresh cookie jar is used; a jar is required for the
// anti-forgery cookie round-trip, so a caller-supplied client without one
// gets a jar attached.
func New(cfg Config, session SessionSource, metrics Metrics, hooks Hooks, httpClient *http.Client, log zerolog.Logger) (*Pipeline, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		httpClient.Jar = jar
	}
	if httpClient.Timeout == 0 && cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	}

	return &Pipeline{
		cfg:     cfg,
		hooks:   hooks,
		metrics: metrics,
		session: session,
		client:  httpClient,
		base:    base,
		log:     log,
	}, nil
}

// Do runs one call through both interception points. Error responses and
// local rejections return a nil Response and an *APIError.
func (p *Pipeline) Do(ctx context.Context, req Request) (*Response, error) {
	requestID := uuid.NewString()

	target := p.base.JoinPath(req.Path)
	if len(req.Query) > 0 {
		target.RawQuery = req.Query.Encode()
	}

	header := make(http.Header)
	for name, values := range req.Header {
		header[http.CanonicalHeaderKey(name)] = values
	}
	header.Set("X-Request-ID", requestID)
	if p.cfg.UserAgent != "" {
		header.Set("User-Agent", p.cfg.UserAgent)
	}

	if err := p.preSend(ctx, req, header, requestID, target); err != nil {
		return nil, err
	}

	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		// Multipart overrides any explicit value: the encoder owns the
		// boundary parameter. JSON only fills an absent header.
		if req.Form != nil || header.Get("Content-Type") == "" {
			header.Set("Content-Type", contentType)
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return nil, err
	}
	httpReq.Header = header

	start := time.Now()
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if p.hooks.ObserveLatency != nil {
		p.hooks.ObserveLatency(time.Since(start))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusBadRequest {
		return &Response{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       respBody,
			RequestID:  requestID,
		}, nil
	}

	return nil, p.postReceive(ctx, httpReq, resp, respBody, requestID)
}

func (p *Pipeline) preSend(ctx context.Context, req Request, header http.Header, requestID string, target *url.URL) error {
	if csrf := p.csrfToken(); csrf != "" {
		header.Set(p.cfg.CSRFHeaderName, csrf)
	}

	isPublic := p.isPublicEndpoint(req.Path)
	authenticated := false
	tok := ""
	if p.session != nil {
		authenticated = p.session.Authenticated()
		tok = p.session.Token()
	}

	// Search is public but personalized: attach the credential when one is
	// live, then skip the remaining checks either way.
	if p.cfg.SearchEndpoint != "" && strings.Contains(req.Path, p.cfg.SearchEndpoint) {
		if authenticated && tok != "" {
			header.Set("Authorization", p.cfg.AuthScheme+" "+tok)
		}
		return nil
	}

	if isPublic {
		return nil
	}

	current := ""
	if p.hooks.CurrentPath != nil {
		current = p.hooks.CurrentPath(ctx)
	}
	onPublicPage := p.hooks.IsPublicPage != nil && p.hooks.IsPublicPage(current)
	onAdminArea := p.hooks.IsAdminArea != nil && p.hooks.IsAdminArea(current)

	// Loop breaker: an authenticated-only call issued from a public page is
	// rejected before any network I/O. Forcing a logout here would bounce
	// the login page back onto itself.
	if onPublicPage && !onAdminArea && !authenticated {
		p.metricInc(p.metrics.RejectedLocally)
		return &APIError{
			RequestID: requestID,
			Method:    req.Method,
			URL:       target.String(),
			kind:      ErrLoginRequired,
		}
	}

	if !authenticated {
		p.metricInc(p.metrics.RejectedLocally)
		if p.hooks.ForceLogout != nil {
			p.hooks.ForceLogout(ctx, "expired")
		}
		return &APIError{
			RequestID: requestID,
			Method:    req.Method,
			URL:       target.String(),
			kind:      ErrSessionExpired,
		}
	}

	header.Set("Authorization", p.cfg.AuthScheme+" "+tok)
	return nil
}

func (p *Pipeline) postReceive(ctx context.Context, httpReq *http.Request, resp *http.Response, body []byte, requestID string) error {
	record := newErrorRecord(requestID, httpReq, resp.StatusCode, resp.Header, body, p.cfg.RedactionMarker)
	parsed := parseErrorBody(body)
	isLogin := p.cfg.LoginEndpoint != "" && strings.Contains(httpReq.URL.Path, p.cfg.LoginEndpoint)

	apiErr := &APIError{
		RequestID: requestID,
		Method:    httpReq.Method,
		URL:       httpReq.URL.String(),
		Status:    resp.StatusCode,
		Detail:    parsed.Detail,
		Fields:    parsed.Errors,
		Body:      body,
		kind:      ErrRequestFailed,
	}

	// Login failures are user-facing control flow, not diagnostics.
	level := zerolog.ErrorLevel
	if isLogin {
		level = zerolog.DebugLevel
	}
	event := p.log.WithLevel(level).
		Str("request_id", record.RequestID).
		Str("method", record.Method).
		Str("url", record.URL).
		Int("status", record.Status)

	switch {
	case resp.StatusCode == http.StatusForbidden && p.isDisabledMarker(parsed.Detail):
		apiErr.kind = ErrAccountDisabled
		p.metricInc(p.metrics.AccountDisabled)
		event.Msg("account disabled response")
		if !isLogin {
			if p.hooks.ForceLogout != nil {
				p.hooks.ForceLogout(ctx, "disabled")
			}
			p.notify(ctx, "error", "your account has been disabled, contact an administrator")
		}

	case resp.StatusCode == http.StatusForbidden:
		apiErr.kind = ErrPermissionDenied
		event.Msg("permission denied response")

	case resp.StatusCode == http.StatusUnauthorized:
		apiErr.kind = ErrUnauthorized
		p.metricInc(p.metrics.Unauthorized)
		event.Msg("unauthorized response")
		if !isLogin {
			if p.hooks.ForceLogout != nil {
				p.hooks.ForceLogout(ctx, "unauthorized")
			}
			p.notify(ctx, "warn", "your session has expired, please log in again")
		}

	case resp.StatusCode == http.StatusBadRequest:
		apiErr.kind = ErrValidation
		p.metricInc(p.metrics.Validation)
		event.Msg("validation failure response")
		for field, messages := range parsed.Errors {
			p.log.Warn().
				Str("request_id", requestID).
				Str("field", field).
				Strs("errors", messages).
				Msg("field validation error")
		}

	case resp.StatusCode >= http.StatusInternalServerError:
		apiErr.kind = ErrServerFault
		apiErr.HTMLBody = looksLikeHTML(body)
		p.metricInc(p.metrics.ServerError)
		if apiErr.HTMLBody {
			// An HTML body means the backend served a debug error page
			// instead of a JSON envelope; operators triage these apart.
			event.Bool("html_body", true).Msg("server fault with HTML error page")
		} else {
			event.Msg("server fault")
		}

	default:
		p.metricInc(p.metrics.RequestFailed)
		event.Msg("request failed")
	}

	return apiErr
}

func (p *Pipeline) isPublicEndpoint(path string) bool {
	for _, endpoint := range p.cfg.PublicEndpoints {
		if endpoint != "" && strings.Contains(path, endpoint) {
			return true
		}
	}
	return false
}

func (p *Pipeline) isDisabledMarker(detail string) bool {
	for _, marker := range p.cfg.DisabledAccountMarkers {
		if marker != "" && detail == marker {
			return true
		}
	}
	return false
}

func (p *Pipeline) csrfToken() string {
	if p.client.Jar == nil || p.cfg.CSRFCookieName == "" {
		return ""
	}
	for _, cookie := range p.client.Jar.Cookies(p.base) {
		if cookie.Name == p.cfg.CSRFCookieName {
			return cookie.Value
		}
	}
	return ""
}

func (p *Pipeline) metricInc(id int) {
	if p.hooks.MetricInc != nil {
		p.hooks.MetricInc(id)
	}
}

func (p *Pipeline) notify(ctx context.Context, severity, message string) {
	if p.hooks.Notify != nil {
		p.hooks.Notify(ctx, severity, message)
	}
}
