package scenickit

import (
	"errors"
	"net/url"
	"time"

	"github.com/tripview/scenickit/api"
	"github.com/tripview/scenickit/report"
)

// Config is the complete client configuration. Configure during
// initialization and treat as immutable afterwards; Build clones it.
type Config struct {
	Transport  TransportConfig
	Session    SessionConfig
	Routes     RoutesConfig
	Endpoints  api.Paths
	Audit      AuditConfig
	Metrics    MetricsConfig
	Report     ReportConfig
	Navigation NavigationConfig
}

/*
====================================
TRANSPORT CONFIG
====================================
*/

// TransportConfig fixes the wire conventions of the backend.
type TransportConfig struct {
	// BaseURL is the backend origin, e.g. "https://dashboard.example.com".
	// Required.
	BaseURL string
	// Timeout bounds each round trip when the supplied http.Client carries
	// no timeout of its own.
	Timeout time.Duration
	// UserAgent is sent on every request when non-empty.
	UserAgent string

	// Anti-forgery token: read from this cookie, replayed in this header.
	CSRFCookieName string
	CSRFHeaderName string

	// AuthScheme prefixes the bearer credential in the Authorization header.
	AuthScheme string

	// RedactionMarker replaces the Authorization value in error records.
	RedactionMarker string

	// ExtraPublicEndpoints extends the endpoint catalogue's public list.
	// Matched by substring against the request path.
	ExtraPublicEndpoints []string

	// DisabledAccountMarkers are the backend detail strings that mark a 403
	// as "account disabled" rather than a plain permission failure.
	DisabledAccountMarkers []string
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig controls credential lifetime handling.
type SessionConfig struct {
	// TokenTTL is the local expiry horizon stamped on a fresh credential.
	TokenTTL time.Duration
	// DeriveExpiryFromJWT prefers the token's own exp claim, when the
	// credential parses as a JWT with a future expiry, over TokenTTL.
	DeriveExpiryFromJWT bool
}

/*
====================================
ROUTES CONFIG
====================================
*/

// RoutesConfig is the application route table the guard and the transport's
// page classification share.
type RoutesConfig struct {
	LoginPath          string
	RegisterPath       string
	ForgotPasswordPath string
	AdminLoginPath     string
	RootPath           string

	// Prefix-match authenticated areas.
	UserPrefix  string
	AdminPrefix string

	// DefaultLanding is where an already-authenticated visit to a public
	// page is redirected.
	DefaultLanding string
}

/*
====================================
REPORT CONFIG
====================================
*/

// ReportConfig controls the client-side error reporter.
type ReportConfig struct {
	Enabled bool
	// MinSendLevel is the lowest level shipped upstream; zero means the
	// reporter default (warning).
	MinSendLevel report.Level
	// SuppressOnPublicPage drops reports raised on public pages instead of
	// marking them anonymous.
	SuppressOnPublicPage bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

func defaultConfig() Config {
	return Config{
		Transport: TransportConfig{
			Timeout:                15 * time.Second,
			CSRFCookieName:         "csrftoken",
			CSRFHeaderName:         "X-CSRFToken",
			AuthScheme:             "Token",
			RedactionMarker:        "[FILTERED]",
			DisabledAccountMarkers: []string{"用户已被禁用"},
		},
		Session: SessionConfig{
			TokenTTL:            24 * time.Hour,
			DeriveExpiryFromJWT: true,
		},
		Routes: RoutesConfig{
			LoginPath:          "/login",
			RegisterPath:       "/register",
			ForgotPasswordPath: "/forgot-password",
			AdminLoginPath:     "/admin",
			RootPath:           "/",
			UserPrefix:         "/dashboard",
			AdminPrefix:        "/admin-dashboard",
			DefaultLanding:     "/dashboard/scenic-distribution",
		},
		Endpoints: api.DefaultPaths(),
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
		Report: ReportConfig{
			Enabled: false,
		},
		Navigation: NavigationConfig{
			BufferSize: 16,
		},
	}
}

// DefaultConfig returns the configuration matching the production dashboard
// deployment, with BaseURL left for the caller to fill.
func DefaultConfig() Config {
	return defaultConfig()
}

// KioskConfig returns the configuration for shared terminals: a short fixed
// session lifetime that ignores any longer expiry the token itself carries.
// Pair it with no storage (or a MemoryStore) so nothing survives the process.
func KioskConfig() Config {
	cfg := defaultConfig()
	cfg.Session.TokenTTL = 2 * time.Hour
	cfg.Session.DeriveExpiryFromJWT = false
	return cfg
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Transport.ExtraPublicEndpoints = cloneStrings(cfg.Transport.ExtraPublicEndpoints)
	out.Transport.DisabledAccountMarkers = cloneStrings(cfg.Transport.DisabledAccountMarkers)
	return out
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate reports the first configuration defect found, or nil.
func (c *Config) Validate() error {
	// Transport
	if c.Transport.BaseURL == "" {
		return errors.New("Transport BaseURL is required")
	}
	base, err := url.Parse(c.Transport.BaseURL)
	if err != nil {
		return errors.New("Transport BaseURL must be a valid URL")
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return errors.New("Transport BaseURL must use http or https")
	}
	if c.Transport.Timeout < 0 {
		return errors.New("Transport Timeout must be >= 0")
	}
	if c.Transport.AuthScheme == "" {
		return errors.New("Transport AuthScheme is required")
	}
	if c.Transport.CSRFCookieName != "" && c.Transport.CSRFHeaderName == "" {
		return errors.New("Transport CSRFHeaderName is required when CSRFCookieName is set")
	}
	if c.Transport.RedactionMarker == "" {
		return errors.New("Transport RedactionMarker is required")
	}

	// Session
	if c.Session.TokenTTL <= 0 {
		return errors.New("Session TokenTTL must be > 0")
	}

	// Routes
	if c.Routes.LoginPath == "" {
		return errors.New("Routes LoginPath is required")
	}
	if c.Routes.AdminLoginPath == "" {
		return errors.New("Routes AdminLoginPath is required")
	}
	if c.Routes.UserPrefix == "" {
		return errors.New("Routes UserPrefix is required")
	}
	if c.Routes.AdminPrefix == "" {
		return errors.New("Routes AdminPrefix is required")
	}
	if c.Routes.DefaultLanding == "" {
		return errors.New("Routes DefaultLanding is required")
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when audit is enabled")
	}

	// Navigation
	if c.Navigation.BufferSize <= 0 {
		return errors.New("Navigation BufferSize must be > 0")
	}

	// Report
	if c.Report.MinSendLevel < 0 || c.Report.MinSendLevel > report.LevelCritical {
		return errors.New("Report MinSendLevel is out of range")
	}

	return nil
}
