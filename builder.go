package scenickit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tripview/scenickit/api"
	"github.com/tripview/scenickit/guard"
	"github.com/tripview/scenickit/internal/audit"
	"github.com/tripview/scenickit/internal/flows"
	"github.com/tripview/scenickit/report"
	"github.com/tripview/scenickit/session"
	"github.com/tripview/scenickit/storage"
	"github.com/tripview/scenickit/token"
	"github.com/tripview/scenickit/transport"
)

// Builder assembles a Client. Configure with the With methods, then call
// Build once.
type Builder struct {
	config     Config
	store      storage.Store
	httpClient *http.Client
	navigator  Navigator
	locator    Locator
	notifier   Notifier
	auditSink  AuditSink
	logger     zerolog.Logger
	loggerSet  bool
	now        func() time.Time

	built bool
}

// New returns a builder seeded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithBaseURL sets the backend origin without replacing the rest of the
// default configuration.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.Transport.BaseURL = baseURL
	return b
}

// WithStorage sets the persistent session mirror. Without one the session
// lives only in memory and does not survive restarts.
func (b *Builder) WithStorage(store storage.Store) *Builder {
	b.store = store
	return b
}

// WithHTTPClient supplies the underlying http.Client. A cookie jar is
// attached when the client has none.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithNavigator sets the executor for deferred redirects.
func (b *Builder) WithNavigator(nav Navigator) *Builder {
	b.navigator = nav
	return b
}

// WithLocator sets the current-page resolver consulted when a call carries
// no WithCurrentPath override.
func (b *Builder) WithLocator(loc Locator) *Builder {
	b.locator = loc
	return b
}

// WithNotifier sets the user-facing notice sink.
func (b *Builder) WithNotifier(n Notifier) *Builder {
	b.notifier = n
	return b
}

// WithAuditSink sets the audit event receiver and enables auditing.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = sink != nil
	return b
}

// WithLogger sets the structured logger. Without one, diagnostics go to
// stderr at the warn level.
func (b *Builder) WithLogger(log zerolog.Logger) *Builder {
	b.logger = log
	b.loggerSet = true
	return b
}

// WithMetricsEnabled toggles counter collection.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the request latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// WithClock overrides the time source. Tests use this to drive expiry.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Build validates the configuration, assembles the client, and restores any
// persisted session before returning.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := b.logger
	if !b.loggerSet {
		log = zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()
	}

	routes := guard.Routes{
		LoginPath:          cfg.Routes.LoginPath,
		RegisterPath:       cfg.Routes.RegisterPath,
		ForgotPasswordPath: cfg.Routes.ForgotPasswordPath,
		AdminLoginPath:     cfg.Routes.AdminLoginPath,
		RootPath:           cfg.Routes.RootPath,
		UserPrefix:         cfg.Routes.UserPrefix,
		AdminPrefix:        cfg.Routes.AdminPrefix,
		DefaultLanding:     cfg.Routes.DefaultLanding,
	}

	now := b.now
	if now == nil {
		now = time.Now
	}

	metrics := NewMetrics(cfg.Metrics)
	manager := session.NewManager(b.store, now)

	client := &Client{
		cfg:      cfg,
		log:      log,
		store:    b.store,
		session:  manager,
		metrics:  metrics,
		locator:  b.locator,
		notifier: b.notifier,
		routes:   routes,
		now:      now,
	}

	client.audit = audit.NewDispatcher(audit.Config{
		Enabled:    cfg.Audit.Enabled,
		BufferSize: cfg.Audit.BufferSize,
		DropIfFull: cfg.Audit.DropIfFull,
	}, b.auditSink)
	client.nav = newNavDispatcher(cfg.Navigation, b.navigator)

	pipeline, err := transport.New(
		transport.Config{
			BaseURL:         cfg.Transport.BaseURL,
			Timeout:         cfg.Transport.Timeout,
			UserAgent:       cfg.Transport.UserAgent,
			CSRFCookieName:  cfg.Transport.CSRFCookieName,
			CSRFHeaderName:  cfg.Transport.CSRFHeaderName,
			AuthScheme:      cfg.Transport.AuthScheme,
			RedactionMarker: cfg.Transport.RedactionMarker,
			PublicEndpoints: append(
				cfg.Endpoints.PublicEndpoints(),
				cfg.Transport.ExtraPublicEndpoints...,
			),
			SearchEndpoint:         cfg.Endpoints.Search,
			LoginEndpoint:          cfg.Endpoints.Login,
			DisabledAccountMarkers: cfg.Transport.DisabledAccountMarkers,
		},
		manager,
		transport.Metrics{
			Unauthorized:    int(MetricUnauthorized),
			AccountDisabled: int(MetricAccountDisabled),
			Validation:      int(MetricValidationFailure),
			ServerError:     int(MetricServerFault),
			RejectedLocally: int(MetricRejectedLocally),
			RequestFailed:   int(MetricRequestFailed),
		},
		transport.Hooks{
			CurrentPath:  client.currentPath,
			IsPublicPage: routes.IsPublicPage,
			IsAdminArea: func(path string) bool {
				return strings.HasPrefix(path, routes.AdminPrefix)
			},
			ForceLogout: client.forceLogout,
			Notify:      client.notify,
			MetricInc: func(id int) {
				metrics.Inc(MetricID(id))
			},
			ObserveLatency: func(d time.Duration) {
				metrics.Observe(MetricRequestLatency, d)
			},
		},
		b.httpClient,
		log.With().Str("component", "transport").Logger(),
	)
	if err != nil {
		return nil, err
	}
	client.pipeline = pipeline
	client.api = api.NewClient(pipeline, cfg.Endpoints)

	if cfg.Report.Enabled {
		client.reporter = report.New(
			report.Config{
				MinSendLevel:         cfg.Report.MinSendLevel,
				SuppressOnPublicPage: cfg.Report.SuppressOnPublicPage,
			},
			func(ctx context.Context, r report.Report) error {
				err := client.api.LogFrontendError(ctx, api.FrontendErrorReport{
					Level:     r.Level.String(),
					Message:   r.Message,
					Traceback: r.Traceback,
					Location:  r.Location,
					Anonymous: r.Anonymous,
				})
				if err == nil {
					metrics.Inc(MetricReportSent)
				}
				return err
			},
			func() string { return client.currentPath(context.Background()) },
			routes.IsPublicPage,
			log.With().Str("component", "report").Logger(),
		)
	}

	client.flows = flows.New(buildFlowDeps(client, cfg, manager, routes))

	client.restored = manager.Restore()
	switch {
	case client.restored.Restored:
		metrics.Inc(MetricSessionRestored)
		snapshot := manager.Snapshot()
		client.emit(context.Background(), AuditEvent{
			EventType: AuditSessionRestored,
			UserID:    snapshot.UserID,
			Username:  snapshot.Username,
			Success:   true,
		})
	case client.restored.ExpiredCleared:
		metrics.Inc(MetricSessionExpiredCleared)
		client.emit(context.Background(), AuditEvent{
			EventType: AuditSessionExpired,
			Success:   true,
		})
	}

	b.built = true

	return client, nil
}

func buildFlowDeps(client *Client, cfg Config, manager *session.Manager, routes guard.Routes) flows.Deps {
	return flows.Deps{
		Login: flows.LoginDeps{
			CallLogin: func(ctx context.Context, identifier, password string) (flows.LoginPayload, error) {
				resp, err := client.api.Login(ctx, api.LoginRequest{
					Identifier: identifier,
					Password:   password,
				})
				if err != nil {
					return flows.LoginPayload{}, classifyLoginError(err)
				}
				return flows.LoginPayload{
					Token:    resp.Token,
					UserID:   resp.UserID,
					Username: resp.Username,
					Email:    resp.Email,
					Avatar:   resp.Avatar,
					Location: resp.Location,
					IsAdmin:  resp.IsAdmin,
				}, nil
			},
			Now: client.now,
			ComputeExpiry: func(tok string, at time.Time) time.Time {
				return token.ExpiryOrTTL(tok, cfg.Session.DeriveExpiryFromJWT, at, cfg.Session.TokenTTL)
			},
			ApplySession: func(p flows.LoginPayload, expiry time.Time) {
				manager.Apply(session.Update{
					Token:       &p.Token,
					TokenExpiry: &expiry,
					UserID:      &p.UserID,
					Username:    &p.Username,
					Email:       &p.Email,
					Avatar:      &p.Avatar,
					Location:    &p.Location,
					IsAdmin:     &p.IsAdmin,
				})
			},
		},
		Logout: flows.LogoutDeps{
			ClearSession: manager.Clear,
			CurrentPath:  client.currentPath,
			IsPublicPage: routes.IsPublicPage,
			ScheduleNavigation: func(target, reason string) {
				client.nav.Schedule(Navigation{Target: target, Reason: reason})
				client.metrics.Inc(MetricNavigationScheduled)
			},
			LoginPath: routes.LoginPath,
		},
		Profile: flows.ProfileDeps{
			CallUpdate: func(ctx context.Context, fields map[string]any) (flows.ProfilePayload, error) {
				user, err := client.api.UpdateProfile(ctx, fields)
				if err != nil {
					return flows.ProfilePayload{}, err
				}
				return flows.ProfilePayload{
					UserID:   user.ID,
					Username: user.Username,
					Email:    user.Email,
					Avatar:   user.Avatar,
					Location: user.Location,
					IsAdmin:  user.IsAdmin,
				}, nil
			},
			MergeProfile: func(p flows.ProfilePayload) {
				update := session.Update{
					Username: &p.Username,
					Email:    &p.Email,
					Avatar:   &p.Avatar,
					Location: &p.Location,
					IsAdmin:  &p.IsAdmin,
				}
				if p.UserID != "" {
					update.UserID = &p.UserID
				}
				manager.Apply(update)
			},
		},
		Favorite: flows.FavoriteDeps{
			CallToggle: func(ctx context.Context, id string) (bool, error) {
				resp, err := client.api.ToggleFavorite(ctx, id)
				if err != nil {
					return false, err
				}
				return resp.IsFavorite, nil
			},
			CallList:       client.api.Favorites,
			AddFavorite:    manager.AddFavorite,
			RemoveFavorite: manager.RemoveFavorite,
			SetFavorites:   manager.SetFavorites,
		},
	}
}

// classifyLoginError folds credential rejections into ErrInvalidCredentials.
// Other failures (disabled account, server fault, network) pass through.
func classifyLoginError(err error) error {
	if errors.Is(err, transport.ErrUnauthorized) || errors.Is(err, transport.ErrValidation) {
		return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	return err
}
