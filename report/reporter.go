package report

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Level classifies a report.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelCritical
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Report is one failure to forward.
type Report struct {
	Level     Level
	Message   string
	Traceback string
	Location  string
	Anonymous bool
}

// Sender ships a report upstream. The api package's LogFrontendError call
// fits after adapting the level to its wire form.
type Sender func(ctx context.Context, r Report) error

// Config tunes the reporter.
type Config struct {
	// MinSendLevel is the lowest level shipped upstream. Defaults to
	// LevelWarning; lower reports are logged locally only.
	MinSendLevel Level
	// SuppressOnPublicPage keeps identified sends off public pages. When a
	// report must still go out from one, it is marked anonymous instead.
	SuppressOnPublicPage bool
	// Disabled turns off upstream sends entirely.
	Disabled bool
}

// Reporter is the failure forwarder. Safe for concurrent use.
type Reporter struct {
	cfg          Config
	send         Sender
	currentPath  func() string
	isPublicPage func(path string) bool
	log          zerolog.Logger

	sending atomic.Bool
	sent    atomic.Uint64
	dropped atomic.Uint64
}

// New builds a reporter. send may be nil, which disables upstream delivery.
// currentPath and isPublicPage may be nil when page context is unavailable.
func New(cfg Config, send Sender, currentPath func() string, isPublicPage func(string) bool, log zerolog.Logger) *Reporter {
	if cfg.MinSendLevel == 0 {
		cfg.MinSendLevel = LevelWarning
	}
	return &Reporter{
		cfg:          cfg,
		send:         send,
		currentPath:  currentPath,
		isPublicPage: isPublicPage,
		log:          log,
	}
}

// Capture logs the report locally and, for MinSendLevel and above, ships it
// upstream. A send already in flight on this reporter drops the new report
// rather than recurse, so a failing collector cannot feed itself.
func (r *Reporter) Capture(ctx context.Context, rep Report) {
	if rep.Location == "" && r.currentPath != nil {
		rep.Location = r.currentPath()
	}

	event := r.log.WithLevel(localLevel(rep.Level)).
		Str("report_level", rep.Level.String()).
		Str("location", rep.Location)
	if rep.Traceback != "" {
		event = event.Str("traceback", rep.Traceback)
	}
	event.Msg(rep.Message)

	if r.cfg.Disabled || r.send == nil || rep.Level < r.cfg.MinSendLevel {
		return
	}
	if r.isPublicPage != nil && r.isPublicPage(rep.Location) {
		if r.cfg.SuppressOnPublicPage {
			r.dropped.Add(1)
			return
		}
		rep.Anonymous = true
	}

	if !r.sending.CompareAndSwap(false, true) {
		r.dropped.Add(1)
		return
	}
	defer r.sending.Store(false)

	if err := r.send(ctx, rep); err != nil {
		// Local log only. Reporting the failure through Capture again
		// would loop.
		r.dropped.Add(1)
		r.log.Debug().Err(err).Msg("error report delivery failed")
		return
	}
	r.sent.Add(1)
}

// Warning is shorthand for a LevelWarning capture.
func (r *Reporter) Warning(ctx context.Context, msg string) {
	r.Capture(ctx, Report{Level: LevelWarning, Message: msg})
}

// Error is shorthand for a LevelError capture.
func (r *Reporter) Error(ctx context.Context, msg, traceback string) {
	r.Capture(ctx, Report{Level: LevelError, Message: msg, Traceback: traceback})
}

// Sent reports how many deliveries succeeded.
func (r *Reporter) Sent() uint64 { return r.sent.Load() }

// Dropped reports how many reports were suppressed or failed delivery.
func (r *Reporter) Dropped() uint64 { return r.dropped.Load() }

func localLevel(l Level) zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarning:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
