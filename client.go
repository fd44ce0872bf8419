package scenickit

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tripview/scenickit/api"
	"github.com/tripview/scenickit/guard"
	"github.com/tripview/scenickit/internal/audit"
	"github.com/tripview/scenickit/internal/flows"
	"github.com/tripview/scenickit/report"
	"github.com/tripview/scenickit/session"
	"github.com/tripview/scenickit/storage"
	"github.com/tripview/scenickit/transport"
)

// Client is the assembled session client. Construct via New().Build();
// safe for concurrent use.
type Client struct {
	cfg      Config
	log      zerolog.Logger
	store    storage.Store
	session  *session.Manager
	pipeline *transport.Pipeline
	api      *api.Client
	flows    flows.Service
	metrics  *Metrics
	audit    *audit.Dispatcher
	nav      *navDispatcher
	reporter *report.Reporter
	locator  Locator
	notifier Notifier
	routes   guard.Routes
	now      func() time.Time
	restored session.RestoreResult
}

// API exposes the typed endpoint catalogue. Every call goes through the
// interception pipeline.
func (c *Client) API() *api.Client {
	return c.api
}

// Reporter exposes the client-side error reporter, or nil when reporting is
// disabled.
func (c *Client) Reporter() *report.Reporter {
	return c.reporter
}

// Metrics exposes the counter registry.
func (c *Client) Metrics() *Metrics {
	return c.metrics
}

// MetricsSnapshot copies the counter registry. Exporters read through this.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	return c.metrics.Snapshot()
}

// AuditDropped reports audit events lost to dispatcher backpressure.
func (c *Client) AuditDropped() uint64 {
	return c.audit.Dropped()
}

// NavigationsDropped reports redirect commands lost to backpressure.
func (c *Client) NavigationsDropped() uint64 {
	return c.nav.Dropped()
}

// Close drains and stops the audit and navigation dispatchers. The client
// must not be used afterwards.
func (c *Client) Close() {
	c.audit.Close()
	c.nav.Close()
}

// currentPath prefers the per-call override from ctx over the Locator.
func (c *Client) currentPath(ctx context.Context) string {
	if path, ok := currentPathFromContext(ctx); ok {
		return path
	}
	if c.locator != nil {
		return c.locator.CurrentPath()
	}
	return ""
}

func (c *Client) notify(_ context.Context, severity, message string) {
	if c.notifier != nil {
		c.notifier.Notify(severity, message)
	}
}

// forceLogout is the transport's termination hook. Idempotent; the redirect
// is deferred through the navigation dispatcher.
func (c *Client) forceLogout(ctx context.Context, reason string) {
	snapshot := c.session.Snapshot()
	result := c.flows.Logout(ctx, reason, true)
	if !result.Cleared {
		return
	}
	c.metrics.Inc(MetricForcedLogout)
	c.emit(ctx, AuditEvent{
		EventType: AuditForcedLogout,
		UserID:    snapshot.UserID,
		Username:  snapshot.Username,
		Path:      c.currentPath(ctx),
		Reason:    reason,
		Success:   true,
	})
}

func (c *Client) emit(ctx context.Context, event AuditEvent) {
	if c.audit == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	c.audit.Emit(ctx, event)
}
