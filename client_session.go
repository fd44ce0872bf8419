package scenickit

import (
	"context"
	"net/url"

	"github.com/tripview/scenickit/guard"
	"github.com/tripview/scenickit/session"
)

// Restored reports what Build recovered from the session mirror.
func (c *Client) Restored() session.RestoreResult {
	return c.restored
}

// Authenticated reports whether the session holds a live credential now.
// The expiry check is re-evaluated on every call.
func (c *Client) Authenticated() bool {
	return c.session.Authenticated()
}

// IsAdmin reports the administrator flag of the current session.
func (c *Client) IsAdmin() bool {
	return c.session.Admin()
}

// CurrentSession returns a value copy of the session state.
func (c *Client) CurrentSession() Session {
	return c.session.Snapshot()
}

// GuardRoute decides whether navigating to path proceeds. rawQuery is the
// target's query string. An expired token discovered here is scrubbed
// before the redirect decision; denied navigations name the page to go to
// instead.
func (c *Client) GuardRoute(ctx context.Context, path, rawQuery string) guard.Decision {
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}

	decision := guard.Evaluate(c.routes, path, query, c.session, func() {
		if c.session.Clear() {
			c.metrics.Inc(MetricSessionExpiredCleared)
			c.emit(ctx, AuditEvent{
				EventType: AuditSessionExpired,
				Path:      path,
				Success:   true,
			})
		}
	})

	if !decision.Allow {
		c.metrics.Inc(MetricRouteDenied)
		c.emit(ctx, AuditEvent{
			EventType: AuditRouteDenied,
			Path:      path,
			Reason:    decision.Redirect,
			Success:   true,
		})
	}
	return decision
}
