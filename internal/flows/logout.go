package flows

import "context"

// LogoutDeps captures logout flow dependencies.
type LogoutDeps struct {
	// ClearSession resets the manager and scrubs the mirror. Returns true
	// only for the invocation that actually cleared a populated session.
	ClearSession func() bool
	// CurrentPath resolves the page the application is on.
	CurrentPath func(ctx context.Context) string
	// IsPublicPage reports whether that page is already public, in which
	// case no redirect is scheduled (the loop-avoidance rule).
	IsPublicPage func(path string) bool
	// ScheduleNavigation enqueues the deferred redirect; it must not
	// navigate synchronously so the triggering request's own error handling
	// finishes first.
	ScheduleNavigation func(target, reason string)
	// LoginPath is the redirect target, suffixed with ?<reason>=true.
	LoginPath string
}

// LogoutResult reports the observable effects of one logout call.
type LogoutResult struct {
	// Cleared is true when this call performed the state transition.
	// Redundant logouts from concurrent failing requests return false and
	// have no observable effect.
	Cleared bool
	// Redirected is true when a navigation was scheduled.
	Redirected bool
	// Target is the scheduled navigation target, when any.
	Target string
}

// RunLogout terminates the session. Idempotent: every invocation is safe,
// only the first clears state and schedules at most one redirect.
func RunLogout(ctx context.Context, reason string, redirect bool, deps LogoutDeps) LogoutResult {
	cleared := deps.ClearSession()
	if !cleared {
		return LogoutResult{}
	}

	result := LogoutResult{Cleared: true}
	if !redirect {
		return result
	}

	current := ""
	if deps.CurrentPath != nil {
		current = deps.CurrentPath(ctx)
	}
	if deps.IsPublicPage != nil && deps.IsPublicPage(current) {
		return result
	}

	target := deps.LoginPath
	if reason != "" {
		target += "?" + reason + "=true"
	}
	if deps.ScheduleNavigation != nil {
		deps.ScheduleNavigation(target, reason)
		result.Redirected = true
		result.Target = target
	}
	return result
}
