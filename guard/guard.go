package guard

import (
	"net/url"
	"strings"
)

// Class is the access tier of a navigation target.
type Class uint8

const (
	// Public routes are reachable without a session: login, register,
	// password recovery, the admin login form, and the root path.
	Public Class = iota
	// UserTier routes require a live session.
	UserTier
	// AdminTier routes require a live session with the administrator flag.
	AdminTier
)

// String returns the tier name for diagnostics.
func (c Class) String() string {
	switch c {
	case UserTier:
		return "user"
	case AdminTier:
		return "admin"
	default:
		return "public"
	}
}

// Routes is the static route table the guard classifies against.
type Routes struct {
	// Exact-match public pages.
	LoginPath          string
	RegisterPath       string
	ForgotPasswordPath string
	AdminLoginPath     string
	RootPath           string

	// Prefix-match authenticated areas. AdminPrefix is tested first so an
	// admin area nested under the user prefix still classifies as admin.
	UserPrefix  string
	AdminPrefix string

	// DefaultLanding is where an already-authenticated visit to a public
	// page is redirected.
	DefaultLanding string
}

// Classify maps path onto exactly one access tier.
func (r Routes) Classify(path string) Class {
	if r.AdminPrefix != "" && strings.HasPrefix(path, r.AdminPrefix) {
		return AdminTier
	}
	if r.UserPrefix != "" && strings.HasPrefix(path, r.UserPrefix) {
		return UserTier
	}
	return Public
}

// IsPublicPage reports whether path is one of the exact public pages. Used
// by the transport's redirect-loop avoidance, which must not treat the admin
// dashboard as public even though it shares the /admin path root.
func (r Routes) IsPublicPage(path string) bool {
	switch path {
	case r.LoginPath, r.RegisterPath, r.ForgotPasswordPath, r.AdminLoginPath, r.RootPath:
		return path != ""
	}
	// Nested login views (e.g. /login/reset) count as the login page.
	if r.LoginPath != "" && strings.HasPrefix(path, r.LoginPath) {
		return true
	}
	return r.RegisterPath != "" && strings.HasPrefix(path, r.RegisterPath)
}

// SessionView is the read-only slice of session state the guard consults.
type SessionView interface {
	// HasToken reports whether any token is present, live or expired.
	HasToken() bool
	// Authenticated reports whether the token is present and unexpired.
	Authenticated() bool
	// Admin reports the administrator flag.
	Admin() bool
}

// Decision is the outcome of one guard evaluation.
type Decision struct {
	Allow    bool
	Redirect string
}

func allow() Decision                 { return Decision{Allow: true} }
func redirect(target string) Decision { return Decision{Redirect: target} }

// Reason query parameters that a forced logout attaches to the login URL.
// Their presence on a public page suppresses the logged-in redirect so the
// login view can show the explanatory message.
var reasonParams = []string{"disabled", "expired", "unauthorized"}

func hasReasonParam(query url.Values) bool {
	for _, p := range reasonParams {
		if query.Has(p) {
			return true
		}
	}
	return false
}

// Evaluate decides whether navigating to path with query proceeds. cleanup,
// when non-nil, is invoked if the guard detects a token whose expiry has
// elapsed, so the stale mirror entries are scrubbed before redirecting.
func Evaluate(r Routes, path string, query url.Values, view SessionView, cleanup func()) Decision {
	authenticated := view != nil && view.Authenticated()
	expired := view != nil && view.HasToken() && !authenticated

	if expired && cleanup != nil {
		cleanup()
	}

	switch r.Classify(path) {
	case AdminTier:
		if !authenticated || !view.Admin() {
			return redirect(r.AdminLoginPath)
		}
		return allow()

	case UserTier:
		if !authenticated {
			target := r.LoginPath
			if query.Has("disabled") {
				target += "?disabled=true"
			}
			return redirect(target)
		}
		return allow()

	default:
		if authenticated && !hasReasonParam(query) {
			return redirect(r.DefaultLanding)
		}
		return allow()
	}
}
