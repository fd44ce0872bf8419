package scenickit

// Audit event types emitted over the session lifecycle.
const (
	// AuditLogin records a successful authentication.
	AuditLogin = "login"
	// AuditLoginFailed records a rejected authentication attempt.
	AuditLoginFailed = "login_failed"
	// AuditLogout records an explicit logout that cleared a session.
	AuditLogout = "logout"
	// AuditForcedLogout records a logout forced by the transport, with the
	// reason ("expired", "unauthorized", or "disabled").
	AuditForcedLogout = "forced_logout"
	// AuditSessionRestored records a session recovered from the mirror.
	AuditSessionRestored = "session_restored"
	// AuditSessionExpired records a stale mirror scrubbed instead of trusted.
	AuditSessionExpired = "session_expired"
	// AuditProfileUpdated records a merged profile update.
	AuditProfileUpdated = "profile_updated"
	// AuditFavoriteToggled records a server-confirmed favorite toggle.
	AuditFavoriteToggled = "favorite_toggled"
	// AuditAccountDeleted records a confirmed account deletion.
	AuditAccountDeleted = "account_deleted"
	// AuditRouteDenied records a guard evaluation that redirected.
	AuditRouteDenied = "route_denied"
)

// AuditConfig controls the asynchronous audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}
