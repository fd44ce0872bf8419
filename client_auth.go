package scenickit

import (
	"context"

	"github.com/tripview/scenickit/api"
)

// Login authenticates and installs the session. On failure the session is
// untouched; credential rejections satisfy errors.Is(err,
// ErrInvalidCredentials).
func (c *Client) Login(ctx context.Context, identifier, password string) (Session, error) {
	result, err := c.flows.Login(ctx, identifier, password)
	if err != nil {
		c.metrics.Inc(MetricLoginFailure)
		c.emit(ctx, AuditEvent{
			EventType: AuditLoginFailed,
			Username:  identifier,
			Path:      c.currentPath(ctx),
			Error:     err.Error(),
		})
		return Session{}, err
	}

	c.metrics.Inc(MetricLoginSuccess)
	c.emit(ctx, AuditEvent{
		EventType: AuditLogin,
		UserID:    result.Payload.UserID,
		Username:  result.Payload.Username,
		Path:      c.currentPath(ctx),
		Success:   true,
	})
	return c.session.Snapshot(), nil
}

// LogoutSummary reports the observable effects of one logout call.
type LogoutSummary struct {
	// Cleared is true for the call that performed the state transition.
	Cleared bool
	// Redirected is true when a deferred navigation was scheduled.
	Redirected bool
	// Target is the scheduled navigation target, when any.
	Target string
}

// Logout terminates the session and schedules a redirect to the login page
// unless the application is already on a public one. Idempotent.
func (c *Client) Logout(ctx context.Context) LogoutSummary {
	snapshot := c.session.Snapshot()
	result := c.flows.Logout(ctx, "", true)
	if result.Cleared {
		c.metrics.Inc(MetricLogout)
		c.emit(ctx, AuditEvent{
			EventType: AuditLogout,
			UserID:    snapshot.UserID,
			Username:  snapshot.Username,
			Path:      c.currentPath(ctx),
			Success:   true,
		})
	}
	return LogoutSummary{
		Cleared:    result.Cleared,
		Redirected: result.Redirected,
		Target:     result.Target,
	}
}

// Register creates an account. It does not log in; the dashboard sends the
// user to the login page afterwards.
func (c *Client) Register(ctx context.Context, username, email, password, code string) error {
	return c.api.Register(ctx, api.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
		Code:     code,
	})
}

// SendEmailCode requests a verification code for registration or an email
// change on an existing profile.
func (c *Client) SendEmailCode(ctx context.Context, email string, profileUpdate bool) error {
	return c.api.SendEmailCode(ctx, api.SendCodeRequest{
		Email:           email,
		IsProfileUpdate: profileUpdate,
	})
}

// VerifyEmailCode validates a previously sent verification code.
func (c *Client) VerifyEmailCode(ctx context.Context, email, code string) error {
	return c.api.VerifyEmailCode(ctx, api.VerifyCodeRequest{Email: email, Code: code})
}

// ForgotPassword starts the password recovery flow.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.api.ForgotPassword(ctx, api.ForgotPasswordRequest{Email: email})
}

// ResetPassword completes the password recovery flow.
func (c *Client) ResetPassword(ctx context.Context, email, code, password string) error {
	return c.api.ResetPassword(ctx, api.ResetPasswordRequest{
		Email:    email,
		Code:     code,
		Password: password,
	})
}
