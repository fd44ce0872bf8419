package api

import (
	"context"
	"net/http"

	"github.com/tripview/scenickit/transport"
)

// LoginRequest carries the credentials for the login endpoint. Identifier
// is a username or email address.
type LoginRequest struct {
	Identifier string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// LoginResponse is the backend's login payload.
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
	Location string `json:"location"`
	IsAdmin  bool   `json:"is_admin"`
}

// Login authenticates against the public login endpoint.
func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var out LoginResponse
	if err := c.check(req); err != nil {
		return out, err
	}
	resp, err := c.doer.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   c.paths.Login,
		Body:   req,
	})
	if err != nil {
		return out, err
	}
	err = resp.Decode(&out)
	return out, err
}

// RegisterRequest carries a new account plus the email verification code.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Code     string `json:"code" validate:"required"`
}

// Register creates an account via the public register endpoint.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	if err := c.check(req); err != nil {
		return err
	}
	_, err := c.doer.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   c.paths.Register,
		Body:   req,
	})
	return err
}

// SendCodeRequest asks the backend to email a verification code.
type SendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	// IsProfileUpdate distinguishes a registration code from a code
	// confirming an email change on an existing profile.
	IsProfileUpdate bool `json:"is_profile_update"`
}

// SendEmailCode requests a verification code.
func (c *Client) SendEmailCode(ctx context.Context, req SendCodeRequest) error {
	if err := c.check(req); err != nil {
		return err
	}
	_, err := c.doer.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   c.paths.SendCode,
		Body:   req,
	})
	return err
}

// VerifyCodeRequest checks a previously sent verification code.
type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// VerifyEmailCode validates a verification code.
func (c *Client) VerifyEmailCode(ctx context.Context, req VerifyCodeRequest) error {
	if err := c.check(req); err != nil {
		return err
	}
	_, err := c.doer.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   c.paths.VerifyCode,
		Body:   req,
	})
	return err
}

// ForgotPasswordRequest starts the password recovery flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPassword requests a password reset code.
func (c *Client) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error {
	if err := c.check(req); err != nil {
		return err
	}
	_, err := c.doer.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   c.paths.ForgotPassword,
		Body:   req,
	})
	return err
}

// ResetPasswordRequest completes the password recovery flow.
type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Code     string `json:"code" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// ResetPassword sets a new password using a recovery code.
func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if err := c.check(req); err != nil {
		return err
	}
	_, err := c.doer.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   c.paths.ResetPassword,
		Body:   req,
	})
	return err
}
