package flows

import (
	"context"
	"time"
)

// LoginPayload is the flow-local shape of a successful login response.
type LoginPayload struct {
	Token    string
	UserID   string
	Username string
	Email    string
	Avatar   string
	Location string
	IsAdmin  bool
}

// LoginDeps captures login flow dependencies.
type LoginDeps struct {
	// CallLogin performs the network call. Failures propagate to the caller
	// unchanged: a bad-credential error is user-facing control flow, never
	// retried and never mutating session state.
	CallLogin func(ctx context.Context, identifier, password string) (LoginPayload, error)

	Now func() time.Time
	// ComputeExpiry derives the local token expiry for a fresh credential.
	ComputeExpiry func(token string, now time.Time) time.Time
	// ApplySession installs the payload wholesale, transitioning the
	// manager from Anonymous to Authenticated and mirroring every field.
	ApplySession func(payload LoginPayload, expiry time.Time)
}

// LoginResult reports what RunLogin installed.
type LoginResult struct {
	Payload LoginPayload
	Expiry  time.Time
}

// RunLogin authenticates and, on success, installs the session. On failure
// the session is untouched and the error is returned as-is.
func RunLogin(ctx context.Context, identifier, password string, deps LoginDeps) (LoginResult, error) {
	payload, err := deps.CallLogin(ctx, identifier, password)
	if err != nil {
		return LoginResult{}, err
	}

	now := deps.Now()
	expiry := deps.ComputeExpiry(payload.Token, now)
	deps.ApplySession(payload, expiry)

	return LoginResult{Payload: payload, Expiry: expiry}, nil
}
