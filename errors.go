package scenickit

import (
	"errors"

	"github.com/tripview/scenickit/transport"
)

// Sentinel errors produced by the transport pipeline, re-exported so callers
// classify failures with errors.Is against this package alone.
var (
	// ErrLoginRequired marks a call rejected locally because it needed a
	// session while the application sat on a public page. No network I/O
	// happened and no logout was forced.
	ErrLoginRequired = transport.ErrLoginRequired

	// ErrSessionExpired marks a call rejected locally because the stored
	// token's expiry had elapsed. The session was cleared.
	ErrSessionExpired = transport.ErrSessionExpired

	// ErrUnauthorized marks a backend 401. The session was cleared unless the
	// failing call was itself a login attempt.
	ErrUnauthorized = transport.ErrUnauthorized

	// ErrAccountDisabled marks a backend 403 carrying a disabled-account
	// detail string. The session was cleared.
	ErrAccountDisabled = transport.ErrAccountDisabled

	// ErrPermissionDenied marks a plain backend 403.
	ErrPermissionDenied = transport.ErrPermissionDenied

	// ErrValidation marks a backend 400 or a local request-shape failure.
	ErrValidation = transport.ErrValidation

	// ErrServerFault marks a backend 5xx.
	ErrServerFault = transport.ErrServerFault

	// ErrRequestFailed marks any other non-success status.
	ErrRequestFailed = transport.ErrRequestFailed
)

var (
	// ErrInvalidCredentials wraps a login rejection. The session is never
	// touched by a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrClientNotReady is returned by operations on a client that was not
	// produced by a successful Build.
	ErrClientNotReady = errors.New("client not initialized")

	// ErrBuilderUsed is returned when Build is called twice on one builder.
	ErrBuilderUsed = errors.New("builder already used")
)
