package transport

import "errors"

var (
	// ErrLoginRequired is returned when a non-public call is rejected locally
	// because the client is Anonymous while already on a public page. No
	// network transmission happens; this is the redirect-loop breaker.
	ErrLoginRequired = errors.New("login required")
	// ErrSessionExpired is returned when a non-public call finds the local
	// session expired; a forced logout has been scheduled.
	ErrSessionExpired = errors.New("session expired")
	// ErrUnauthorized is the classification of an HTTP 401 response.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrAccountDisabled is the classification of an HTTP 403 response whose
	// body carries the account-disabled marker.
	ErrAccountDisabled = errors.New("account disabled")
	// ErrPermissionDenied is the classification of any other HTTP 403.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrValidation is the classification of an HTTP 400 response.
	ErrValidation = errors.New("validation failed")
	// ErrServerFault is the classification of an HTTP 5xx response.
	ErrServerFault = errors.New("server fault")
	// ErrRequestFailed is the classification of any other error status.
	ErrRequestFailed = errors.New("request failed")
)
