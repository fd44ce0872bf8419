// Package transport is the single outbound request pipeline between the
// client and the dashboard backend.
//
// # Interception points
//
// Every call passes two fixed stages. Pre-send attaches the anti-forgery
// cookie header, decides whether the target is a public endpoint, enforces
// the redirect-loop rule (a non-public call while Anonymous on a public page
// is rejected locally, with no network transmission), and attaches the
// bearer header. Post-receive runs only on error responses: it builds a
// redacted diagnostic record, classifies the failure (unauthorized, account
// disabled, validation, server fault), triggers forced logout where the
// classification demands it, and always re-propagates the error so the
// caller still observes the failure.
//
// # Ordering
//
// Within one call, pre-send completes (or rejects) before transmission and
// post-receive completes before Do returns. No ordering is guaranteed
// between concurrent calls; each is evaluated against the session state at
// the instant it executes.
package transport
