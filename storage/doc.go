// Package storage provides the persistent session mirror used by scenickit
// to survive process restarts.
//
// # Design
//
// The mirror is a denormalized key/value copy of the in-memory session, one
// key per field. It is written eventually-consistently after every session
// mutation and read exactly once, at client construction, to recover state.
//
// # Failure contract
//
// Every operation is best-effort. Get returns the empty string on any miss
// or backend failure; Set and Remove swallow and log failures. Callers must
// degrade to in-memory-only operation rather than crash when the backing
// store is unavailable.
//
// # What this package must NOT do
//
//   - Interpret field values (expiry parsing lives in the session package).
//   - Import scenickit or any sibling package.
package storage
