// Package session holds the authoritative in-memory copy of the
// authenticated identity and its two-state lifecycle.
//
// # States
//
// A Manager is either Anonymous or Authenticated. The transition into
// Authenticated happens only through Apply after a successful login; the
// transition back happens through Clear, driven by an explicit logout, an
// unauthorized/forbidden response, or lazy expiry detection. Authenticated()
// re-evaluates the expiry against the clock on every call: expiry elapsing
// between calls flips the answer with no other mutation.
//
// # Mirror
//
// Every mutation is mirrored field-by-field into a storage.Store so a new
// process can recover the session. The mirror is eventually consistent and
// read exactly once, during Restore.
//
// # What this package must NOT do
//
//   - Perform network I/O or talk to the backend.
//   - Schedule navigation (that is the root client's concern).
package session
