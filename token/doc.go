// Package token derives a local expiry for the opaque bearer credential the
// backend issues.
//
// The backend does not report a token lifetime, so the client owns expiry:
// by default it is now + a configured TTL (24h). When the credential happens
// to be a JWT, the unverified exp claim can be used instead. The claim is
// read without verification; the client holds no signing key and the server
// remains authoritative on every request.
package token
