// Package api is the typed catalogue of backend endpoints: authentication,
// profile, favorites, the read-only analytics series, and the admin surface.
//
// Calls go through a transport Doer; this package never touches session
// state. Outbound request shapes carry validator tags and are checked
// before any network I/O, so obviously malformed input fails locally with
// the same classification a backend 400 would produce.
//
// Analytics responses are treated as opaque data sources and returned as
// raw JSON for the caller's charting layer to interpret.
package api
