// Package audit provides the session-lifecycle audit trail: structured
// events for logins, logouts, forced terminations, restores, and favorite
// changes, delivered asynchronously to a pluggable sink.
//
// # Architecture boundaries
//
// This package owns the event model, sink contracts, and the buffered
// dispatcher. It never inspects session state and never blocks a client
// operation: when the buffer is full and DropIfFull is set, events are
// counted and discarded.
package audit
