package scenickit

import (
	"io"

	"github.com/tripview/scenickit/internal/audit"
	"github.com/tripview/scenickit/session"
	"github.com/tripview/scenickit/storage"
	"github.com/tripview/scenickit/transport"
)

// Session is the immutable snapshot of the authenticated state.
type Session = session.Session

// SessionUpdate is a partial session mutation; nil fields stay untouched.
type SessionUpdate = session.Update

// Store is the persistence contract for the session mirror.
type Store = storage.Store

// APIError is the classified failure returned for every non-success
// response and local rejection.
type APIError = transport.APIError

// AuditEvent is one recorded session-lifecycle transition.
type AuditEvent = audit.Event

// AuditSink receives audit events from the asynchronous dispatcher.
type AuditSink = audit.Sink

// NoOpSink drops audit events.
type NoOpSink = audit.NoOpSink

// ChannelSink buffers audit events in a channel for consumption by tests
// and in-process collectors.
type ChannelSink = audit.ChannelSink

// JSONWriterSink writes one JSON object per audit event line.
type JSONWriterSink = audit.JSONWriterSink

// NewChannelSink returns a sink buffering up to buffer events.
func NewChannelSink(buffer int) *ChannelSink {
	return audit.NewChannelSink(buffer)
}

// NewJSONWriterSink returns a sink writing NDJSON to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return audit.NewJSONWriterSink(w)
}
