package internaldefs

import (
	scenickit "github.com/tripview/scenickit"
)

// CounterDef names one exported counter.
type CounterDef struct {
	ID   scenickit.MetricID
	Name string
	Help string
}

// HistogramDef names one exported histogram.
type HistogramDef struct {
	ID   scenickit.MetricID
	Name string
	Help string
}

// CounterDefs is the stable export order for every counter.
var CounterDefs = []CounterDef{
	{ID: scenickit.MetricLoginSuccess, Name: "scenickit_login_success_total", Help: "Successful login attempts."},
	{ID: scenickit.MetricLoginFailure, Name: "scenickit_login_failure_total", Help: "Failed login attempts."},
	{ID: scenickit.MetricLogout, Name: "scenickit_logout_total", Help: "Explicit logouts that cleared a session."},
	{ID: scenickit.MetricForcedLogout, Name: "scenickit_forced_logout_total", Help: "Logouts forced by the transport."},
	{ID: scenickit.MetricSessionRestored, Name: "scenickit_session_restored_total", Help: "Sessions recovered from the mirror."},
	{ID: scenickit.MetricSessionExpiredCleared, Name: "scenickit_session_expired_cleared_total", Help: "Stale session mirrors scrubbed."},
	{ID: scenickit.MetricUnauthorized, Name: "scenickit_unauthorized_total", Help: "Backend 401 responses."},
	{ID: scenickit.MetricAccountDisabled, Name: "scenickit_account_disabled_total", Help: "Disabled-account 403 responses."},
	{ID: scenickit.MetricValidationFailure, Name: "scenickit_validation_failure_total", Help: "Backend 400 responses."},
	{ID: scenickit.MetricServerFault, Name: "scenickit_server_fault_total", Help: "Backend 5xx responses."},
	{ID: scenickit.MetricRejectedLocally, Name: "scenickit_rejected_locally_total", Help: "Calls rejected before any network I/O."},
	{ID: scenickit.MetricRequestFailed, Name: "scenickit_request_failed_total", Help: "Other non-success responses."},
	{ID: scenickit.MetricFavoriteAdded, Name: "scenickit_favorite_added_total", Help: "Server-confirmed favorite additions."},
	{ID: scenickit.MetricFavoriteRemoved, Name: "scenickit_favorite_removed_total", Help: "Server-confirmed favorite removals."},
	{ID: scenickit.MetricProfileUpdated, Name: "scenickit_profile_updated_total", Help: "Merged profile updates."},
	{ID: scenickit.MetricNavigationScheduled, Name: "scenickit_navigation_scheduled_total", Help: "Deferred redirects enqueued."},
	{ID: scenickit.MetricRouteDenied, Name: "scenickit_route_denied_total", Help: "Guard evaluations that redirected."},
	{ID: scenickit.MetricReportSent, Name: "scenickit_report_sent_total", Help: "Error reports delivered upstream."},
}

// HistogramDefs is the stable export order for every histogram.
var HistogramDefs = []HistogramDef{
	{ID: scenickit.MetricRequestLatency, Name: "scenickit_request_latency_seconds", Help: "Request round-trip latency histogram."},
}

// HistogramBounds are the le labels matching the registry's fixed buckets.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix are name-safe spellings of HistogramBounds.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates raw to the fixed bucket count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts to cumulative counts.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
