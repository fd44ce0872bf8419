// Package prometheus provides Prometheus collectors for client metrics.
//
// [NewPrometheusExporter] accepts a [scenickit.Client] and exposes an [http.Handler]
// that renders all counters and histograms in Prometheus text exposition format.
// Counter names are prefixed scenickit_*_total; the single histogram is
// scenickit_request_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate client state.
package prometheus
