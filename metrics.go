package scenickit

import (
	"sync/atomic"
	"time"
)

// MetricID identifies one counter or histogram in the client registry.
type MetricID uint16

const (
	// MetricLoginSuccess counts successful logins.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure counts rejected logins.
	MetricLoginFailure
	// MetricLogout counts explicit logouts that cleared a session.
	MetricLogout
	// MetricForcedLogout counts logouts forced by the transport.
	MetricForcedLogout
	// MetricSessionRestored counts sessions recovered from the mirror.
	MetricSessionRestored
	// MetricSessionExpiredCleared counts stale mirrors scrubbed on restore.
	MetricSessionExpiredCleared
	// MetricUnauthorized counts backend 401 responses.
	MetricUnauthorized
	// MetricAccountDisabled counts disabled-account 403 responses.
	MetricAccountDisabled
	// MetricValidationFailure counts backend 400 responses.
	MetricValidationFailure
	// MetricServerFault counts backend 5xx responses.
	MetricServerFault
	// MetricRejectedLocally counts calls rejected before any network I/O.
	MetricRejectedLocally
	// MetricRequestFailed counts other non-success responses.
	MetricRequestFailed
	// MetricFavoriteAdded counts server-confirmed favorite additions.
	MetricFavoriteAdded
	// MetricFavoriteRemoved counts server-confirmed favorite removals.
	MetricFavoriteRemoved
	// MetricProfileUpdated counts merged profile updates.
	MetricProfileUpdated
	// MetricNavigationScheduled counts deferred redirects enqueued.
	MetricNavigationScheduled
	// MetricRouteDenied counts guard evaluations that redirected.
	MetricRouteDenied
	// MetricReportSent counts error reports delivered upstream.
	MetricReportSent
	// MetricRequestLatency is the round-trip latency histogram for
	// transmitted requests.
	MetricRequestLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics is the lock-free counter registry. A nil or disabled registry is
// safe to call and records nothing.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time copy of the registry.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// MetricsConfig controls metric collection.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// NewMetrics builds a registry per cfg.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether counters are being recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// LatencyEnabled reports whether the latency histogram is being recorded.
func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc increments one counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records one latency sample.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= metricIDCount {
		return
	}
	if id != MetricRequestLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

// Value reads one counter.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies every counter and histogram.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricRequestLatency].buckets[i])
		}
		s.Histograms[MetricRequestLatency] = buckets
	}

	return s
}

func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()

	switch {
	case ms <= 5:
		return 0
	case ms <= 10:
		return 1
	case ms <= 25:
		return 2
	case ms <= 50:
		return 3
	case ms <= 100:
		return 4
	case ms <= 250:
		return 5
	case ms <= 500:
		return 6
	default:
		return 7
	}
}
