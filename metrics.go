package niceAuth

import "sync/atomic"

// MetricID identifies a specific counter in the in-process metrics system.
type MetricID uint8

const (
	// MetricRegisterSuccess is an exported constant or variable used by the authentication engine.
	MetricRegisterSuccess MetricID = iota
	// MetricRegisterFailure is an exported constant or variable used by the authentication engine.
	MetricRegisterFailure
	// MetricLoginSuccess is an exported constant or variable used by the authentication engine.
	MetricLoginSuccess
	// MetricLoginFailure is an exported constant or variable used by the authentication engine.
	MetricLoginFailure
	// MetricLogout is an exported constant or variable used by the authentication engine.
	MetricLogout
	// MetricAuthCheckSuccess is an exported constant or variable used by the authentication engine.
	MetricAuthCheckSuccess
	// MetricAuthCheckFailure is an exported constant or variable used by the authentication engine.
	MetricAuthCheckFailure
	// MetricVerificationRequest is an exported constant or variable used by the authentication engine.
	MetricVerificationRequest
	// MetricVerificationSuccess is an exported constant or variable used by the authentication engine.
	MetricVerificationSuccess
	// MetricVerificationFailure is an exported constant or variable used by the authentication engine.
	MetricVerificationFailure
	// MetricResetRequest is an exported constant or variable used by the authentication engine.
	MetricResetRequest
	// MetricResetSuccess is an exported constant or variable used by the authentication engine.
	MetricResetSuccess
	// MetricResetFailure is an exported constant or variable used by the authentication engine.
	MetricResetFailure
	// MetricMailFailure is an exported constant or variable used by the authentication engine.
	MetricMailFailure

	metricIDCount
)

// Metrics holds atomic per-operation counters. When disabled, all operations
// are no-ops with zero allocation.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]atomic.Uint64
}

// MetricsSnapshot is a point-in-time copy of all counters, indexed by MetricID.
type MetricsSnapshot struct {
	Counters [metricIDCount]uint64
}

// NewMetrics creates a new [Metrics] instance configured by the given
// [MetricsConfig]. When Enabled is false, all operations are no-ops.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Inc describes the inc operation and its observable behavior.
//
// Inc does not mutate shared global state beyond its own counters and can be used concurrently.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	m.counters[id].Add(1)
}

// Snapshot describes the snapshot operation and its observable behavior.
//
// Snapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Snapshot() MetricsSnapshot {
	var out MetricsSnapshot
	if m == nil || !m.enabled {
		return out
	}
	for i := range m.counters {
		out.Counters[i] = m.counters[i].Load()
	}
	return out
}
