package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Session states reported on console_session_state.
var sessionStates = []string{"initializing", "unauthenticated", "authenticated"}

// Metrics holds all console collectors.
type Metrics struct {
	SessionState *prometheus.GaugeVec
	Logins       *prometheus.CounterVec
	Logouts      prometheus.Counter

	BackendRequests *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	WSConnections prometheus.Gauge
	CircuitState  *prometheus.GaugeVec
}

// NewMetrics creates and registers the console collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SessionState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "console_session_state",
				Help: "Current session state (1 = active state)",
			},
			[]string{"state"},
		),
		Logins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_session_logins_total",
				Help: "Login attempts by outcome",
			},
			[]string{"outcome"},
		),
		Logouts: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "console_session_logouts_total",
				Help: "Explicit and forced logouts",
			},
		),
		BackendRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_backend_requests_total",
				Help: "Outbound requests to the outreach backend",
			},
			[]string{"method", "route", "status"},
		),
		BackendDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "console_backend_request_duration_seconds",
				Help:    "Outbound request duration in seconds",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "route"},
		),
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_http_requests_total",
				Help: "Requests served by the console server",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "console_http_request_duration_seconds",
				Help:    "Console server request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "console_ws_connections",
				Help: "Open session event streams",
			},
		),
		CircuitState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "console_circuit_state",
				Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
			},
			[]string{"name"},
		),
	}
}

// SetSessionState marks state as the only active session state.
func (m *Metrics) SetSessionState(state string) {
	if m == nil {
		return
	}
	for _, s := range sessionStates {
		value := 0.0
		if s == state {
			value = 1
		}
		m.SessionState.WithLabelValues(s).Set(value)
	}
}

// RecordLogin counts a login attempt.
func (m *Metrics) RecordLogin(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

// RecordLogout counts a logout.
func (m *Metrics) RecordLogout() {
	if m == nil {
		return
	}
	m.Logouts.Inc()
}

// RecordBackendRequest records an outbound call. status is "error" when no
// response was received.
func (m *Metrics) RecordBackendRequest(method, route, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.BackendRequests.WithLabelValues(method, route, status).Inc()
	m.BackendDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordHTTPRequest records a request served by the console.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// IncWSConnections increments open event streams.
func (m *Metrics) IncWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Inc()
}

// DecWSConnections decrements open event streams.
func (m *Metrics) DecWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Dec()
}

// SetCircuitState reports a breaker position.
func (m *Metrics) SetCircuitState(name string, state int) {
	if m == nil {
		return
	}
	m.CircuitState.WithLabelValues(name).Set(float64(state))
}
