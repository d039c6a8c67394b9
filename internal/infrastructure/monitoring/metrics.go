package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Shell metrics
	CommandsTotal    *prometheus.CounterVec
	CommandDuration  *prometheus.HistogramVec
	SessionsActive   prometheus.Gauge
	AppLaunchesTotal *prometheus.CounterVec

	// Filesystem metrics
	FSMutations         *prometheus.CounterVec
	PersistenceFailures *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec
}

// NewMetrics creates collectors on a fresh registry that also carries the
// Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aurora_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aurora_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),

		CommandsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aurora_shell_commands_total",
				Help: "Shell command lines executed",
			},
			[]string{"command", "outcome"},
		),
		CommandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aurora_shell_command_duration_seconds",
				Help:    "Shell command execution time in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
			},
			[]string{"command"},
		),
		SessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "aurora_shell_sessions_active",
				Help: "Number of open shell sessions",
			},
		),
		AppLaunchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aurora_app_launches_total",
				Help: "Applications launched from #!app scripts",
			},
			[]string{"app"},
		),

		FSMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aurora_fs_mutations_total",
				Help: "Filesystem mutations by operation and outcome",
			},
			[]string{"op", "outcome"},
		),
		PersistenceFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aurora_persistence_failures_total",
				Help: "Writes to durable storage that failed after the in-memory change was applied",
			},
			[]string{"key"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "aurora_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aurora_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordCommand records one executed command line.
func (m *Metrics) RecordCommand(command string, failed bool, duration time.Duration) {
	m.CommandsTotal.WithLabelValues(command, outcome(!failed)).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(duration.Seconds())
}

// RecordMutation records a filesystem mutation attempt.
func (m *Metrics) RecordMutation(op string, ok bool) {
	m.FSMutations.WithLabelValues(op, outcome(ok)).Inc()
}

// RecordPersistenceFailure counts a snapshot or settings write that did not reach storage.
func (m *Metrics) RecordPersistenceFailure(key string) {
	m.PersistenceFailures.WithLabelValues(key).Inc()
}

// RecordAppLaunch counts a launch request.
func (m *Metrics) RecordAppLaunch(appID string) {
	m.AppLaunchesTotal.WithLabelValues(appID).Inc()
}

// SetSessionsActive sets the number of open shell sessions
func (m *Metrics) SetSessionsActive(count int) {
	m.SessionsActive.Set(float64(count))
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "error"
}
