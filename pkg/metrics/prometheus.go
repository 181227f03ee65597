// Package metrics provides Prometheus metrics for teambalancer runs.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch latencies are network bound; buckets in milliseconds.
var defaultLatencyBuckets = []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000}

// Manager manages all Prometheus metrics for a run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Roster
	playersTotal      prometheus.Gauge
	duplicateNames    prometheus.Counter
	playersSkipped    prometheus.Counter
	playersScored     *prometheus.CounterVec
	groupMedianScore  prometheus.Gauge
	runDurationSecond prometheus.Gauge

	// Retrieval
	fetchLatency *prometheus.HistogramVec
	fetchErrors  *prometheus.CounterVec

	// Queue and workers
	queueEnqueued prometheus.Counter
	queueDequeued prometheus.Counter
	queueRejected prometheus.Counter
	workerActive  prometheus.Gauge

	// Errors by pipeline stage
	errorsByStage *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "teambalancer",
		subsystem:        "run",
		histogramBuckets: defaultLatencyBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.playersTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_total",
		Help:      "Distinct player names read from the roster",
	})

	m.duplicateNames = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicate_names_total",
		Help:      "Roster lines collapsed into an earlier entry",
	})

	m.playersSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_skipped_total",
		Help:      "Players dropped from the cohort after a retrieval or scoring failure",
	})

	m.playersScored = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "players_scored_total",
			Help:      "Players scored, by score basis",
		},
		[]string{"basis"},
	)

	m.groupMedianScore = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "group_median_score",
		Help:      "Median score across the cohort",
	})

	m.runDurationSecond = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duration_seconds",
		Help:      "Wall time of the last run",
	})

	m.fetchLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "fetch_latency_milliseconds",
			Help:      "Rank history fetch latency in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"provider"},
	)

	m.fetchErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "fetch_errors_total",
			Help:      "Failed rank history fetches",
		},
		[]string{"provider"},
	)

	m.queueEnqueued = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueued_total",
		Help:      "Fetch jobs accepted by the queue",
	})

	m.queueDequeued = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_dequeued_total",
		Help:      "Fetch jobs handed to workers",
	})

	m.queueRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_rejected_total",
		Help:      "Fetch jobs refused because the queue was full or closed",
	})

	m.workerActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "workers_active",
		Help:      "Fetch workers currently running",
	})

	m.errorsByStage = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_total",
			Help:      "Errors by pipeline stage and kind",
		},
		[]string{"stage", "kind"},
	)
}

// UpdatePlayersTotal sets the number of distinct roster names.
func UpdatePlayersTotal(n int) {
	globalManager.playersTotal.Set(float64(n))
}

// RecordDuplicateNames adds collapsed roster lines.
func RecordDuplicateNames(n int) {
	globalManager.duplicateNames.Add(float64(n))
}

// RecordPlayerSkipped increments the skipped players counter.
func RecordPlayerSkipped() {
	globalManager.playersSkipped.Inc()
}

// RecordPlayerScored increments the scored counter for a basis.
func RecordPlayerScored(basis string) {
	globalManager.playersScored.WithLabelValues(basis).Inc()
}

// UpdateGroupMedianScore sets the cohort median.
func UpdateGroupMedianScore(v float64) {
	globalManager.groupMedianScore.Set(v)
}

// UpdateRunDuration sets the run wall time in seconds.
func UpdateRunDuration(seconds float64) {
	globalManager.runDurationSecond.Set(seconds)
}

// RecordFetchLatency records a fetch latency in milliseconds.
func RecordFetchLatency(provider string, latencyMs float64) {
	globalManager.fetchLatency.WithLabelValues(provider).Observe(latencyMs)
}

// RecordFetchError increments fetch errors for a provider.
func RecordFetchError(provider string) {
	globalManager.fetchErrors.WithLabelValues(provider).Inc()
}

// RecordQueueEnqueue increments accepted jobs.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueDequeue increments dequeued jobs.
func RecordQueueDequeue() {
	globalManager.queueDequeued.Inc()
}

// RecordQueueRejected increments refused jobs.
func RecordQueueRejected() {
	globalManager.queueRejected.Inc()
}

// UpdateWorkerActiveCount sets the number of running workers.
func UpdateWorkerActiveCount(n int) {
	globalManager.workerActive.Set(float64(n))
}

// RecordErrorByStage increments the error counter for a stage.
func RecordErrorByStage(stage, kind string) {
	globalManager.errorsByStage.WithLabelValues(stage, kind).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes every metric in text exposition format, for the node
// exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}
