// Package metrics provides Prometheus metrics for the activity signup service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values shared by callers.
const (
	ReasonAlreadySignedUp = "already_signed_up"
	ReasonNotRegistered   = "not_registered"
	ReasonActivityFull    = "activity_full"
	ReasonNotFound        = "not_found"
	ReasonQueueFull       = "queue_full"
	ReasonQueueClosed     = "queue_closed"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Roster
	signups         *prometheus.CounterVec
	unregistrations *prometheus.CounterVec
	rejections      *prometheus.CounterVec
	participants    *prometheus.GaugeVec
	capacity        *prometheus.GaugeVec
	activities      prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// Roster event pipeline
	eventsEnqueued     prometheus.Counter
	eventsDropped      *prometheus.CounterVec
	eventsProcessed    prometheus.Counter
	eventsDuplicate    prometheus.Counter
	eventsPublished    prometheus.Counter
	publishErrors      prometheus.Counter
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	workerCount        prometheus.Gauge
	journalSize        prometheus.Gauge
	processingDuration prometheus.Histogram

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by package-level helpers

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out of /metrics

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
// Registering two managers on the same registry panics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "signup",
		subsystem:        "activities",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.signups = auto.NewCounterVec(m.counterOpts("signups_total",
		"Total number of successful signups by activity"), []string{"activity"})
	m.unregistrations = auto.NewCounterVec(m.counterOpts("unregistrations_total",
		"Total number of successful unregistrations by activity"), []string{"activity"})
	m.rejections = auto.NewCounterVec(m.counterOpts("rejections_total",
		"Total number of rejected roster changes by activity and reason"), []string{"activity", "reason"})
	m.participants = auto.NewGaugeVec(m.gaugeOpts("participants",
		"Current number of participants by activity"), []string{"activity"})
	m.capacity = auto.NewGaugeVec(m.gaugeOpts("max_participants",
		"Configured capacity by activity"), []string{"activity"})
	m.activities = auto.NewGauge(m.gaugeOpts("count",
		"Number of activities in the catalog"))

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total",
		"Total number of HTTP requests by endpoint, method and status"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds"), []string{"endpoint", "method", "status_code"})
	m.httpErrors = auto.NewCounterVec(m.counterOpts("http_errors_total",
		"Total number of HTTP error responses by endpoint, method and error type"), []string{"endpoint", "method", "error_type"})

	m.eventsEnqueued = auto.NewCounter(m.counterOpts("roster_events_enqueued_total",
		"Total number of roster events accepted by the queue"))
	m.eventsDropped = auto.NewCounterVec(m.counterOpts("roster_events_dropped_total",
		"Total number of roster events the queue refused"), []string{"reason"})
	m.eventsProcessed = auto.NewCounter(m.counterOpts("roster_events_processed_total",
		"Total number of roster events written to the journal"))
	m.eventsDuplicate = auto.NewCounter(m.counterOpts("roster_events_duplicate_total",
		"Total number of roster events skipped as duplicates"))
	m.eventsPublished = auto.NewCounter(m.counterOpts("roster_events_published_total",
		"Total number of roster events published to the broker"))
	m.publishErrors = auto.NewCounter(m.counterOpts("roster_publish_errors_total",
		"Total number of failed broker publishes"))
	m.queueSize = auto.NewGauge(m.gaugeOpts("roster_queue_size",
		"Current number of roster events waiting in the queue"))
	m.queueCapacity = auto.NewGauge(m.gaugeOpts("roster_queue_capacity",
		"Capacity of the roster event queue"))
	m.workerCount = auto.NewGauge(m.gaugeOpts("roster_worker_count",
		"Number of roster event workers"))
	m.journalSize = auto.NewGauge(m.gaugeOpts("roster_journal_size",
		"Number of roster events retained in the journal"))
	m.processingDuration = auto.NewHistogram(m.histogramOpts("roster_event_processing_milliseconds",
		"Time spent processing one roster event in milliseconds"))

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_bytes",
		"Heap bytes allocated by the process"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutines",
		"Number of live goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_milliseconds",
		"Average GC pause in milliseconds"))
}

// RecordSignup counts a successful signup and updates the roster gauge.
func (m *Manager) RecordSignup(activity string, participants int) {
	if !m.enabled {
		return
	}
	m.signups.WithLabelValues(activity).Inc()
	m.participants.WithLabelValues(activity).Set(float64(participants))
}

// RecordUnregister counts a successful unregistration and updates the roster gauge.
func (m *Manager) RecordUnregister(activity string, participants int) {
	if !m.enabled {
		return
	}
	m.unregistrations.WithLabelValues(activity).Inc()
	m.participants.WithLabelValues(activity).Set(float64(participants))
}

// RecordRejection counts a refused roster change.
func (m *Manager) RecordRejection(activity, reason string) {
	if !m.enabled {
		return
	}
	m.rejections.WithLabelValues(activity, reason).Inc()
}

// UpdateRoster sets the participant and capacity gauges of one activity.
func (m *Manager) UpdateRoster(activity string, participants, capacity int) {
	if !m.enabled {
		return
	}
	m.participants.WithLabelValues(activity).Set(float64(participants))
	m.capacity.WithLabelValues(activity).Set(float64(capacity))
}

// UpdateActivityCount sets the catalog size gauge.
func (m *Manager) UpdateActivityCount(n int) {
	if !m.enabled {
		return
	}
	m.activities.Set(float64(n))
}

// RecordHTTPRequest records one served request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordHTTPError records an error response.
func (m *Manager) RecordHTTPError(endpoint, method, errorType string) {
	if !m.enabled {
		return
	}
	m.httpErrors.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordEventEnqueued counts a roster event accepted by the queue.
func (m *Manager) RecordEventEnqueued() {
	if m.enabled {
		m.eventsEnqueued.Inc()
	}
}

// RecordEventDropped counts a roster event the queue refused.
func (m *Manager) RecordEventDropped(reason string) {
	if m.enabled {
		m.eventsDropped.WithLabelValues(reason).Inc()
	}
}

// RecordEventProcessed counts a journaled roster event and its processing time.
func (m *Manager) RecordEventProcessed(durationMs float64) {
	if !m.enabled {
		return
	}
	m.eventsProcessed.Inc()
	m.processingDuration.Observe(durationMs)
}

// RecordEventDuplicate counts a roster event skipped by the deduper.
func (m *Manager) RecordEventDuplicate() {
	if m.enabled {
		m.eventsDuplicate.Inc()
	}
}

// RecordEventPublished counts a roster event written to the broker.
func (m *Manager) RecordEventPublished() {
	if m.enabled {
		m.eventsPublished.Inc()
	}
}

// RecordPublishError counts a failed broker write.
func (m *Manager) RecordPublishError() {
	if m.enabled {
		m.publishErrors.Inc()
	}
}

// UpdateQueue sets queue size and capacity gauges.
func (m *Manager) UpdateQueue(size, capacity int) {
	if !m.enabled {
		return
	}
	m.queueSize.Set(float64(size))
	m.queueCapacity.Set(float64(capacity))
}

// UpdateWorkerCount sets the worker gauge.
func (m *Manager) UpdateWorkerCount(n int) {
	if m.enabled {
		m.workerCount.Set(float64(n))
	}
}

// UpdateJournalSize sets the journal gauge.
func (m *Manager) UpdateJournalSize(n int) {
	if m.enabled {
		m.journalSize.Set(float64(n))
	}
}

// UpdateSystem sets the process level gauges.
func (m *Manager) UpdateSystem(memoryBytes uint64, goroutines int, avgGCPauseMs float64) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(memoryBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
	if avgGCPauseMs > 0 {
		m.systemGCPauseTime.Observe(avgGCPauseMs)
	}
}

// Package-level helpers delegate to the global manager.

// RecordSignup records a signup on the global manager.
func RecordSignup(activity string, participants int) {
	globalManager.RecordSignup(activity, participants)
}

// RecordUnregister records an unregistration on the global manager.
func RecordUnregister(activity string, participants int) {
	globalManager.RecordUnregister(activity, participants)
}

// RecordRejection records a refused roster change on the global manager.
func RecordRejection(activity, reason string) {
	globalManager.RecordRejection(activity, reason)
}

// UpdateRoster sets roster gauges on the global manager.
func UpdateRoster(activity string, participants, capacity int) {
	globalManager.UpdateRoster(activity, participants, capacity)
}

// UpdateActivityCount sets the catalog size on the global manager.
func UpdateActivityCount(n int) {
	globalManager.UpdateActivityCount(n)
}

// RecordHTTPRequest records a served request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordHTTPError records an error response on the global manager.
func RecordHTTPError(endpoint, method, errorType string) {
	globalManager.RecordHTTPError(endpoint, method, errorType)
}

func RecordEventEnqueued()                    { globalManager.RecordEventEnqueued() }
func RecordEventDropped(reason string)        { globalManager.RecordEventDropped(reason) }
func RecordEventProcessed(durationMs float64) { globalManager.RecordEventProcessed(durationMs) }
func RecordEventDuplicate()                   { globalManager.RecordEventDuplicate() }
func RecordEventPublished()                   { globalManager.RecordEventPublished() }
func RecordPublishError()                     { globalManager.RecordPublishError() }
func UpdateQueue(size, capacity int)          { globalManager.UpdateQueue(size, capacity) }
func UpdateWorkerCount(n int)                 { globalManager.UpdateWorkerCount(n) }
func UpdateJournalSize(n int)                 { globalManager.UpdateJournalSize(n) }

// UpdateSystem sets process gauges on the global manager.
func UpdateSystem(memoryBytes uint64, goroutines int, avgGCPauseMs float64) {
	globalManager.UpdateSystem(memoryBytes, goroutines, avgGCPauseMs)
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
