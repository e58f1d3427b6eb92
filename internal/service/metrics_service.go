package service

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	auditDrops      prometheus.Counter
	backupDuration  prometheus.Histogram
	restoreFailures prometheus.Counter
}

// NewMetricsService registers the core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	auditDrops := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "audit_log_drops_total",
		Help: "Audit log writes that failed and were swallowed",
	})

	backupDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "backup_duration_seconds",
		Help:    "Duration of backup snapshot creation",
		Buckets: prometheus.DefBuckets,
	})

	restoreFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "backup_restore_failures_total",
		Help: "Backup restore attempts that ended in rollback",
	})

	registry.MustRegister(requestDuration, requestTotal, cacheLatency,
		cacheHits, cacheMisses, auditDrops, backupDuration, restoreFailures)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheLatency:    cacheLatency,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		auditDrops:      auditDrops,
		backupDuration:  backupDuration,
		restoreFailures: restoreFailures,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// RecordHTTPRequest tracks a served HTTP request.
func (s *MetricsService) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	s.requestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordCacheOperation tracks a cache lookup outcome.
func (s *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	s.cacheLatency.Observe(duration.Seconds())
	if hit {
		s.cacheHits.Inc()
	} else {
		s.cacheMisses.Inc()
	}
}

// RecordAuditDrop counts a swallowed audit log failure.
func (s *MetricsService) RecordAuditDrop() {
	s.auditDrops.Inc()
}

// RecordBackupDuration tracks snapshot creation time.
func (s *MetricsService) RecordBackupDuration(duration time.Duration) {
	s.backupDuration.Observe(duration.Seconds())
}

// RecordRestoreFailure counts a rolled-back restore.
func (s *MetricsService) RecordRestoreFailure() {
	s.restoreFailures.Inc()
}
