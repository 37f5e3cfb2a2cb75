package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/legacylearning/intake-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation and provides
// lightweight snapshots for the admin surface.
type MetricsService struct {
	registry          *prometheus.Registry
	handler           http.Handler
	requestDuration   *prometheus.HistogramVec
	requestTotal      *prometheus.CounterVec
	blobOpDuration    *prometheus.HistogramVec
	blobOpErrors      *prometheus.CounterVec
	outlineDrafts     prometheus.Counter
	documentsRendered *prometheus.CounterVec

	requestCount         uint64
	requestDurationTotal uint64
	blobOpCount          uint64
	blobOpDurationTotal  uint64
	blobErrCount         uint64
	outlineDraftCount    uint64
	documentCount        uint64
}

// NewMetricsService registers core Prometheus collectors.
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

	blobOpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blob_operation_duration_seconds",
		Help:    "Duration of blob store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	blobOpErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "blob_operation_errors_total",
		Help: "Total failed blob store operations",
	}, []string{"operation"})

	outlineDrafts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "outline_drafts_total",
		Help: "Total outline drafts requested from the LLM provider",
	})

	documentsRendered := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "documents_rendered_total",
		Help: "Total documents rendered, by format",
	}, []string{"format"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, blobOpDuration, blobOpErrors, outlineDrafts, documentsRendered, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:          registry,
		handler:           handler,
		requestDuration:   requestDuration,
		requestTotal:      requestTotal,
		blobOpDuration:    blobOpDuration,
		blobOpErrors:      blobOpErrors,
		outlineDrafts:     outlineDrafts,
		documentsRendered: documentsRendered,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveBlobOperation records blob store timing and failures.
func (m *MetricsService) ObserveBlobOperation(op string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.blobOpDuration.WithLabelValues(op).Observe(duration.Seconds())
	atomic.AddUint64(&m.blobOpCount, 1)
	atomic.AddUint64(&m.blobOpDurationTotal, uint64(duration.Nanoseconds()))
	if err != nil {
		m.blobOpErrors.WithLabelValues(op).Inc()
		atomic.AddUint64(&m.blobErrCount, 1)
	}
}

// RecordOutlineDraft counts one draft request against the LLM provider.
func (m *MetricsService) RecordOutlineDraft() {
	if m == nil {
		return
	}
	m.outlineDrafts.Inc()
	atomic.AddUint64(&m.outlineDraftCount, 1)
}

// RecordDocumentRender counts one rendered document.
func (m *MetricsService) RecordDocumentRender(format string) {
	if m == nil {
		return
	}
	m.documentsRendered.WithLabelValues(format).Inc()
	atomic.AddUint64(&m.documentCount, 1)
}

// Snapshot returns aggregated metrics for the admin endpoint.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	blobOps := atomic.LoadUint64(&m.blobOpCount)
	blobDuration := atomic.LoadUint64(&m.blobOpDurationTotal)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	var avgBlobMs float64
	if blobOps > 0 {
		avgBlobMs = float64(blobDuration) / float64(blobOps) / float64(time.Millisecond)
	}

	return models.SystemMetrics{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		BlobOperations:           blobOps,
		BlobErrors:               atomic.LoadUint64(&m.blobErrCount),
		AverageBlobOperationMs:   avgBlobMs,
		OutlineDrafts:            atomic.LoadUint64(&m.outlineDraftCount),
		DocumentsRendered:        atomic.LoadUint64(&m.documentCount),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
