// Package metrics exposes prometheus instruments for the HTTP surface and
// the flattening pipeline.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics counts flattening work per data domain ("usage", "seats").
type PipelineMetrics struct {
	reportsTotal *prometheus.CounterVec
	rowsTotal    *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	cacheResults *prometheus.CounterVec
}

func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	m := &PipelineMetrics{
		reportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "insights_reports_flattened_total",
			Help: "Flatten invocations that produced tables.",
		}, []string{"domain"}),
		rowsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "insights_rows_produced_total",
			Help: "Flat table rows produced, by domain and table.",
		}, []string{"domain", "table"}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "insights_flatten_errors_total",
			Help: "Flatten failures, by domain and error kind.",
		}, []string{"domain", "kind"}),
		cacheResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "insights_flatten_cache_total",
			Help: "Flatten memoizer lookups, by domain and result.",
		}, []string{"domain", "result"}),
	}
	reg.MustRegister(m.reportsTotal, m.rowsTotal, m.errorsTotal, m.cacheResults)
	return m
}

func (m *PipelineMetrics) ReportFlattened(domain string) {
	if m == nil {
		return
	}
	m.reportsTotal.WithLabelValues(domain).Inc()
}

func (m *PipelineMetrics) RowsProduced(domain, table string, n int) {
	if m == nil {
		return
	}
	m.rowsTotal.WithLabelValues(domain, table).Add(float64(n))
}

func (m *PipelineMetrics) FlattenError(domain, kind string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(domain, kind).Inc()
}

func (m *PipelineMetrics) CacheResult(domain string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheResults.WithLabelValues(domain, result).Inc()
}

// HTTPMetrics instruments request throughput and latency per route.
type HTTPMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "insights_http_requests_total",
			Help: "HTTP requests, by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "insights_http_request_duration_seconds",
			Help:    "HTTP request latency, by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration)
	return m
}

// GinMiddleware records one observation per completed request.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.requestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
