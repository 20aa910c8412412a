// Package metrics holds Prometheus collectors for sources, aggregation and posting.
// All methods are safe to call on a nil *Metrics, which disables collection.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all collectors for the service
type Metrics struct {
	registry *prometheus.Registry

	SourceRequests *prometheus.CounterVec
	SourceItems    *prometheus.CounterVec
	SourceDuration *prometheus.HistogramVec
	AggregateItems *prometheus.HistogramVec
	Tweets         *prometheus.CounterVec
	HTTPRequests   *prometheus.CounterVec
}

// New makes metrics registered on a dedicated registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SourceRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "copewatch_source_requests_total",
			Help: "Outbound requests to content providers by source and status",
		}, []string{"source", "status"}),
		SourceItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "copewatch_source_items_total",
			Help: "Accepted items returned by source adapters",
		}, []string{"source"}),
		SourceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "copewatch_source_request_duration_seconds",
			Help:    "Duration of outbound provider requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		AggregateItems: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "copewatch_aggregate_items",
			Help:    "Number of items returned by aggregation endpoints",
			Buckets: []float64{0, 1, 5, 10, 20, 30},
		}, []string{"endpoint"}),
		Tweets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "copewatch_tweets_total",
			Help: "Posting attempts by trigger and status",
		}, []string{"trigger", "status"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "copewatch_http_requests_total",
			Help: "Inbound HTTP requests by method and response code",
		}, []string{"method", "code"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.SourceRequests, m.SourceItems, m.SourceDuration, m.AggregateItems, m.Tweets, m.HTTPRequests,
	)
	return m
}

// Handler returns the exposition handler for this registry
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveSourceRequest records one provider call, status is "ok", "error" or an HTTP code
func (m *Metrics) ObserveSourceRequest(source, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.SourceRequests.WithLabelValues(source, status).Inc()
	m.SourceDuration.WithLabelValues(source).Observe(dur.Seconds())
}

// AddSourceItems counts accepted items from a source
func (m *Metrics) AddSourceItems(source string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SourceItems.WithLabelValues(source).Add(float64(n))
}

// ObserveAggregate records the size of an aggregation result
func (m *Metrics) ObserveAggregate(endpoint string, n int) {
	if m == nil {
		return
	}
	m.AggregateItems.WithLabelValues(endpoint).Observe(float64(n))
}

// IncTweet counts a posting attempt
func (m *Metrics) IncTweet(trigger, status string) {
	if m == nil {
		return
	}
	m.Tweets.WithLabelValues(trigger, status).Inc()
}

// Middleware counts inbound requests by method and status code
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)
		m.HTTPRequests.WithLabelValues(r.Method, strconv.Itoa(sw.code)).Inc()
	})
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
