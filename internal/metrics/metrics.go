package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wastewise"

// Recorder exposes prediction and request metrics. A nil *Recorder is valid
// and records nothing.
type Recorder struct {
	registry    *prometheus.Registry
	predictions *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	requests    *prometheus.CounterVec
	cacheHits   *prometheus.CounterVec
}

// NewRecorder registers the collectors on a fresh registry together with the
// Go runtime and process collectors.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Recorder{
		registry: registry,
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Predictions served, by model and category.",
		}, []string{"model", "category"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_duration_seconds",
			Help:      "Time spent computing a prediction.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"model"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests handled, by route and status code.",
		}, []string{"route", "method", "status"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analytics_cache_lookups_total",
			Help:      "Analytics report cache lookups, by result.",
		}, []string{"result"}),
	}
	registry.MustRegister(r.predictions, r.latency, r.requests, r.cacheHits)

	return r
}

// ObservePrediction counts one prediction and its duration.
func (r *Recorder) ObservePrediction(model, category string, took time.Duration) {
	if r == nil {
		return
	}
	r.predictions.WithLabelValues(model, category).Inc()
	r.latency.WithLabelValues(model).Observe(took.Seconds())
}

// ObserveRequest counts one handled HTTP request.
func (r *Recorder) ObserveRequest(route, method, status string) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(route, method, status).Inc()
}

// ObserveCacheLookup counts an analytics cache hit or miss.
func (r *Recorder) ObserveCacheLookup(hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheHits.WithLabelValues(result).Inc()
}

// Registry returns the underlying registry, or nil for a nil Recorder.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
