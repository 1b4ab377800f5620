package summarizer

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CallMetricsRecorder records per-call measurements for the model adapters.
// The interface exists so unit tests can inject a mock instead of Prometheus
// and so the recording backend can be swapped without touching the adapters.
type CallMetricsRecorder interface {
	// RecordOutputRunes records the length of a generated summary in runes.
	RecordOutputRunes(length int)

	// RecordDuration records the time taken by one API call.
	RecordDuration(duration time.Duration)

	// RecordFailure increments the failure counter for the given provider.
	RecordFailure(provider string)
}

// PrometheusCallMetrics implements CallMetricsRecorder using Prometheus.
type PrometheusCallMetrics struct {
	outputHistogram   prometheus.Histogram
	durationHistogram prometheus.Histogram
	failureCounter    *prometheus.CounterVec
}

var (
	callMetricsInstance *PrometheusCallMetrics
	callMetricsOnce     sync.Once
)

// getOrCreateHistogram gets an existing histogram or creates a new one if it doesn't exist
func getOrCreateHistogram(opts prometheus.HistogramOpts) prometheus.Histogram {
	h := prometheus.NewHistogram(opts)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Histogram)
		}
		return promauto.NewHistogram(opts)
	}
	return h
}

// getOrCreateCounterVec gets an existing counter vec or creates a new one if it doesn't exist
func getOrCreateCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		return promauto.NewCounterVec(opts, labels)
	}
	return c
}

// NewPrometheusCallMetrics creates the Prometheus-backed recorder.
// Uses singleton pattern to avoid duplicate metric registration in tests.
func NewPrometheusCallMetrics() *PrometheusCallMetrics {
	callMetricsOnce.Do(func() {
		callMetricsInstance = &PrometheusCallMetrics{
			outputHistogram: getOrCreateHistogram(prometheus.HistogramOpts{
				Name:    "summarizer_output_runes",
				Help:    "Distribution of model output lengths in Unicode runes",
				Buckets: []float64{100, 300, 500, 1000, 2000, 4000, 8000},
			}),
			durationHistogram: getOrCreateHistogram(prometheus.HistogramOpts{
				Name:    "summarizer_call_duration_seconds",
				Help:    "Time taken by one summarization API call",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			}),
			failureCounter: getOrCreateCounterVec(prometheus.CounterOpts{
				Name: "summarizer_call_failures_total",
				Help: "Total number of failed summarization API calls by provider",
			}, []string{"provider"}),
		}
	})
	return callMetricsInstance
}

// RecordOutputRunes implements CallMetricsRecorder.RecordOutputRunes
func (p *PrometheusCallMetrics) RecordOutputRunes(length int) {
	p.outputHistogram.Observe(float64(length))
}

// RecordDuration implements CallMetricsRecorder.RecordDuration
func (p *PrometheusCallMetrics) RecordDuration(duration time.Duration) {
	p.durationHistogram.Observe(duration.Seconds())
}

// RecordFailure implements CallMetricsRecorder.RecordFailure
func (p *PrometheusCallMetrics) RecordFailure(provider string) {
	p.failureCounter.WithLabelValues(provider).Inc()
}
