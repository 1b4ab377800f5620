// Package metrics provides Prometheus recorders for the summarization pipeline.
//
// All metrics are registered with the Prometheus default registry and exposed
// via the /metrics endpoint. The recorder implements the MetricsRecorder
// interface consumed by the summary use case, so tests can substitute a
// no-op or capturing recorder without touching Prometheus.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"doc-digest/internal/usecase/summary"
)

// PipelineMetrics records summarization pipeline metrics to Prometheus.
type PipelineMetrics struct {
	documentWords  prometheus.Histogram
	summaryWords   prometheus.Histogram
	chunksTotal    prometheus.Counter
	chunkFailures  prometheus.Counter
	durationHist   prometheus.Histogram
	outcomeCounter *prometheus.CounterVec
}

var _ summary.MetricsRecorder = (*PipelineMetrics)(nil)

var (
	pipelineMetricsInstance *PipelineMetrics
	pipelineMetricsOnce     sync.Once
)

// getOrCreateHistogram gets an existing histogram or creates a new one if it doesn't exist.
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

// getOrCreateCounter gets an existing counter or creates a new one if it doesn't exist.
func getOrCreateCounter(opts prometheus.CounterOpts) prometheus.Counter {
	c := prometheus.NewCounter(opts)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Counter)
		}
		return promauto.NewCounter(opts)
	}
	return c
}

// getOrCreateCounterVec gets an existing counter vector or creates a new one if it doesn't exist.
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

// NewPipelineMetrics creates the Prometheus-based pipeline metrics recorder.
// Uses singleton pattern to avoid duplicate metric registration in tests.
func NewPipelineMetrics() *PipelineMetrics {
	pipelineMetricsOnce.Do(func() {
		pipelineMetricsInstance = &PipelineMetrics{
			documentWords: getOrCreateHistogram(prometheus.HistogramOpts{
				Name:    "document_words",
				Help:    "Distribution of input document sizes in words",
				Buckets: prometheus.ExponentialBuckets(50, 2, 12),
			}),
			summaryWords: getOrCreateHistogram(prometheus.HistogramOpts{
				Name:    "summary_words",
				Help:    "Distribution of final summary sizes in words",
				Buckets: []float64{50, 100, 250, 500, 750, 1000, 1500, 2000},
			}),
			chunksTotal: getOrCreateCounter(prometheus.CounterOpts{
				Name: "summary_chunks_total",
				Help: "Total number of document chunks dispatched for summarization",
			}),
			chunkFailures: getOrCreateCounter(prometheus.CounterOpts{
				Name: "summary_chunk_failures_total",
				Help: "Total number of chunks whose summarization call failed and was skipped",
			}),
			durationHist: getOrCreateHistogram(prometheus.HistogramOpts{
				Name:    "summary_pipeline_duration_seconds",
				Help:    "End-to-end duration of the summarization pipeline",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			}),
			outcomeCounter: getOrCreateCounterVec(prometheus.CounterOpts{
				Name: "summary_requests_total",
				Help: "Total summarization requests by terminal outcome",
			}, []string{"outcome"}),
		}
	})
	return pipelineMetricsInstance
}

// RecordDocumentWords records the word count of an input document.
func (p *PipelineMetrics) RecordDocumentWords(words int) {
	p.documentWords.Observe(float64(words))
}

// RecordSummaryWords records the word count of a produced summary.
func (p *PipelineMetrics) RecordSummaryWords(words int) {
	p.summaryWords.Observe(float64(words))
}

// RecordChunks records the number of chunks dispatched in one request.
func (p *PipelineMetrics) RecordChunks(count int) {
	p.chunksTotal.Add(float64(count))
}

// RecordChunkFailures records the number of per-chunk failures in one request.
func (p *PipelineMetrics) RecordChunkFailures(count int) {
	p.chunkFailures.Add(float64(count))
}

// RecordDuration records the end-to-end pipeline duration.
func (p *PipelineMetrics) RecordDuration(duration time.Duration) {
	p.durationHist.Observe(duration.Seconds())
}

// RecordOutcome records the terminal outcome of a summarization request.
func (p *PipelineMetrics) RecordOutcome(outcome string) {
	p.outcomeCounter.WithLabelValues(outcome).Inc()
}
