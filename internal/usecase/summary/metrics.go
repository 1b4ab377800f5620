package summary

import "time"

// MetricsRecorder receives pipeline measurements. The Prometheus-backed
// implementation lives in internal/observability/metrics; NopMetrics serves
// tests and the CLI.
type MetricsRecorder interface {
	RecordDocumentWords(words int)
	RecordSummaryWords(words int)
	RecordChunks(count int)
	RecordChunkFailures(count int)
	RecordDuration(duration time.Duration)
	RecordOutcome(outcome string)
}

// NopMetrics discards all measurements.
type NopMetrics struct{}

func (NopMetrics) RecordDocumentWords(int)      {}
func (NopMetrics) RecordSummaryWords(int)       {}
func (NopMetrics) RecordChunks(int)             {}
func (NopMetrics) RecordChunkFailures(int)      {}
func (NopMetrics) RecordDuration(time.Duration) {}
func (NopMetrics) RecordOutcome(string)         {}
