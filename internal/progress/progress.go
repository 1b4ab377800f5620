// Package progress tracks the status of summarization requests.
//
// Each request owns a Tracker that pipeline stages write to; observers read it
// either by polling (State) or by subscribing to a change-triggered stream
// (Subscribe). Trackers are registered in a Hub keyed by request ID so that
// concurrent requests cannot clobber each other's status. The Hub also keeps
// a pointer to the most recently started tracker for clients that do not
// carry a request ID.
package progress

// Stage is a named phase of the summarization pipeline, used for status
// reporting only, never for control flow.
type Stage string

// Pipeline stages in the order they are normally entered. The set is not
// exhaustive: new stages may be added without breaking observers, which treat
// the stage as an opaque label.
const (
	StageIdle         Stage = ""
	StageInit         Stage = "init"
	StageExtracting   Stage = "extracting"
	StageChunking     Stage = "chunking"
	StageSummarizing  Stage = "summarizing"
	StageCombining    Stage = "combining"
	StageFinalizing   Stage = "finalizing"
	StageQAProcessing Stage = "qa_processing"
	StageQAGenerating Stage = "qa_generating"
	StageQAComplete   Stage = "qa_complete"
	StageComplete     Stage = "complete"
	StageError        Stage = "error"
)

// Terminal reports whether the stage ends a request's lifecycle.
func (s Stage) Terminal() bool {
	return s == StageComplete || s == StageError || s == StageQAComplete
}

// State is a snapshot of a request's progress.
// Progress is a percentage in [0, 100] and is non-decreasing over the
// lifetime of a request.
type State struct {
	Stage    Stage  `json:"stage"`
	Progress int    `json:"progress"`
	Message  string `json:"message"`
}

// Done reports whether the request has reached its terminal progress value.
func (s State) Done() bool {
	return s.Progress >= 100
}
