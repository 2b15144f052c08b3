package metrics

import "time"

// OutcomeLabel enumerates step outcome categories for counters.
type OutcomeLabel string

const (
	OutcomeOK      OutcomeLabel = "ok"
	OutcomeUnknown OutcomeLabel = "unknown"
	OutcomeFailed  OutcomeLabel = "failed"
)

// BuildOutcomeLabel describes how a whole manifest run ended.
type BuildOutcomeLabel string

const (
	BuildCompleted  BuildOutcomeLabel = "completed"
	BuildLoadFailed BuildOutcomeLabel = "load_failed"
	BuildNotFound   BuildOutcomeLabel = "not_found"
)

// Recorder defines observability hooks for manifest builds, individual steps
// and export conversions. All methods must be safe to call on NoopRecorder.
type Recorder interface {
	ObserveStepDuration(tool string, d time.Duration)
	IncStepOutcome(tool string, outcome OutcomeLabel)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	IncExportResult(format string, success bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStepDuration(string, time.Duration) {}
func (NoopRecorder) IncStepOutcome(string, OutcomeLabel)       {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)        {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)         {}
func (NoopRecorder) IncExportResult(string, bool)              {}
