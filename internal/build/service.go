package build

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// BuildStatus describes how a whole run ended.
type BuildStatus string

const (
	// BuildStatusCompleted means every step was attempted. Individual steps
	// may still have failed.
	BuildStatusCompleted BuildStatus = "completed"
	// BuildStatusNotFound means the manifest file does not exist.
	BuildStatusNotFound BuildStatus = "not_found"
	// BuildStatusLoadFailed means the manifest could not be read or parsed.
	BuildStatusLoadFailed BuildStatus = "load_failed"
)

// StepRecord is one executed step.
type StepRecord struct {
	Index    int
	Tool     string
	Outcome  Outcome
	Duration time.Duration
}

// BuildResult contains the outcome of a manifest run.
type BuildResult struct {
	RunID    string
	Manifest string
	Status   BuildStatus

	// Steps holds one record per manifest step, in manifest order. It is
	// empty when the manifest failed to load.
	Steps []StepRecord

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Failures counts steps that did not end with KindOK.
func (r *BuildResult) Failures() int {
	n := 0
	for _, s := range r.Steps {
		if s.Outcome.Kind != KindOK {
			n++
		}
	}
	return n
}

// Report renders the steps as report entries.
func (r *BuildResult) Report() Report {
	rep := make(Report, 0, len(r.Steps))
	for _, s := range r.Steps {
		rep = append(rep, StepResult{Tool: s.Tool, Result: s.Outcome.Render(s.Tool)})
	}
	return rep
}

// StepResult is one report entry.
type StepResult struct {
	Tool   string `json:"tool"`
	Result string `json:"result"`
}

// Report is the ordered list of step results returned to callers.
type Report []StepResult

// JSON serializes the report as an array indented with two spaces. An
// empty report is "[]".
func (r Report) JSON() (string, error) {
	if r == nil {
		r = Report{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
