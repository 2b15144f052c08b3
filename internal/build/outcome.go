package build

import (
	"git.home.luguber.info/inful/docxbuilder/internal/metrics"
)

// OutcomeKind tags how a step ended.
type OutcomeKind int

const (
	// KindOK means the tool ran and returned a status string.
	KindOK OutcomeKind = iota
	// KindUnknown means no tool was registered under the step name.
	KindUnknown
	// KindFailed means the tool returned an error or panicked.
	KindFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindUnknown:
		return "unknown"
	case KindFailed:
		return "failed"
	default:
		return "invalid"
	}
}

func (k OutcomeKind) label() metrics.OutcomeLabel {
	switch k {
	case KindUnknown:
		return metrics.OutcomeUnknown
	case KindFailed:
		return metrics.OutcomeFailed
	default:
		return metrics.OutcomeOK
	}
}

// Outcome is the result of one step. Detail holds the status string for
// KindOK and the error message for KindFailed.
type Outcome struct {
	Kind   OutcomeKind
	Detail string
}

// Ok wraps a tool's status string.
func Ok(status string) Outcome { return Outcome{Kind: KindOK, Detail: status} }

// UnknownTool marks a step whose tool is not registered.
func UnknownTool() Outcome { return Outcome{Kind: KindUnknown} }

// Failed records a step that returned an error or panicked.
func Failed(msg string) Outcome { return Outcome{Kind: KindFailed, Detail: msg} }

// Render formats the outcome as the report's result string.
func (o Outcome) Render(tool string) string {
	switch o.Kind {
	case KindUnknown:
		return "Unknown tool: " + tool
	case KindFailed:
		return "Error running " + tool + ": " + o.Detail
	default:
		return o.Detail
	}
}
