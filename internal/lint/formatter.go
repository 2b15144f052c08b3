package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter writes a Result for the reviewed path. detected is true when
// the path came from documents.root rather than the command line.
type Formatter interface {
	Format(w io.Writer, result *Result, path string, detected bool) error
}

// NewFormatter returns the formatter for format, text by default.
func NewFormatter(format string) Formatter {
	if format == "json" {
		return JSONFormatter{}
	}
	return TextFormatter{}
}

// TextFormatter groups issues under the document they belong to.
type TextFormatter struct{}

var separator = strings.Repeat("━", 60)

// printer keeps the first write error so the report body stays linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) linef(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (TextFormatter) Format(w io.Writer, result *Result, path string, detected bool) error {
	p := &printer{w: w}
	if detected {
		p.linef("Reviewing documents root: %s", path)
	} else {
		p.linef("Reviewing: %s", path)
	}
	p.linef("%s", separator)

	current := ""
	for _, issue := range result.Issues {
		if issue.FilePath != current {
			current = issue.FilePath
			p.linef("")
			p.linef("%s", current)
		}
		p.linef("  %s %s %s [%s]: %s", issue.Severity.icon(), issue.location(), issue.Severity, issue.Rule, issue.Message)
		if issue.Explanation != "" {
			p.linef("      %q", issue.Explanation)
		}
		if issue.Fix != "" {
			p.linef("      fix: %s", issue.Fix)
		}
	}

	p.linef("")
	p.linef("%s", separator)
	p.linef("%s scanned, %s, %s, %d info",
		plural(result.FilesTotal, "document"),
		plural(result.ErrorCount(), "error"),
		plural(result.WarningCount(), "warning"),
		result.InfoCount())
	p.linef("%s", verdict(result))
	return p.err
}

func verdict(result *Result) string {
	switch {
	case result.HasErrors():
		return "✗ Some documents could not be read."
	case result.HasWarnings():
		return "⚠ Prose has warnings. Consider revising before export."
	case len(result.Issues) > 0:
		return "ℹ All issues are informational."
	}
	return "✓ All documents pass review."
}

func (s Severity) icon() string {
	switch s {
	case SeverityError:
		return "✗"
	case SeverityWarning:
		return "⚠"
	}
	return "ℹ"
}

func (i Issue) location() string {
	if i.Line > 0 {
		return fmt.Sprintf("sentence %d", i.Line)
	}
	return "document"
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// JSONFormatter writes a Report document.
type JSONFormatter struct{}

// Report is the JSON shape of a lint run.
type Report struct {
	Path         string        `json:"path"`
	Detected     bool          `json:"detected"`
	FilesTotal   int           `json:"files_total"`
	ErrorCount   int           `json:"error_count"`
	WarningCount int           `json:"warning_count"`
	InfoCount    int           `json:"info_count"`
	Issues       []ReportIssue `json:"issues"`
}

// ReportIssue is one Issue with its severity spelled out.
type ReportIssue struct {
	FilePath    string `json:"file_path"`
	Severity    string `json:"severity"`
	Rule        string `json:"rule"`
	Message     string `json:"message"`
	Sentence    int    `json:"sentence,omitempty"`
	Explanation string `json:"explanation,omitempty"`
	Fix         string `json:"fix,omitempty"`
}

func (JSONFormatter) Format(w io.Writer, result *Result, path string, detected bool) error {
	report := Report{
		Path:         path,
		Detected:     detected,
		FilesTotal:   result.FilesTotal,
		ErrorCount:   result.ErrorCount(),
		WarningCount: result.WarningCount(),
		InfoCount:    result.InfoCount(),
		Issues:       make([]ReportIssue, 0, len(result.Issues)),
	}
	for _, issue := range result.Issues {
		report.Issues = append(report.Issues, ReportIssue{
			FilePath:    issue.FilePath,
			Severity:    issue.Severity.String(),
			Rule:        issue.Rule,
			Message:     issue.Message,
			Sentence:    issue.Line,
			Explanation: issue.Explanation,
			Fix:         issue.Fix,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
