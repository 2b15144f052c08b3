package lint

import (
	"path/filepath"
	"strings"
)

// Severity indicates the importance level of a linting issue.
type Severity int

const (
	// SeverityInfo indicates informational messages.
	SeverityInfo Severity = iota
	// SeverityWarning indicates prose that should be revised.
	SeverityWarning
	// SeverityError indicates a document that cannot be reviewed at all.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Issue represents a single linting problem found in a document.
type Issue struct {
	FilePath    string   // Path to the document
	Severity    Severity // Issue severity level
	Rule        string   // Rule identifier (e.g., "sentence-length")
	Message     string   // Brief description of the issue
	Explanation string   // The offending sentence or other context
	Fix         string   // Suggested fix
	Line        int      // Sentence number, 1-based (0 if document-level)
}

// Result contains all issues found during linting.
type Result struct {
	Issues     []Issue
	FilesTotal int // Total documents scanned
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool {
	return r.count(SeverityError) > 0
}

// HasWarnings returns true if any warning-level issues exist.
func (r *Result) HasWarnings() bool {
	return r.count(SeverityWarning) > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int { return r.count(SeverityError) }

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int { return r.count(SeverityWarning) }

// InfoCount returns the number of informational issues.
func (r *Result) InfoCount() int { return r.count(SeverityInfo) }

func (r *Result) count(s Severity) int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			count++
		}
	}
	return count
}

// Rule checks the sentences of one document.
type Rule interface {
	// Name returns the unique identifier for this rule.
	Name() string

	// Check inspects the numbered sentences of the document at filePath.
	Check(filePath string, sentences []string) []Issue
}

// Config contains configuration for the linter.
type Config struct {
	// Quiet suppresses warnings, only showing errors.
	Quiet bool

	// Format specifies output format (text, json).
	Format string

	// MaxSentenceChars is the sentence-length threshold (0 uses the default).
	MaxSentenceChars int

	// SkipPassive disables the passive voice rule.
	SkipPassive bool
}

// IsDocxFile returns true if the file is a word-processing document.
func IsDocxFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".docx")
}
