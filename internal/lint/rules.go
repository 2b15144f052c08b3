package lint

import (
	"fmt"
	"unicode/utf8"

	"git.home.luguber.info/inful/docxbuilder/internal/qa"
)

const excerptChars = 80

// SentenceLengthRule flags sentences longer than Max characters.
type SentenceLengthRule struct {
	Max int
}

func (r *SentenceLengthRule) Name() string { return "sentence-length" }

func (r *SentenceLengthRule) Check(filePath string, sentences []string) []Issue {
	limit := r.Max
	if limit <= 0 {
		limit = qa.DefaultMaxChars
	}
	var issues []Issue
	for i, s := range sentences {
		n := utf8.RuneCountInString(s)
		if n <= limit {
			continue
		}
		issues = append(issues, Issue{
			FilePath:    filePath,
			Severity:    SeverityWarning,
			Rule:        r.Name(),
			Message:     fmt.Sprintf("Sentence has %d characters (limit %d)", n, limit),
			Explanation: qa.Excerpt(s, excerptChars),
			Fix:         "Split the sentence or remove subordinate clauses",
			Line:        i + 1,
		})
	}
	return issues
}

// PassiveVoiceRule flags sentences that look like passive constructions.
type PassiveVoiceRule struct{}

func (r *PassiveVoiceRule) Name() string { return "passive-voice" }

func (r *PassiveVoiceRule) Check(filePath string, sentences []string) []Issue {
	var issues []Issue
	for i, s := range sentences {
		if !qa.IsPassive(s) {
			continue
		}
		issues = append(issues, Issue{
			FilePath:    filePath,
			Severity:    SeverityWarning,
			Rule:        r.Name(),
			Message:     "Possible passive voice",
			Explanation: qa.Excerpt(s, excerptChars),
			Fix:         "Rewrite with the actor as the subject",
			Line:        i + 1,
		})
	}
	return issues
}
