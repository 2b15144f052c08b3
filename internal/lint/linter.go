package lint

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/docxbuilder/internal/docx"
	"git.home.luguber.info/inful/docxbuilder/internal/qa"
)

// Linter reviews the prose of .docx documents.
type Linter struct {
	cfg   *Config
	rules []Rule
}

// NewLinter creates a new linter with the given configuration.
func NewLinter(cfg *Config) *Linter {
	if cfg == nil {
		cfg = &Config{Format: "text"}
	}
	rules := []Rule{&SentenceLengthRule{Max: cfg.MaxSentenceChars}}
	if !cfg.SkipPassive {
		rules = append(rules, &PassiveVoiceRule{})
	}
	return &Linter{cfg: cfg, rules: rules}
}

// LintPath lints a single document or every document below a directory.
func (l *Linter) LintPath(path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Issues: []Issue{},
	}

	if info.IsDir() {
		err = l.lintDirectory(path, result)
	} else {
		l.lintFile(path, result)
		result.FilesTotal = 1
	}
	if l.cfg.Quiet {
		kept := result.Issues[:0]
		for _, issue := range result.Issues {
			if issue.Severity == SeverityError {
				kept = append(kept, issue)
			}
		}
		result.Issues = kept
	}
	return result, err
}

// lintDirectory recursively lints all documents in a directory.
func (l *Linter) lintDirectory(dirPath string, result *Result) error {
	var files []string
	err := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip hidden directories and files
		if d.Name()[0] == '.' && path != dirPath {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		// Word lock files
		if strings.HasPrefix(d.Name(), "~$") {
			return nil
		}
		if !d.IsDir() && IsDocxFile(path) {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	for _, f := range files {
		l.lintFile(f, result)
	}
	result.FilesTotal = len(files)
	return err
}

// lintFile extracts the body text of one document and runs every rule.
// A document that cannot be opened is reported as an error issue.
func (l *Linter) lintFile(path string, result *Result) {
	doc, err := docx.Open(path)
	if err != nil {
		result.Issues = append(result.Issues, Issue{
			FilePath:    path,
			Severity:    SeverityError,
			Rule:        "readable-document",
			Message:     "Document cannot be opened",
			Explanation: err.Error(),
			Fix:         fmt.Sprintf("Check that %s is a valid .docx file", filepath.Base(path)),
		})
		return
	}
	sentences := qa.SplitSentences(qa.Normalize(doc.ParagraphText()))
	for _, rule := range l.rules {
		result.Issues = append(result.Issues, rule.Check(path, sentences)...)
	}
}
