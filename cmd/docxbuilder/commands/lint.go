package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/docxbuilder/internal/lint"
)

// LintCmd implements the 'lint' command.
type LintCmd struct {
	Path      string `arg:"" optional:"" help:"Document or directory to review (defaults to documents.root)"`
	Format    string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	Quiet     bool   `short:"q" help:"Quiet mode: only show errors, suppress warnings"`
	MaxChars  int    `name:"max-chars" help:"Flag sentences longer than this many characters (0 uses the default)"`
	NoPassive bool   `name:"no-passive" help:"Skip the passive voice check"`
}

// ExitStatus ends the process with the given code without printing an
// error message.
type ExitStatus int

func (e ExitStatus) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

// ExitCode implements kong's exit coder.
func (e ExitStatus) ExitCode() int { return int(e) }

func (l *LintCmd) Run(g *Global, root *CLI) error {
	path := l.Path
	detected := false
	if path == "" {
		path = root.Settings().Documents.Root
		detected = true
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}

	linter := lint.NewLinter(&lint.Config{
		Quiet:            l.Quiet,
		Format:           l.Format,
		MaxSentenceChars: l.MaxChars,
		SkipPassive:      l.NoPassive,
	})
	result, err := linter.LintPath(path)
	if err != nil {
		return fmt.Errorf("linting failed: %w", err)
	}

	if err := lint.NewFormatter(l.Format).Format(g.Stdout, result, path, detected); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	switch {
	case result.HasErrors():
		return ExitStatus(2)
	case result.HasWarnings() && !l.Quiet:
		return ExitStatus(1)
	}
	return nil
}
