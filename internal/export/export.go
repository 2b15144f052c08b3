// Package export converts documents to EPUB and PDF through pandoc.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"git.home.luguber.info/inful/docxbuilder/internal/filegate"
	"git.home.luguber.info/inful/docxbuilder/internal/logfields"
	"git.home.luguber.info/inful/docxbuilder/internal/metrics"
)

// Format is an export target.
type Format string

const (
	FormatEPUB Format = "epub"
	FormatPDF  Format = "pdf"
)

func (f Format) label() string { return strings.ToUpper(string(f)) }

const (
	DefaultPandoc    = "pandoc"
	DefaultPDFEngine = "xelatex"
)

// Request describes one conversion.
type Request struct {
	Source string
	// Output defaults to the source path with the format's extension.
	Output   string
	Format   Format
	TOC      bool
	Metadata map[string]string
	// PDFEngine overrides the bridge default for PDF output.
	PDFEngine string
}

// Bridge runs pandoc conversions and reports the outcome as a status line.
type Bridge struct {
	runner    Runner
	pandoc    string
	pdfEngine string
	recorder  metrics.Recorder
}

// Option configures a Bridge.
type Option func(*Bridge)

func WithRunner(r Runner) Option {
	return func(b *Bridge) {
		if r != nil {
			b.runner = r
		}
	}
}

func WithPandocPath(path string) Option {
	return func(b *Bridge) {
		if path != "" {
			b.pandoc = path
		}
	}
}

func WithPDFEngine(engine string) Option {
	return func(b *Bridge) {
		if engine != "" {
			b.pdfEngine = engine
		}
	}
}

func WithRecorder(r metrics.Recorder) Option {
	return func(b *Bridge) {
		if r != nil {
			b.recorder = r
		}
	}
}

// New returns a bridge using pandoc from PATH unless configured otherwise.
func New(opts ...Option) *Bridge {
	b := &Bridge{
		runner:    BinaryRunner{},
		pandoc:    DefaultPandoc,
		pdfEngine: DefaultPDFEngine,
		recorder:  metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// PDFEngine is the engine used when a request does not name one.
func (b *Bridge) PDFEngine() string { return b.pdfEngine }

// DefaultOutput derives "<base>.<format>" from the source path.
func DefaultOutput(source string, f Format) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + "." + string(f)
}

// Args builds the pandoc argument list. Metadata keys are sorted so the
// command line is deterministic.
func (b *Bridge) Args(req Request) []string {
	args := []string{req.Source, "-o", req.Output}
	if req.TOC {
		args = append(args, "--toc")
	}
	keys := make([]string, 0, len(req.Metadata))
	for k := range req.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "--metadata", k+"="+req.Metadata[k])
	}
	if req.Format == FormatPDF {
		engine := req.PDFEngine
		if engine == "" {
			engine = b.pdfEngine
		}
		args = append(args, "--pdf-engine", engine)
	}
	return args
}

// Convert validates the request, runs pandoc and returns a status line.
// Failures are reported in the returned string, never as errors.
func (b *Bridge) Convert(ctx context.Context, req Request) string {
	label := req.Format.label()
	req.Source = filegate.EnsureDocxExtension(req.Source)
	if !filegate.Exists(req.Source) {
		return fmt.Sprintf("Document %s does not exist", req.Source)
	}
	if req.Output == "" {
		req.Output = DefaultOutput(req.Source, req.Format)
	}
	if ok, reason := filegate.CheckWriteable(req.Output); !ok {
		return fmt.Sprintf("Cannot create %s: %s", label, reason)
	}
	bin, err := b.runner.LookPath(b.pandoc)
	if err != nil {
		b.recorder.IncExportResult(string(req.Format), false)
		return "Pandoc is not installed or not in PATH."
	}

	start := time.Now()
	res, err := b.runner.Run(ctx, bin, b.Args(req))
	attrs := []any{
		logfields.Format(string(req.Format)),
		logfields.Path(req.Output),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())),
	}
	switch {
	case err != nil:
		b.recorder.IncExportResult(string(req.Format), false)
		slog.Warn("export failed", append(attrs, logfields.Error(err))...)
		return fmt.Sprintf("Error during %s conversion: %v", label, err)
	case res.ExitCode != 0:
		b.recorder.IncExportResult(string(req.Format), false)
		slog.Warn("export exited non-zero", append(attrs, slog.Int("exit_code", res.ExitCode))...)
		return fmt.Sprintf("Failed to create %s: %s", label, strings.TrimSpace(res.Stderr))
	}
	b.recorder.IncExportResult(string(req.Format), true)
	slog.Info("export complete", attrs...)
	return fmt.Sprintf("%s created: %s", label, req.Output)
}
