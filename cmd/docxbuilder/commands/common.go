package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docxbuilder/internal/build"
	"git.home.luguber.info/inful/docxbuilder/internal/config"
	"git.home.luguber.info/inful/docxbuilder/internal/export"
	"git.home.luguber.info/inful/docxbuilder/internal/metrics"
	"git.home.luguber.info/inful/docxbuilder/internal/observability"
	"git.home.luguber.info/inful/docxbuilder/internal/tools"
)

// Global carries process-wide state shared by subcommands.
type Global struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewGlobal writes to the process streams.
func NewGlobal() *Global {
	return &Global{Stdout: os.Stdout, Stderr: os.Stderr}
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docxbuilder.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Serve ServeCmd `cmd:"" help:"Serve the document tools over MCP on stdio"`
	Build BuildCmd `cmd:"" help:"Run a build manifest and print the step report"`
	Run   RunCmd   `cmd:"" help:"Invoke a single tool and print its result"`
	Tools ToolsCmd `cmd:"" help:"List the available tools"`
	Lint  LintCmd  `cmd:"" help:"Review document prose for long sentences and passive voice"`
	Init  InitCmd  `cmd:"" help:"Write an example configuration file"`

	cfg *config.Config `kong:"-"`
}

// AfterApply runs after flag parsing; loads the configuration and sets up
// logging once. Logs always go to stderr since stdout carries MCP traffic.
func (c *CLI) AfterApply() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	c.cfg = cfg

	level := string(cfg.Logging.Level)
	if c.Verbose {
		level = "debug"
	}
	slog.SetDefault(observability.NewLogger(os.Stderr, level, string(cfg.Logging.Format)))
	return nil
}

// Settings returns the loaded configuration, or the defaults when none was
// loaded.
func (c *CLI) Settings() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// runtime wires the tools, the orchestrator and the metrics recorder from
// the configuration.
type runtime struct {
	env          *tools.Env
	catalog      []tools.Tool
	orchestrator *build.Orchestrator
	recorder     metrics.Recorder
	registry     *prom.Registry
}

func newRuntime(cfg *config.Config, withMetrics bool) *runtime {
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var registry *prom.Registry
	if withMetrics {
		registry = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	env := &tools.Env{
		Root: cfg.Documents.Root,
		Export: export.New(
			export.WithPandocPath(cfg.Export.PandocPath),
			export.WithPDFEngine(cfg.Export.PDFEngine),
			export.WithRecorder(recorder),
		),
		TOC: cfg.Export.IncludeTOC(),
	}
	catalog := tools.Catalog(env)
	orch := build.NewOrchestrator(build.NewRegistry(catalog...)).WithRecorder(recorder)

	return &runtime{env: env, catalog: catalog, orchestrator: orch, recorder: recorder, registry: registry}
}

// surface is every tool offered to callers: the catalog plus build_book.
func (r *runtime) surface() []tools.Tool {
	all := make([]tools.Tool, 0, len(r.catalog)+1)
	all = append(all, r.catalog...)
	return append(all, build.BookTool(r.orchestrator))
}
