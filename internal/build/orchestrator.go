package build

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/google/uuid"

	derrors "git.home.luguber.info/inful/docxbuilder/internal/errors"
	"git.home.luguber.info/inful/docxbuilder/internal/logfields"
	"git.home.luguber.info/inful/docxbuilder/internal/manifest"
	"git.home.luguber.info/inful/docxbuilder/internal/metrics"
	"git.home.luguber.info/inful/docxbuilder/internal/observability"
	"git.home.luguber.info/inful/docxbuilder/internal/tools"
)

// Orchestrator executes manifests against a Registry.
type Orchestrator struct {
	registry *Registry
	recorder metrics.Recorder
	newRunID func() string
}

// NewOrchestrator returns an orchestrator that resolves steps in registry.
func NewOrchestrator(registry *Registry) *Orchestrator {
	return &Orchestrator{
		registry: registry,
		recorder: metrics.NoopRecorder{},
		newRunID: uuid.NewString,
	}
}

// WithRecorder sets the metrics recorder. A nil recorder restores the no-op
// default.
func (o *Orchestrator) WithRecorder(r metrics.Recorder) *Orchestrator {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	o.recorder = r
	return o
}

// WithRunIDGenerator replaces the run id source (for tests).
func (o *Orchestrator) WithRunIDGenerator(fn func() string) *Orchestrator {
	o.newRunID = fn
	return o
}

// Registry returns the registry steps are resolved against.
func (o *Orchestrator) Registry() *Registry { return o.registry }

// Run executes the manifest at path and returns the serialized report, or
// a single failure line when the manifest cannot be loaded.
func (o *Orchestrator) Run(ctx context.Context, path string) string {
	res, err := o.Execute(ctx, path)
	if err != nil {
		if res != nil && res.Status == BuildStatusNotFound {
			return "Manifest file not found: " + path
		}
		return "Failed to build book: " + err.Error()
	}
	out, err := res.Report().JSON()
	if err != nil {
		return "Failed to build book: " + err.Error()
	}
	return out
}

// Execute loads the manifest at path and runs every step in order. The
// returned error is non-nil only when the manifest could not be loaded;
// step failures are recorded in the result.
func (o *Orchestrator) Execute(ctx context.Context, path string) (*BuildResult, error) {
	start := time.Now()
	res := &BuildResult{
		RunID:     o.newRunID(),
		Manifest:  path,
		StartTime: start,
	}
	ctx = observability.WithRunID(ctx, res.RunID)

	m, err := manifest.Load(path)
	if err != nil {
		res.Status = BuildStatusLoadFailed
		label := metrics.BuildLoadFailed
		if errors.Is(err, fs.ErrNotExist) {
			res.Status = BuildStatusNotFound
			label = metrics.BuildNotFound
		}
		o.finish(res, label)
		observability.ErrorContext(ctx, "Manifest load failed",
			logfields.Manifest(path), logfields.Error(err))
		return res, err
	}

	observability.InfoContext(ctx, "Build started",
		logfields.Manifest(path), logfields.Count(len(m.Steps)))

	res.Steps = make([]StepRecord, 0, len(m.Steps))
	for i, step := range m.Steps {
		res.Steps = append(res.Steps, o.runStep(ctx, i, step))
	}

	res.Status = BuildStatusCompleted
	o.finish(res, metrics.BuildCompleted)
	observability.InfoContext(ctx, "Build finished",
		logfields.Manifest(path),
		logfields.Count(len(res.Steps)),
		slog.Int("failed", res.Failures()),
		logfields.DurationMS(float64(res.Duration.Microseconds())/1000))
	return res, nil
}

func (o *Orchestrator) finish(res *BuildResult, label metrics.BuildOutcomeLabel) {
	res.EndTime = time.Now()
	res.Duration = res.EndTime.Sub(res.StartTime)
	o.recorder.ObserveBuildDuration(res.Duration)
	o.recorder.IncBuildOutcome(label)
}

func (o *Orchestrator) runStep(ctx context.Context, i int, step manifest.Step) StepRecord {
	ctx = observability.WithStep(ctx, i+1, step.Tool)
	start := time.Now()

	var outcome Outcome
	t, found := o.registry.Lookup(step.Tool)
	switch {
	case !found:
		outcome = UnknownTool()
	case step.ArgsErr != nil:
		outcome = Failed(step.ArgsErr.Error())
	default:
		outcome = invoke(ctx, t, step.Args)
	}

	d := time.Since(start)
	o.recorder.ObserveStepDuration(step.Tool, d)
	o.recorder.IncStepOutcome(step.Tool, outcome.Kind.label())

	attrs := []slog.Attr{logfields.Outcome(outcome.Kind.String()), logfields.DurationMS(float64(d.Microseconds()) / 1000)}
	switch outcome.Kind {
	case KindOK:
		observability.DebugContext(ctx, "Step finished", attrs...)
	case KindUnknown:
		observability.WarnContext(ctx, "Unknown tool", attrs...)
	default:
		observability.WarnContext(ctx, "Step failed", append(attrs, slog.String(logfields.KeyError, outcome.Detail))...)
	}
	return StepRecord{Index: i, Tool: step.Tool, Outcome: outcome, Duration: d}
}

// invoke calls the tool, turning returned errors and panics into a
// KindFailed outcome.
func invoke(ctx context.Context, t tools.Tool, args map[string]any) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			observability.ErrorContext(ctx, "Tool panicked", slog.Any("panic", r))
			out = Failed(fmt.Sprint(r))
		}
	}()
	if args == nil {
		args = map[string]any{}
	}
	status, err := t.Handler(ctx, args)
	if err != nil {
		return Failed(derrors.Describe(err))
	}
	return Ok(status)
}
