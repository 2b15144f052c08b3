package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/docxbuilder/internal/build"
	derrors "git.home.luguber.info/inful/docxbuilder/internal/errors"
	"git.home.luguber.info/inful/docxbuilder/internal/logfields"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Manifest string `arg:"" help:"Path to the JSON build manifest" type:"path"`
	Watch    bool   `short:"w" help:"Re-run the manifest whenever it changes"`
	Strict   bool   `help:"Exit non-zero when any step fails or names an unknown tool"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	rt := newRuntime(root.Settings(), false)
	if b.Watch {
		return b.watch(g, rt.orchestrator)
	}
	return b.once(context.Background(), g, rt.orchestrator)
}

func (b *BuildCmd) once(ctx context.Context, g *Global, o *build.Orchestrator) error {
	res, err := o.Execute(ctx, b.Manifest)
	if err != nil {
		if res != nil && res.Status == build.BuildStatusNotFound {
			return derrors.New(derrors.CategoryFileSystem, derrors.SeverityError, "Manifest file not found: "+b.Manifest).
				WithContext("path", b.Manifest)
		}
		return derrors.Wrap(err, derrors.CategoryValidation, derrors.SeverityError, "Failed to build book").
			WithContext("path", b.Manifest)
	}

	out, err := res.Report().JSON()
	if err != nil {
		return derrors.InternalError("render report", err)
	}
	if _, err := fmt.Fprintln(g.Stdout, out); err != nil {
		return err
	}

	if failed := res.Failures(); b.Strict && failed > 0 {
		return derrors.New(derrors.CategoryRuntime, derrors.SeverityError,
			fmt.Sprintf("%d of %d steps failed", failed, len(res.Steps)))
	}
	return nil
}

func (b *BuildCmd) watch(g *Global, o *build.Orchestrator) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	w, err := build.NewWatcher(b.Manifest, o, func(report string) {
		_, _ = fmt.Fprintln(g.Stdout, report)
	})
	if err != nil {
		return derrors.FileSystemError("watch manifest", err)
	}
	defer func() { _ = w.Stop() }()

	w.Rebuild(ctx)
	if err := w.Start(ctx); err != nil {
		return derrors.FileSystemError("watch manifest", err)
	}

	<-ctx.Done()
	slog.Info("Stopped watching manifest", logfields.Manifest(b.Manifest))
	return nil
}
