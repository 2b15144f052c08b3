package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	derrors "git.home.luguber.info/inful/docxbuilder/internal/errors"
	"git.home.luguber.info/inful/docxbuilder/internal/mcpserver"
	"git.home.luguber.info/inful/docxbuilder/internal/metrics"
	"git.home.luguber.info/inful/docxbuilder/internal/version"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	MetricsAddr string `name:"metrics-addr" help:"Serve Prometheus metrics on this address (overrides metrics.address and enables metrics)"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg := root.Settings()
	addr := cfg.Metrics.Address
	withMetrics := cfg.Metrics.Enabled
	if s.MetricsAddr != "" {
		addr = s.MetricsAddr
		withMetrics = true
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rt := newRuntime(cfg, withMetrics)

	if withMetrics {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.HTTPHandler(rt.registry))
		srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			slog.Info("Serving metrics", slog.String("address", addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	srv := mcpserver.New(version.Version, rt.surface(), mcpserver.WithRecorder(rt.recorder))
	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return derrors.Wrap(err, derrors.CategoryRuntime, derrors.SeverityFatal, "MCP server stopped")
	}
	slog.Info("MCP server stopped")
	return nil
}
