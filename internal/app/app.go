// Package app wires the check service into an HTTP server. Both cmd/server
// and the CLI serve command run it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"nhi/internal/check"
	"nhi/internal/check/handler"
	"nhi/internal/platform/config"
	"nhi/internal/platform/httpserver"
	"nhi/internal/platform/metrics"
	httptransport "nhi/internal/transport/http"
)

// NewHandler builds the full HTTP handler. Metrics are registered with reg and
// exposed from gatherer.
func NewHandler(cfg config.Config, logger *slog.Logger, reg prometheus.Registerer, gatherer prometheus.Gatherer) http.Handler {
	svc := check.New(
		check.WithMetrics(metrics.New(reg)),
		check.WithMaxBatchSize(cfg.Check.MaxBatchSize),
	)
	return httptransport.NewRouter(logger, gatherer, handler.New(svc, logger, cfg.Check.ExcludeTest))
}

// Run serves until ctx is cancelled, then shuts down within
// cfg.Server.ShutdownTimeout.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Server.Addr, err)
	}
	return Serve(ctx, ln, cfg, logger)
}

// Serve is Run on an existing listener.
func Serve(ctx context.Context, ln net.Listener, cfg config.Config, logger *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	srv := httpserver.New(cfg.Server, NewHandler(cfg, logger, reg, reg))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting nhi check server", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	logger.Info("shutting down nhi check server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
