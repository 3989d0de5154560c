package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/aretw0/absm"
	httpAdapter "github.com/aretw0/absm/internal/adapters/http"
	"github.com/aretw0/absm/pkg/definition"
	"github.com/aretw0/absm/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions configures the inspection server.
type ServeOptions struct {
	Path  string
	Clips string
	Addr  string
	Rate  int
	Debug bool
	// Ready, when set, receives the bound address once the listener is up.
	Ready func(addr string)
}

// Serve ticks the machine at opts.Rate and serves the inspection API until ctx is done.
func Serve(ctx context.Context, opts ServeOptions, logger *slog.Logger) error {
	def, err := definition.LoadFile(opts.Path)
	if err != nil {
		return err
	}
	clips, err := clipSource(opts.Clips, def)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	collector, err := observability.NewCollector(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	hooks := observability.LogHooks(logger)
	engine, err := absm.FromDefinition(def,
		absm.WithClipSource(clips),
		absm.WithLogger(logger),
		absm.WithDebug(opts.Debug),
		absm.WithCollector(collector),
		absm.WithLifecycleHooks(hooks),
	)
	if err != nil {
		return err
	}

	host := httpAdapter.NewHost(engine, logger)
	srv := &http.Server{
		Handler:           httpAdapter.NewHandler(host, reg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", opts.Addr, err)
	}
	logger.Info("serving machine", "addr", ln.Addr().String(), "definition", opts.Path, "rate", opts.Rate)
	if opts.Ready != nil {
		opts.Ready(ln.Addr().String())
	}

	loopCtx, stopLoop := context.WithCancel(ctx)
	defer stopLoop()

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Serve(ln)
	}()
	go func() {
		_ = host.Run(loopCtx, opts.Rate)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	stopLoop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
		return srv.Close()
	}
	logger.Info("server stopped")
	return nil
}
