package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v3"
	"qythex.dev/core/dashboard/config"
	"qythex.dev/core/log"
	"qythex.dev/core/notifier"
	"qythex.dev/core/registry"
	"qythex.dev/core/telemetry"
)

const shutdownTimeout = 10 * time.Second

func Command() *cli.Command {
	return &cli.Command{
		Name:   "server",
		Usage:  "run the dashboard api server",
		Action: Run,
		Description: `
Environment variables:
	QYTHEX_SERVER_LISTEN_ADDR   (default: 0.0.0.0:5000)
	QYTHEX_SERVER_MOUNT_PREFIX  (default: /api/github)
	QYTHEX_SERVER_DEV           (default: false)
	QYTHEX_SEED_PATH            (default: embedded seed)
	QYTHEX_LOG_LEVEL            (default: info)
	QYTHEX_ALLOWED_ORIGINS      (comma-separated list, default: any)
	QYTHEX_TELEMETRY_EXPORTER   (none, stdout or otlp, default: none)
`,
	}
}

func Run(ctx context.Context, cmd *cli.Command) error {
	c, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := log.SetLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	logger := log.SubLogger(log.FromContext(ctx), "server")

	seed, err := registry.LoadSeed(c.SeedPath)
	if err != nil {
		return fmt.Errorf("failed to load seed: %w", err)
	}

	n := notifier.New()
	reg := registry.New(seed, registry.WithNotifier(n))
	logger.Info("registry seeded",
		"repositories", len(seed.Repositories),
		"workflows", len(seed.Workflows),
	)

	if c.Server.Dev {
		logger.Info("running in dev mode")
	}

	t, err := telemetry.NewTelemetry(ctx, "qythex", versioninfo.Short(), telemetry.Exporter(c.TelemetryExporter))
	if err != nil {
		return fmt.Errorf("failed to setup telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := t.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to flush telemetry", "error", err)
		}
	}()

	d := New(c, reg, n, t, logger)
	srv := &http.Server{
		Addr:              c.Server.ListenAddr,
		Handler:           d.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("starting dashboard server", "address", c.Server.ListenAddr, "prefix", c.Server.MountPrefix)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
