package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/inventory/internal/config"
	"github.com/JonMunkholm/inventory/internal/core"
	"github.com/JonMunkholm/inventory/internal/logging"
	"github.com/JonMunkholm/inventory/internal/watch"
	"github.com/JonMunkholm/inventory/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	loader, err := core.NewLoader(core.LoaderConfig{
		Encoding:    cfg.Inventory.Encoding,
		Delimiter:   cfg.Inventory.DelimiterRune(),
		MaxFileSize: cfg.Inventory.MaxFileSize,
	})
	if err != nil {
		slog.Error("failed to create loader", "error", err)
		os.Exit(1)
	}
	engine := core.NewEngine(loader, cfg.Inventory.LoadWait)

	// Background jobs share one cancellable context
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	if cfg.Inventory.Dir != "" {
		ctx := core.ContextWithTrigger(jobCtx, core.TriggerStartup)
		if _, summary, err := engine.Load(ctx, cfg.Inventory.Dir); err != nil {
			slog.Warn("initial load failed", "directory", cfg.Inventory.Dir, "error", core.FormatUserError(err))
		} else if summary.NoValidFiles() {
			slog.Warn("initial load found no valid CSV files", "directory", cfg.Inventory.Dir)
		}
	}

	if cfg.Inventory.Watch {
		w, err := watch.New(cfg.Inventory.Dir, cfg.Inventory.WatchDebounce, func(ctx context.Context) error {
			_, _, err := engine.Load(core.ContextWithTrigger(ctx, core.TriggerWatcher), cfg.Inventory.Dir)
			return err
		})
		if err != nil {
			slog.Error("failed to watch inventory directory", "directory", cfg.Inventory.Dir, "error", err)
			os.Exit(1)
		}
		defer w.Close()
		go w.Run(jobCtx)
	}

	server := web.NewServer(engine, web.Options{
		InventoryDir:      cfg.Inventory.Dir,
		ExportDir:         cfg.Inventory.ExportDir,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		RequestTimeout:    cfg.Server.RequestTimeout,
		RateLimitEnabled:  cfg.Rate.Enabled,
		RequestsPerMinute: cfg.Rate.RequestsPerMinute,
		TrustedProxies:    cfg.Security.TrustedProxies,
		EnableCSP:         cfg.Security.EnableCSP,
	})

	// Graceful shutdown
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		// Stop the watcher before waiting on loads
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if engine.Loading() {
			slog.Info("waiting for running load to complete")
			if err := engine.WaitForLoads(shutdownCtx); err != nil {
				slog.Warn("load did not complete in time", "error", err)
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	<-stopped
	slog.Info("server stopped")
}
