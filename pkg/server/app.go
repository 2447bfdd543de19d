package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"WealthSim/internal/usecase"
	"WealthSim/pkg/cache"
	pkgch "WealthSim/pkg/clickhouse"
	"WealthSim/pkg/config"
	xhttp "WealthSim/pkg/http"
	applogger "WealthSim/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	collector   *usecase.SignalCollector
	chClient    *pkgch.Client
	cacheSvc    cache.Service
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
	SignalProc  *usecase.SignalProcessor
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	collector *usecase.SignalCollector,
	chClient *pkgch.Client,
	cacheSvc cache.Service,
	httpHandler xhttp.Handler,
) *App {
	return &App{
		cfg:         cfg,
		collector:   collector,
		chClient:    chClient,
		cacheSvc:    cacheSvc,
		httpHandler: httpHandler,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l, err := applogger.New(&applogger.Config{
		Level:  a.cfg.Logging.Level,
		Format: a.cfg.Logging.Format,
		Output: a.cfg.Logging.Output,
	})
	if err != nil {
		return err
	}

	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}
	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
	)

	// Start collector
	go func() {
		if err := a.collector.Start(ctx); err != nil {
			l.Error("collector error", applogger.Error(err))
		}
	}()
	l.Info("collector started",
		applogger.String("source", a.cfg.Market.Source),
		applogger.Strings("symbols", a.cfg.Market.Symbols))

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}
	l.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx, l)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context, l *applogger.Logger) error {
	l.Info("shutting down...")

	// Stop collector first so nothing new is queued
	if err := a.collector.Shutdown(ctx); err != nil {
		l.Warn("collector stop error", applogger.Error(err))
	}

	// Shutdown HTTP server
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	// Flush and close the history processor
	if a.SignalProc != nil {
		a.SignalProc.Close()
	}

	// Close infrastructure clients
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	if a.cacheSvc != nil {
		if err := a.cacheSvc.Close(); err != nil {
			l.Warn("cache close error", applogger.Error(err))
		}
	}

	l.Info("shutdown complete")
	return nil
}
