package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"Horary/pkg/cache"
	"Horary/pkg/config"
	xhttp "Horary/pkg/http"
	applogger "Horary/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	handler    xhttp.Handler
	httpServer *xhttp.Server
	cache      cache.Service
}

// New creates a new App instance with all dependencies. The cache may be nil
// when geocode caching is disabled.
func New(cfg *config.Config, log *applogger.Logger, handler xhttp.Handler, store cache.Service) *App {
	return &App{
		cfg:     cfg,
		log:     log,
		handler: handler,
		cache:   store,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx := context.Background()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("judgment service started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("environment", a.cfg.Environment))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn("cache close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
