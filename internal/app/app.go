package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/weatherlyhq/weatherly/internal/auth"
	"github.com/weatherlyhq/weatherly/internal/config"
	"github.com/weatherlyhq/weatherly/internal/subscriber"
)

type App struct {
	server          *http.Server
	config          *config.Config
	provider        *Provider
	middlewares     []func(http.Handler) http.Handler
	stop            context.CancelFunc
	shutdownTimeout time.Duration
}

func New(cfg *config.Config, provider *Provider, middlewares []func(http.Handler) http.Handler) *App {
	serverCtx, stop := context.WithCancel(context.Background())
	serverCfg := cfg.Server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", serverCfg.Port),
		Handler: provider.Router,
		BaseContext: func(_ net.Listener) context.Context {
			return serverCtx
		},
		ReadTimeout:  serverCfg.ReadTimeout.Duration,
		WriteTimeout: serverCfg.WriteTimeout.Duration,
		IdleTimeout:  serverCfg.IdleTimeout.Duration,
	}

	return &App{
		server:          server,
		config:          cfg,
		provider:        provider,
		middlewares:     middlewares,
		stop:            stop,
		shutdownTimeout: serverCfg.ShutdownTimeout.Duration,
	}
}

func (a *App) registerMiddlewares() {
	for _, mw := range a.middlewares {
		a.provider.Router.Use(mw)
	}
}

func (a *App) setupRoutes() {
	subRepo := subscriber.NewRepository(a.provider.DB)
	subSvc := subscriber.NewService(subRepo)
	subHandler := subscriber.NewHandler(subSvc)

	authProviders := &auth.Providers{
		Hasher:   a.provider.Hasher,
		Signer:   a.provider.Signer,
		Identity: a.provider.Identity,
	}
	authSvc := auth.NewService(subSvc, authProviders, a.config)
	authHandler := auth.NewHandler(authSvc, a.provider.Signer, a.config)

	mountAuthRoutes(a.provider.Router, authHandler, a.provider.Validator, a.config.Server.MaxBodyBytes)
	mountSubscriberRoutes(a.provider.Router, subHandler, a.provider.Signer, a.provider.Validator, a.config.Server.MaxBodyBytes)
}

func (a *App) Start(ctx context.Context) error {
	a.registerMiddlewares()
	a.setupRoutes()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening...", "address", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		slog.Info("Server has stopped.")
		serverErr <- nil
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received.")
		return nil
	case err := <-serverErr:
		return err
	}
}

func (a *App) Shutdown() error {
	slog.Info("Shutting down server...")
	a.stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}
