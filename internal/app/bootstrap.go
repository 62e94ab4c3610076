package app

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/ferdiebergado/goexpress"
	"github.com/ferdiebergado/gopherkit/env"

	"github.com/weatherlyhq/weatherly/internal/config"
	"github.com/weatherlyhq/weatherly/internal/middleware"
	"github.com/weatherlyhq/weatherly/internal/pkg/logging"
	"github.com/weatherlyhq/weatherly/internal/pkg/message"
	"github.com/weatherlyhq/weatherly/internal/platform/db"
)

const (
	cfgFile   = "config.json"
	envKeyVar = "KEY"
)

// Run boots the API server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context) error {
	isProd := os.Getenv("ENV") == "production"
	if !isProd {
		if err := env.Load(".env"); err != nil {
			return fmt.Errorf("load env: %w", err)
		}
	}

	logging.Setup(os.Stderr, logging.Options{Production: isProd, Level: os.Getenv("LOG_LEVEL")})

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	dbConn, err := db.NewConnection(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	securityKey, ok := os.LookupEnv(envKeyVar)
	if !ok {
		return fmt.Errorf(message.EnvErrFmt, envKeyVar)
	}

	provider := NewProvider(cfg, securityKey, dbConn)

	middlewares := []func(http.Handler) http.Handler{
		goexpress.RecoverFromPanic,
		middleware.CORS,
		middleware.LogRequest,
		middleware.CheckContentType,
	}

	apiServer := New(cfg, provider, middlewares)
	if err := apiServer.Start(ctx); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	return apiServer.Shutdown()
}
