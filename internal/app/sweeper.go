package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ferdiebergado/gopherkit/env"

	"github.com/weatherlyhq/weatherly/internal/config"
	"github.com/weatherlyhq/weatherly/internal/dispatch"
	"github.com/weatherlyhq/weatherly/internal/pkg/logging"
	"github.com/weatherlyhq/weatherly/internal/platform/db"
	"github.com/weatherlyhq/weatherly/internal/platform/email"
	"github.com/weatherlyhq/weatherly/internal/platform/identity"
	"github.com/weatherlyhq/weatherly/internal/platform/weather"
	"github.com/weatherlyhq/weatherly/internal/subscriber"
)

const sweeperCfgFile = "sweeper.json"

// RunSweeper boots the notification dispatcher loop and blocks until the
// context is canceled.
func RunSweeper(ctx context.Context) error {
	isProd := os.Getenv("ENV") == "production"
	if !isProd {
		if err := env.Load(".env"); err != nil {
			return fmt.Errorf("load env: %w", err)
		}
	}

	logging.Setup(os.Stderr, logging.Options{Production: isProd, Level: os.Getenv("LOG_LEVEL")})

	cfg, err := config.Load(sweeperCfgFile)
	if err != nil {
		return err
	}

	dbConn, err := db.NewConnection(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	fallback, err := time.LoadLocation(cfg.Sweep.DefaultTimezone)
	if err != nil {
		return fmt.Errorf("load default timezone %q: %w", cfg.Sweep.DefaultTimezone, err)
	}

	renderer, err := dispatch.NewRenderer()
	if err != nil {
		return err
	}

	subSvc := subscriber.NewService(subscriber.NewRepository(dbConn))
	mailer := email.NewSMTPMailer(cfg.SMTP, cfg.Email)

	providers := &dispatch.Providers{
		Directory: subSvc,
		Identity:  identity.NewClient(cfg.Identity),
		Weather:   weather.NewClient(cfg.Weather),
		Channel:   dispatch.NewMailerChannel(mailer),
		Renderer:  renderer,
	}
	dispatcher := dispatch.New(providers, fallback, cfg.Sweep.Workers)

	runner := dispatch.NewRunner(dispatcher, cfg.Sweep.Interval.Duration)
	runner.Run(ctx)

	return nil
}
