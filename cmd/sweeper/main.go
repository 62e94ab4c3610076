package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/weatherlyhq/weatherly/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	slog.Info("Starting sweeper...")
	if err := app.RunSweeper(ctx); err != nil {
		slog.Error("Sweeper failed to start.", "reason", err)
		stop()
		os.Exit(1)
	}
	slog.Info("Sweeper shutdown gracefully.")
}
