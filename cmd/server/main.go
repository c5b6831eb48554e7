package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"baseball-games-service/internal/config"
	"baseball-games-service/internal/logging"
	"baseball-games-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg, err := config.Load()
	if err != nil {
		config.Exitf("invalid configuration: %v", err)
	}

	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "baseball-games-service",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg, logger)
	if err != nil {
		config.Exitf("server setup failed: %v", err)
	}
	srv.Run(ctx, stop)
}
