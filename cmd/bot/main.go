package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/iamvkosarev/post-generator-bot/config"
	"github.com/iamvkosarev/post-generator-bot/internal/app"
	"go.uber.org/zap"
)

func main() {
	cfgPath := flag.String("config", "config/config.yml", "path to the yaml config")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx, cfg, logger); err != nil {
		logger.Error("bot stopped with error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("bot stopped")
}

func newLogger(env string) (*zap.Logger, error) {
	if env == config.EnvProd {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
