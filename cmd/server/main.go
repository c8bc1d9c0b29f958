package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"lobstertawar/internal/commons"
	"lobstertawar/internal/infrastructure/logger"
	"lobstertawar/internal/server"

	"go.uber.org/zap"
)

func main() {
	cfg, err := commons.LoadConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg, zapLogger); err != nil {
		zapLogger.Fatal("server error", zap.Error(err))
	}
}
