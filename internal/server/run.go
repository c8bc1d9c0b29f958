package server

import (
	"context"
	"time"

	"go.uber.org/zap"

	"lobstertawar/internal/catalog"
	"lobstertawar/internal/config"
	"lobstertawar/internal/infrastructure/backend"
	"lobstertawar/internal/site"
)

const shutdownTimeout = 10 * time.Second

// Run wires the storefront and serves it until ctx is cancelled, then shuts
// down gracefully.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	client := backend.NewClient(cfg.Backend, logger.Named("backend"))
	logger.Info("backend configured", zap.String("url", client.BaseURL()))

	seeder := catalog.NewModule(client, logger)
	siteCtrl := site.NewModule(seeder, client, cfg.Site, logger)

	srv := New(cfg.Server.Port, NewRouter(siteCtrl, logger), logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}
