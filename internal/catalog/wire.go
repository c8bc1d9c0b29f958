package catalog

import (
	"go.uber.org/zap"

	"lobstertawar/internal/infrastructure/backend"
)

func NewModule(client *backend.Client, logger *zap.Logger) *Loader {
	return NewLoader(client, logger.Named("catalog"))
}
