package inquiry

import (
	"go.uber.org/zap"

	"lobstertawar/internal/infrastructure/backend"
)

func NewModule(client *backend.Client, logger *zap.Logger) *Submitter {
	return NewSubmitter(client, logger.Named("inquiry"))
}
