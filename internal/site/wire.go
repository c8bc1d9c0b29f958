package site

import (
	"go.uber.org/zap"

	"lobstertawar/internal/catalog"
	"lobstertawar/internal/config"
	"lobstertawar/internal/infrastructure/backend"
	"lobstertawar/internal/inquiry"
)

// NewModule wires the controller. seeder is the process-wide loader used only
// for seeding; page loads build their own.
func NewModule(seeder *catalog.Loader, client *backend.Client, cfg config.SiteConfig, logger *zap.Logger) *Controller {
	newCatalog := func() CatalogLoader {
		return catalog.NewModule(client, logger)
	}
	newSubmitter := func() InquirySubmitter {
		return inquiry.NewModule(client, logger)
	}

	statusURL := cfg.StatusURL
	if statusURL == "" {
		statusURL = config.DefaultStatusURL
	}

	return NewController(newCatalog, seeder, newSubmitter, cfg.Name, statusURL, logger.Named("site"))
}
