package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"lobstertawar/internal/catalog"
	"lobstertawar/internal/config"
	"lobstertawar/internal/infrastructure/backend"
	"lobstertawar/internal/inquiry"
)

func NewModule(client *backend.Client, cfg config.SiteConfig, logger *zap.Logger) *App {
	return NewApp(
		catalog.NewModule(client, logger),
		inquiry.NewModule(client, logger),
		cfg.Name,
		logger.Named("tui"),
	)
}

// Run takes over the terminal until the user quits.
func Run(app *App) error {
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
