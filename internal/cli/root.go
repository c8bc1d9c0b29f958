// Package cli holds the lobster command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lobstertawar/internal/commons"
	"lobstertawar/internal/config"
	"lobstertawar/internal/infrastructure/backend"
	"lobstertawar/internal/infrastructure/logger"
)

// session carries what every subcommand needs once flags are parsed.
type session struct {
	configPath string
	cfg        *config.Config
}

func (s *session) loadConfig() error {
	cfg, err := commons.LoadConfig(s.configPath)
	if err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}

func (s *session) logger() (*zap.Logger, error) {
	return logger.New(s.cfg.Log.Level)
}

func (s *session) client(log *zap.Logger) *backend.Client {
	return backend.NewClient(s.cfg.Backend, log.Named("backend"))
}

func newRootCmd() *cobra.Command {
	s := &session{}

	root := &cobra.Command{
		Use:           "lobster",
		Short:         "Lobster Tawar storefront",
		Long:          "Serves the Lobster Tawar storefront and drives its backend from the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.loadConfig()
		},
	}

	root.PersistentFlags().StringVar(&s.configPath, "config", os.Getenv("CONFIG_FILE"), "YAML config file overriding the environment")

	root.AddCommand(
		newServeCmd(s),
		newTUICmd(s),
		newProductsCmd(s),
		newSeedCmd(s),
		newInquireCmd(s),
	)

	return root
}

// Execute runs the CLI
func Execute() error {
	return newRootCmd().Execute()
}
