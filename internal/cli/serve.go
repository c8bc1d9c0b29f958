package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lobstertawar/internal/infrastructure/logger"
	"lobstertawar/internal/server"
	"lobstertawar/internal/tui"
)

func newServeCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := s.logger()
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.Run(ctx, s.cfg, log)
		},
	}
}

func newTUICmd(s *session) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the catalog and send inquiries from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.NewFile(s.cfg.Log.Level, logFile)
			if err != nil {
				return err
			}
			defer log.Sync()

			return tui.Run(tui.NewModule(s.client(log), s.cfg.Site, log))
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "lobster-tui.log", "File receiving logs while the terminal UI runs")
	return cmd
}
