package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"indicadores/internal/app"
	"indicadores/internal/infrastructure"
	"indicadores/pkg/contracts"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		host  string
		port  int
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("watch") {
				cfg.Data.Watch = watch
			}

			logger, err := infrastructure.InitializeLogger(cfg.Logging)
			if err != nil {
				return err
			}
			defer infrastructure.CloseLogFile()

			logger.Info("Starting application",
				slog.String("version", contracts.GetFullVersionString()),
				slog.String("data_file", cfg.Data.File),
				slog.String("address", cfg.Addr()))

			application, err := app.New(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return application.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides config)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload when the data file changes")
	return cmd
}

