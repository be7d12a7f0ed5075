package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"indicadores/internal/app"
	"indicadores/internal/config"
	"indicadores/internal/dataset"
	"indicadores/internal/infrastructure"
	"indicadores/internal/services"
	"indicadores/pkg/contracts"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configFile string
	dataFile   string
	sheet      string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "indicadores",
		Short:         "Development indicators dashboard",
		Long:          `Indicadores reads the automation metrics spreadsheet and serves the development indicators as a JSON API, a terminal summary or detail exports.`,
		Version:       contracts.GetFullVersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.configFile, "config", "", "config file (default: config.yaml next to the executable)")
	f.StringVar(&opts.dataFile, "data", "", "spreadsheet to read (overrides config)")
	f.StringVar(&opts.sheet, "sheet", "", "worksheet name (default: first sheet)")
	f.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	cmd.AddCommand(
		newServeCmd(opts),
		newSummaryCmd(opts),
		newExportCmd(opts),
	)
	return cmd
}

// load resolves the configuration and applies flag overrides on top.
func (o *rootOptions) load() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configFile != "" {
		cfg, err = config.LoadFrom(o.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if o.dataFile != "" {
		abs, err := filepath.Abs(o.dataFile)
		if err != nil {
			return nil, fmt.Errorf("resolve data file: %w", err)
		}
		cfg.Data.File = abs
	}
	if o.sheet != "" {
		cfg.Data.Sheet = o.sheet
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	return cfg, nil
}

// cliLogger keeps one-shot commands quiet unless something goes wrong.
func (o *rootOptions) cliLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	logging := cfg.Logging
	logging.Format = "text"
	if o.logLevel == "" {
		logging.Level = "warn"
	}
	return infrastructure.NewLogger(logging, w)
}

// openService loads the data file once and returns a service over it.
func openService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*services.DashboardService, error) {
	store := dataset.NewStore(cfg.Data.File, cfg.Data.Sheet, app.ColumnsFrom(cfg.Data.Columns), logger)
	if _, err := store.Load(ctx); err != nil {
		return nil, err
	}
	return services.NewDashboardService(store, nil, logger), nil
}
