package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"indicadores/internal/config"
	"indicadores/internal/exporter"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		developers []string
		format     string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the detail table to a CSV or XLSX file",
		Example: `  indicadores export --format xlsx
  indicadores export -d Ana -o ana.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger := opts.cliLogger(cfg, cmd.ErrOrStderr())

			if output == "" {
				f, err := exporter.ParseFormat(format)
				if err != nil {
					return err
				}
				paths, err := config.GetPaths()
				if err != nil {
					return err
				}
				output = filepath.Join(paths.ExportsDir, f.FileName(exporter.DetailFileBase))
			}

			svc, err := openService(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			rows, err := svc.Detail(cmd.Context(), developers)
			if err != nil {
				return err
			}

			if err := exporter.NewDetailExporter(logger).ExportFile(output, rows); err != nil {
				return fmt.Errorf("export detail table: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "✓ %d linhas exportadas para %s\n", len(rows), output)
			return err
		},
	}

	cmd.Flags().StringSliceVarP(&developers, "developer", "d", nil, "developers to include (default: all)")
	cmd.Flags().StringVarP(&format, "format", "f", string(exporter.FormatCSV), "csv or xlsx, used when --output is not set")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; the extension selects the format")
	return cmd
}
