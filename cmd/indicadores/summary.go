package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	var developers []string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the KPIs and the detail table",
		Example: `  indicadores summary --data indicadores_grupo_linhares.xlsx
  indicadores summary --developer Ana --developer Bea`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger := opts.cliLogger(cfg, cmd.ErrOrStderr())

			svc, err := openService(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			dash, err := svc.Dashboard(cmd.Context(), developers)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderSummary(dash))
			return err
		},
	}

	cmd.Flags().StringSliceVarP(&developers, "developer", "d", nil, "developers to include (default: all)")
	return cmd
}
