package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/waybill-recon/internal/common"
	"github.com/joseph-ayodele/waybill-recon/internal/export"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <path>...",
		Short: "Reconcile every waybill and form found under the given paths",
		Example: `  waybill-recon run ./guias ./fmm
  waybill-recon run -f json -o - ./lote`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.build(cmd)
			if err != nil {
				return err
			}
			ctx := common.WithRunID(cmd.Context(), common.NewRunID())
			report, err := a.Processor.RunPaths(ctx, a.Ingestor, args...)
			if err != nil {
				return err
			}

			format, path := a.Config.Output.Format, a.Config.Output.Path
			if err := a.Exporter.WriteFile(path, format, report); err != nil {
				return err
			}
			// Show the summary on the console unless the report already went there.
			if path != "" && path != "-" {
				if err := export.WriteTable(cmd.OutOrStdout(), report); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nReporte: %s\n", path)
			}
			return nil
		},
	}
}
