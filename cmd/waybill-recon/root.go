package main

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/waybill-recon/internal/app"
	"github.com/joseph-ayodele/waybill-recon/internal/common"
	"github.com/joseph-ayodele/waybill-recon/internal/export"
)

// rootOptions are the persistent flags; set flags override the loaded config.
type rootOptions struct {
	configFile string
	verbose    bool
	quiet      bool
	format     string
	output     string
	workers    int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "waybill-recon",
		Short: "Reconcile carrier waybills against customs movement forms",
		Long: `waybill-recon reads FedEx, DHL and UPS waybill PDFs together with the
FMM movement-form exports that declare them, matches both sides by tracking
number and reports every field that disagrees.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file (default ./waybill-recon.yaml)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "warnings and errors only")
	pf.StringVarP(&opts.format, "format", "f", "", "report format: "+strings.Join(export.Formats(), ", "))
	pf.StringVarP(&opts.output, "output", "o", "", `report path, "-" for stdout`)
	pf.IntVarP(&opts.workers, "workers", "w", 0, "documents processed in parallel")

	root.AddCommand(newRunCmd(opts), newExtractCmd(opts), newVersionCmd())
	return root
}

// build loads the config, applies flag overrides and wires the components.
func (o *rootOptions) build(cmd *cobra.Command) (*app.App, error) {
	cfg, err := common.LoadConfig(o.configFile)
	if err != nil {
		return nil, err
	}
	o.apply(cmd, cfg)

	logger := app.NewLogger(cfg.Log, o.verbose, o.quiet, cmd.ErrOrStderr())
	slog.SetDefault(logger)
	return app.New(cfg, app.WithLogger(logger))
}

func (o *rootOptions) apply(cmd *cobra.Command, cfg *common.Config) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = strings.ToLower(o.format)
		if !flags.Changed("output") {
			cfg.Output.Path = defaultPath(cfg.Output.Path, cfg.Output.Format)
		}
	}
	if flags.Changed("output") {
		cfg.Output.Path = o.output
	}
	if flags.Changed("workers") {
		cfg.Pipeline.Workers = o.workers
	}
}

// defaultPath swaps the extension of the configured path to match format.
// The console table always goes to stdout.
func defaultPath(path, format string) string {
	if format == export.FormatTable || path == "-" {
		return "-"
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + format
}
