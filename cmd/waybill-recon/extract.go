package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/waybill-recon/constants"
	"github.com/joseph-ayodele/waybill-recon/internal/entity"
	"github.com/joseph-ayodele/waybill-recon/internal/form"
	"github.com/joseph-ayodele/waybill-recon/internal/ingest"
	"github.com/joseph-ayodele/waybill-recon/internal/waybill"
)

func newExtractCmd(opts *rootOptions) *cobra.Command {
	var (
		records bool
		carrier string
	)
	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Print the text of one document, or the records parsed from it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var only constants.Carrier
			if carrier != "" {
				c, ok := constants.ParseCarrier(carrier)
				if !ok {
					return fmt.Errorf("unknown carrier %q (want one of %s)", carrier, strings.Join(constants.CarrierNames(), ", "))
				}
				only = c
			}
			a, err := opts.build(cmd)
			if err != nil {
				return err
			}
			res, err := a.Extractor.Extract(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !records {
				_, err := fmt.Fprintln(out, res.Text)
				return err
			}

			var v any
			switch kind := ingest.Classify(args[0], res.Text); kind {
			case constants.DocWaybill:
				recs := waybill.ExtractDocument(res.Text, args[0]).Records
				if only != "" {
					recs = slices.DeleteFunc(recs, func(r entity.ShipmentRecord) bool { return r.Carrier != only })
				}
				v = recs
			case constants.DocForm:
				v = form.Parse(res.Text, args[0])
			default:
				return fmt.Errorf("%s: not a waybill or movement form", args[0])
			}
			b, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(false))
			if err != nil {
				return err
			}
			_, err = out.Write(b)
			return err
		},
	}
	cmd.Flags().BoolVarP(&records, "records", "r", false, "parse the text into records (YAML)")
	cmd.Flags().StringVar(&carrier, "carrier", "", "with --records, keep only waybills of this carrier: "+strings.Join(constants.CarrierNames(), ", "))
	return cmd
}
