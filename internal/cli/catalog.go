package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"lobstertawar/internal/catalog"
	"lobstertawar/internal/commons"
	"lobstertawar/internal/domain"
	"lobstertawar/internal/dto"
)

func newProductsCmd(s *session) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := s.logger()
			if err != nil {
				return err
			}
			defer log.Sync()

			loader := catalog.NewModule(s.client(log), log)
			if err := loader.Load(cmd.Context()); err != nil {
				return fmt.Errorf("%s: %w", catalog.MsgLoadFailed, err)
			}

			return printCatalog(cmd.OutOrStdout(), loader.Snapshot(), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog state as JSON")
	return cmd
}

func newSeedCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Add the three sample products and list the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := s.logger()
			if err != nil {
				return err
			}
			defer log.Sync()

			loader := catalog.NewModule(s.client(log), log)
			if err := loader.SeedSamples(cmd.Context()); err != nil {
				state := loader.Snapshot()
				return fmt.Errorf("%s: %w", state.Error, err)
			}

			return printCatalog(cmd.OutOrStdout(), loader.Snapshot(), false)
		},
	}
}

func printCatalog(out io.Writer, state domain.CatalogState, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(dto.CatalogStateFromDomain(state))
	}

	if len(state.Products) == 0 {
		_, err := fmt.Fprintln(out, "Belum ada produk.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAMA\tGRADE\tUKURAN\tBERAT\tSTOK\tHARGA")
	for _, p := range state.Products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s kg\t%s\n",
			orDash(p.ID),
			p.Name,
			orDash(p.Grade),
			measure(p.HasSize(), p.SizeCm, "cm"),
			measure(p.HasWeight(), p.WeightG, "g"),
			commons.FormatNumber(p.StockKg),
			commons.FormatRupiah(p.PricePerKg),
		)
	}
	return w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func measure(ok bool, v float64, unit string) string {
	if !ok {
		return "-"
	}
	return "~" + commons.FormatNumber(v) + " " + unit
}
