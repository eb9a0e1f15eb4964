package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polkiloo/deliverypro/internal/catalog"
	"github.com/polkiloo/deliverypro/internal/domain/model"
)

type catalogOptions struct {
	category string
	file     string
	stores   bool
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &catalogOptions{}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List catalog items or stores",
		Long: `List the products of the catalog, optionally narrowed to one category.

Without --file the embedded catalog is used, so the command also checks a
custom YAML catalog before it is deployed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.category, "category", "c", "", "beer, wine or spirits")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "YAML catalog file")
	cmd.Flags().BoolVar(&opts.stores, "stores", false, "list stores instead of items")

	return cmd
}

func runCatalog(rootOpts *RootOptions, opts *catalogOptions, cmd *cobra.Command) error {
	category := model.Category(opts.category)
	if category != "" && !category.Valid() {
		return fmt.Errorf("unknown category %q", opts.category)
	}

	cat, err := catalog.Open(opts.file)
	if err != nil {
		return err
	}

	p := newPrinter(rootOpts, cmd.OutOrStdout())
	if opts.stores {
		stores := cat.Stores()
		if p.json() {
			return p.writeJSON(stores)
		}
		rows := make([][]string, 0, len(stores))
		for _, s := range stores {
			rows = append(rows, []string{s.ID, s.Name, s.Distance.String() + " km", s.DeliveryTime})
		}
		return p.writeRows(rows)
	}

	items := cat.Items(category)
	if p.json() {
		return p.writeJSON(items)
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{it.ID, string(it.Category), it.Name, it.Price.StringFixed(2)})
	}
	return p.writeRows(rows)
}
