package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/polkiloo/deliverypro/internal/catalog"
	"github.com/polkiloo/deliverypro/internal/domain/model"
	"github.com/polkiloo/deliverypro/internal/usecase"
)

type quoteOptions struct {
	items    []string
	store    string
	distance string
	baseFee  string
	perKm    string
	file     string
}

// NewQuoteCommand creates the quote command.
func NewQuoteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &quoteOptions{}
	defaults := usecase.DefaultFeeSchedule()

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a cart the way checkout does",
		Long: `Price a cart the way checkout does.

Items are given as id or id=quantity. The distance comes from --store, or
from --distance which takes precedence. Without items the quote covers a
plain courier delivery.`,
		Example: `  deliverypro quote --item beer1=2 --item wine1 --store tops1
  deliverypro quote --distance 2.3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuote(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.items, "item", "i", nil, "catalog item as id or id=quantity (repeatable)")
	cmd.Flags().StringVarP(&opts.store, "store", "s", "", "store the order is collected from")
	cmd.Flags().StringVarP(&opts.distance, "distance", "d", "", "delivery distance in km")
	cmd.Flags().StringVar(&opts.baseFee, "base-fee", defaults.Base.String(), "base delivery fee")
	cmd.Flags().StringVar(&opts.perKm, "per-km-rate", defaults.PerKm.String(), "delivery fee per kilometre")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "YAML catalog file")

	return cmd
}

func runQuote(rootOpts *RootOptions, opts *quoteOptions, cmd *cobra.Command) error {
	fees, err := parseFees(opts.baseFee, opts.perKm)
	if err != nil {
		return err
	}

	cat, err := catalog.Open(opts.file)
	if err != nil {
		return err
	}

	var cart model.Cart
	for _, raw := range opts.items {
		id, qty, err := parseItem(raw)
		if err != nil {
			return err
		}
		item, err := cat.Item(id)
		if err != nil {
			return fmt.Errorf("item %q: %w", id, err)
		}
		cart = cart.SetQuantity(item, qty)
	}

	distance := decimal.Zero
	if opts.store != "" {
		store, err := cat.Store(opts.store)
		if err != nil {
			return fmt.Errorf("store %q: %w", opts.store, err)
		}
		distance = store.Distance
	}
	if opts.distance != "" {
		if distance, err = decimal.NewFromString(opts.distance); err != nil {
			return fmt.Errorf("invalid distance: %w", err)
		}
		if distance.IsNegative() {
			return fmt.Errorf("distance must not be negative")
		}
	}

	quote := fees.Quote(cart, distance)
	p := newPrinter(rootOpts, cmd.OutOrStdout())
	if p.json() {
		return p.writeJSON(map[string]any{
			"distance":     distance,
			"items_total":  quote.ItemsTotal,
			"delivery_fee": quote.DeliveryFee,
			"total":        quote.Total,
		})
	}
	return p.writeRows([][]string{
		{"Items", quote.ItemsTotal.StringFixed(2)},
		{"Delivery (" + distance.String() + " km)", quote.DeliveryFee.StringFixed(2)},
		{"Total", quote.Total.StringFixed(2)},
	})
}

func parseFees(base, perKm string) (usecase.FeeSchedule, error) {
	b, err := decimal.NewFromString(base)
	if err != nil {
		return usecase.FeeSchedule{}, fmt.Errorf("invalid base fee: %w", err)
	}
	k, err := decimal.NewFromString(perKm)
	if err != nil {
		return usecase.FeeSchedule{}, fmt.Errorf("invalid per km rate: %w", err)
	}
	if b.IsNegative() || k.IsNegative() {
		return usecase.FeeSchedule{}, fmt.Errorf("delivery fees must not be negative")
	}
	return usecase.FeeSchedule{Base: b, PerKm: k}, nil
}

func parseItem(raw string) (string, int, error) {
	id, qtyStr, found := strings.Cut(raw, "=")
	id = strings.TrimSpace(id)
	if id == "" {
		return "", 0, fmt.Errorf("empty item in %q", raw)
	}
	if !found {
		return id, 1, nil
	}
	qty, err := strconv.Atoi(strings.TrimSpace(qtyStr))
	if err != nil || qty <= 0 {
		return "", 0, fmt.Errorf("invalid quantity in %q", raw)
	}
	return id, qty, nil
}
