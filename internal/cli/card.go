package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/polkiloo/deliverypro/internal/usecase"
)

// NewCardCommand creates the card command.
func NewCardCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "card <number>",
		Short: "Classify and validate a card number",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info := usecase.DescribeCard(strings.Join(args, " "))
			p := newPrinter(rootOpts, cmd.OutOrStdout())
			if p.json() {
				return p.writeJSON(map[string]any{
					"brand":     info.Brand,
					"formatted": info.Formatted,
					"valid":     info.Valid,
				})
			}
			brand := info.Brand
			if brand == "" {
				brand = "Unknown"
			}
			validity := "invalid"
			if info.Valid {
				validity = "valid"
			}
			return p.writeRows([][]string{{brand, info.Formatted, validity}})
		},
	}
}
