package cmd

import (
	"fmt"

	"github.com/gamezonia/gzone/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newSettingsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage add-on unit prices",
	}

	cmd.AddCommand(
		newSettingsShowCmd(app),
		newSettingsSetCmd(app),
	)

	return cmd
}

func newSettingsShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current add-on unit prices",
		RunE: func(cmd *cobra.Command, _ []string) error {
			prices, err := app.settings.UnitPrices(cmd.Context())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cold drink: %s\n", prices.ColdDrink.StringFixed(2))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "water: %s\n", prices.Water.StringFixed(2))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "snack: %s\n", prices.Snack.StringFixed(2))
			return nil
		},
	}
}

func newSettingsSetCmd(app *app) *cobra.Command {
	var (
		coldDrink string
		water     string
		snack     string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update add-on unit prices",
		RunE: func(cmd *cobra.Command, _ []string) error {
			prices, err := app.settings.UnitPrices(cmd.Context())
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("cold-drink") {
				if prices.ColdDrink, err = parsePrice("cold-drink", coldDrink); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("water") {
				if prices.Water, err = parsePrice("water", water); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("snack") {
				if prices.Snack, err = parsePrice("snack", snack); err != nil {
					return err
				}
			}

			if err := app.settings.Save(cmd.Context(), prices); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cold drink: %s, water: %s, snack: %s\n",
				prices.ColdDrink.StringFixed(2), prices.Water.StringFixed(2), prices.Snack.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&coldDrink, "cold-drink", "", "Cold drink unit price")
	cmd.Flags().StringVar(&water, "water", "", "Water unit price")
	cmd.Flags().StringVar(&snack, "snack", "", "Snack unit price")

	return cmd
}

func parsePrice(flag string, value string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid %s price %q", domain.ErrValidation, flag, value)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s price must not be negative", domain.ErrValidation, flag)
	}

	return price, nil
}
