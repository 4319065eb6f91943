package cmd

import (
	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var mintStableCmd = &cobra.Command{
	Use:     "mint-stable",
	Aliases: []string{"ms"},
	Short:   "mint stable tokens to an address",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		ctx = logger.WithContext(ctx, logger.FromContext(ctx))

		to, e := cmd.Flags().GetString("to")
		if e != nil || to == "" {
			panic("no receiver address")
		}

		amount, e := cmd.Flags().GetString("amount")
		if e != nil {
			panic(e)
		}
		amountNum, e := decimal.NewFromString(amount)
		if e != nil || amountNum.LessThanOrEqual(decimal.Zero) {
			panic("invalid amount")
		}

		stores := provideStores()
		services := provideServices(stores)

		if err := services.stableLedger.Mint(ctx, adminAddress(), to, amountNum); err != nil {
			panic(err)
		}

		cmd.Println("minted", amountNum, "to", to)
	},
}

var mintCollateralCmd = &cobra.Command{
	Use:     "mint-collateral",
	Aliases: []string{"mc"},
	Short:   "register a new collateral item",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		ctx = logger.WithContext(ctx, logger.FromContext(ctx))

		to, e := cmd.Flags().GetString("to")
		if e != nil || to == "" {
			panic("no receiver address")
		}

		itemID, e := cmd.Flags().GetString("item")
		if e != nil || itemID == "" {
			panic("no item id")
		}

		uri, _ := cmd.Flags().GetString("uri")

		stores := provideStores()
		services := provideServices(stores)

		if err := services.registry.Mint(ctx, adminAddress(), to, itemID, uri); err != nil {
			panic(err)
		}

		cmd.Println("minted item", itemID, "to", to)
	},
}

func adminAddress() string {
	if len(cfg.Admins) == 0 {
		panic("no admin configured")
	}

	return cfg.Admins[0]
}

func init() {
	rootCmd.AddCommand(mintStableCmd)
	mintStableCmd.Flags().StringP("to", "t", "", "receiver address")
	mintStableCmd.Flags().StringP("amount", "q", "", "amount")

	rootCmd.AddCommand(mintCollateralCmd)
	mintCollateralCmd.Flags().StringP("to", "t", "", "receiver address")
	mintCollateralCmd.Flags().StringP("item", "i", "", "item id")
	mintCollateralCmd.Flags().StringP("uri", "u", "", "metadata uri")
}
