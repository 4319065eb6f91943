package cmd

import (
	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var setPriceCmd = &cobra.Command{
	Use:     "set-price",
	Aliases: []string{"sp"},
	Short:   "set the oracle valuation of a collateral item",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		ctx = logger.WithContext(ctx, logger.FromContext(ctx))

		itemID, e := cmd.Flags().GetString("item")
		if e != nil || itemID == "" {
			panic("no item id")
		}

		price, e := cmd.Flags().GetString("price")
		if e != nil {
			panic(e)
		}
		priceNum, e := decimal.NewFromString(price)
		if e != nil || priceNum.LessThanOrEqual(decimal.Zero) {
			panic("invalid price")
		}

		stores := provideStores()
		services := provideServices(stores)

		if err := services.oracle.SetPrice(ctx, adminAddress(), itemID, priceNum); err != nil {
			panic(err)
		}

		cmd.Println("price of", itemID, "set to", priceNum)
	},
}

func init() {
	rootCmd.AddCommand(setPriceCmd)
	setPriceCmd.Flags().StringP("item", "i", "", "item id")
	setPriceCmd.Flags().StringP("price", "p", "", "price")
}
