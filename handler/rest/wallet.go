package rest

import (
	"net/http"

	"rwalend/core"
	"rwalend/handler/param"
	"rwalend/handler/render"
	"rwalend/handler/views"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

func collateralHandler(collateralStore core.ICollateralStore, oracleSrv core.IPriceOracleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		collateral, err := collateralStore.Find(ctx, chi.URLParam(r, "item"))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if collateral.ID == 0 {
			render.Err(w, core.ErrItemNotFound)
			return
		}

		price, err := oracleSrv.GetPrice(ctx, collateral.ItemID)
		if err != nil {
			price = decimal.Zero
		}

		render.JSON(w, views.Collateral{
			Collateral: *collateral,
			Price:      price,
		})
	}
}

func walletHandler(stableLedger core.IStableLedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		address := chi.URLParam(r, "address")
		balance, err := stableLedger.BalanceOf(ctx, address)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, views.Wallet{
			Address: address,
			Balance: balance,
		})
	}
}

func transfersHandler(transferStore core.ITransferStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit := param.Int(r, "limit")
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		transfers, err := transferStore.Top(ctx, limit)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, transfers)
	}
}
