package rest

import (
	"context"
	"net/http"

	"rwalend/core"
	"rwalend/handler/param"
	"rwalend/handler/render"
	"rwalend/handler/views"
	"rwalend/pkg/number"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

func positionsHandler(positionStore core.IPositionStore, oracleSrv core.IPriceOracleService, liquidationSrv core.ILiquidationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		positions, err := positionStore.ListActive(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		positionViews := make([]*views.Position, 0, len(positions))
		for _, p := range positions {
			positionViews = append(positionViews, getPositionView(ctx, p, oracleSrv, liquidationSrv))
		}

		render.JSON(w, positionViews)
	}
}

func positionHandler(positionStore core.IPositionStore, oracleSrv core.IPriceOracleService, liquidationSrv core.ILiquidationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		position, err := positionStore.Find(ctx, chi.URLParam(r, "item"))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if position.ID == 0 {
			render.Err(w, core.ErrPositionNotFound)
			return
		}

		render.JSON(w, getPositionView(ctx, position, oracleSrv, liquidationSrv))
	}
}

func healthHandler(liquidationSrv core.ILiquidationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		healthy, err := liquidationSrv.CheckHealth(ctx, chi.URLParam(r, "item"))
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, render.H{"healthy": healthy})
	}
}

func depositCollateralHandler(vaultSrv core.IVaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Address string `json:"address"`
			ItemID  string `json:"item_id"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		position, err := vaultSrv.DepositCollateral(ctx, params.Address, params.ItemID)
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, position)
	}
}

func borrowHandler(vaultSrv core.IVaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Address string `json:"address"`
			Amount  string `json:"amount"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		position, err := vaultSrv.Borrow(ctx, params.Address, chi.URLParam(r, "item"), number.Decimal(params.Amount))
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, position)
	}
}

func repayHandler(vaultSrv core.IVaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Address string `json:"address"`
			Amount  string `json:"amount"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		position, err := vaultSrv.Repay(ctx, params.Address, chi.URLParam(r, "item"), number.Decimal(params.Amount))
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, position)
	}
}

func withdrawCollateralHandler(vaultSrv core.IVaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Address string `json:"address"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := vaultSrv.WithdrawCollateral(ctx, params.Address, chi.URLParam(r, "item")); err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}

func getPositionView(ctx context.Context, position *core.Position, oracleSrv core.IPriceOracleService, liquidationSrv core.ILiquidationService) *views.Position {
	price, err := oracleSrv.GetPrice(ctx, position.ItemID)
	if err != nil {
		price = decimal.Zero
	}

	healthy, err := liquidationSrv.CheckHealth(ctx, position.ItemID)
	if err != nil {
		healthy = false
	}

	return &views.Position{
		Position: *position,
		Price:    price,
		MaxDebt:  position.MaxDebt(price),
		Healthy:  healthy,
	}
}
