package rest

import (
	"net/http"

	"rwalend/core"
	"rwalend/handler/param"
	"rwalend/handler/render"
	"rwalend/handler/views"
	"rwalend/pkg/number"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

func poolHandler(accountStore core.IPoolAccountStore, poolSrv core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		liquidity, err := poolSrv.Liquidity(ctx)
		if err != nil {
			liquidity = decimal.Zero
		}

		total, err := accountStore.SumOfPrincipals(ctx)
		if err != nil {
			total = decimal.Zero
		}

		depositors, err := accountStore.CountOfDepositors(ctx)
		if err != nil {
			depositors = 0
		}

		render.JSON(w, views.Pool{
			Liquidity:      liquidity,
			TotalPrincipal: total,
			Depositors:     depositors,
		})
	}
}

func poolAccountHandler(accountStore core.IPoolAccountStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		account, err := accountStore.Find(ctx, chi.URLParam(r, "address"))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, account)
	}
}

func poolDepositHandler(poolSrv core.IPoolService) http.HandlerFunc {
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

		if err := poolSrv.Deposit(ctx, params.Address, number.Decimal(params.Amount)); err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}

func poolWithdrawHandler(poolSrv core.IPoolService) http.HandlerFunc {
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

		if err := poolSrv.Withdraw(ctx, params.Address, number.Decimal(params.Amount)); err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}
