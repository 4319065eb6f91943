package rest

import (
	"net/http"

	"rwalend/core"
	"rwalend/handler/render"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Handle handle rest api request
func Handle(
	cfg *core.Config,
	positionStore core.IPositionStore,
	auctionStore core.IAuctionStore,
	collateralStore core.ICollateralStore,
	accountStore core.IPoolAccountStore,
	transferStore core.ITransferStore,
	poolService core.IPoolService,
	vaultService core.IVaultService,
	liquidationService core.ILiquidationService,
	oracleService core.IPriceOracleService,
	stableLedger core.IStableLedgerService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Err(w, twirp.NotFoundError("not found"))
	})

	router.Get("/pool", poolHandler(accountStore, poolService))
	router.Get("/pool/accounts/{address}", poolAccountHandler(accountStore))
	router.Post("/pool/deposits", poolDepositHandler(poolService))
	router.Post("/pool/withdrawals", poolWithdrawHandler(poolService))

	router.Get("/positions", positionsHandler(positionStore, oracleService, liquidationService))
	router.Get("/positions/{item}", positionHandler(positionStore, oracleService, liquidationService))
	router.Get("/positions/{item}/health", healthHandler(liquidationService))
	router.Post("/positions", depositCollateralHandler(vaultService))
	router.Post("/positions/{item}/borrow", borrowHandler(vaultService))
	router.Post("/positions/{item}/repay", repayHandler(vaultService))
	router.Post("/positions/{item}/withdraw", withdrawCollateralHandler(vaultService))

	router.Get("/auctions", auctionsHandler(auctionStore))
	router.Get("/auctions/{item}", auctionHandler(auctionStore))
	router.Post("/auctions", startAuctionHandler(liquidationService))
	router.Post("/auctions/{item}/bids", bidHandler(liquidationService))
	router.Post("/auctions/{item}/end", endAuctionHandler(liquidationService))

	router.Get("/collaterals/{item}", collateralHandler(collateralStore, oracleService))
	router.Get("/wallets/{address}", walletHandler(stableLedger))
	router.Get("/transfers", transfersHandler(transferStore))

	return router
}
