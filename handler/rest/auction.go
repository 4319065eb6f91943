package rest

import (
	"net/http"
	"time"

	"rwalend/core"
	"rwalend/handler/param"
	"rwalend/handler/render"
	"rwalend/handler/views"
	"rwalend/pkg/number"

	"github.com/go-chi/chi"
)

func auctionsHandler(auctionStore core.IAuctionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		auctions, err := auctionStore.ListActive(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		auctionViews := make([]*views.Auction, 0, len(auctions))
		for _, a := range auctions {
			auctionViews = append(auctionViews, getAuctionView(a))
		}

		render.JSON(w, auctionViews)
	}
}

func auctionHandler(auctionStore core.IAuctionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		auction, err := auctionStore.Find(ctx, chi.URLParam(r, "item"))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if auction.ID == 0 {
			render.Err(w, core.ErrAuctionNotFound)
			return
		}

		render.JSON(w, getAuctionView(auction))
	}
}

func startAuctionHandler(liquidationSrv core.ILiquidationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			ItemID string `json:"item_id"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		auction, err := liquidationSrv.StartAuction(ctx, params.ItemID)
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, getAuctionView(auction))
	}
}

func bidHandler(liquidationSrv core.ILiquidationService) http.HandlerFunc {
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

		auction, err := liquidationSrv.Bid(ctx, params.Address, chi.URLParam(r, "item"), number.Decimal(params.Amount))
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, getAuctionView(auction))
	}
}

func endAuctionHandler(liquidationSrv core.ILiquidationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := liquidationSrv.EndAuction(ctx, chi.URLParam(r, "item")); err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}

func getAuctionView(auction *core.Auction) *views.Auction {
	return &views.Auction{
		Auction: *auction,
		MinBid:  auction.MinBid(),
		Expired: auction.Expired(time.Now()),
	}
}
