package views

import (
	"rwalend/core"

	"github.com/shopspring/decimal"
)

// Auction auction view
type Auction struct {
	core.Auction

	MinBid  decimal.Decimal `json:"min_bid"`
	Expired bool            `json:"expired"`
}
