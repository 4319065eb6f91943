package views

import (
	"rwalend/core"

	"github.com/shopspring/decimal"
)

// Pool liquidity pool summary
type Pool struct {
	Liquidity      decimal.Decimal `json:"liquidity"`
	TotalPrincipal decimal.Decimal `json:"total_principal"`
	Depositors     int64           `json:"depositors"`
}

// Wallet stable ledger balance of one address
type Wallet struct {
	Address string          `json:"address"`
	Balance decimal.Decimal `json:"balance"`
}

// Collateral collateral item view with its latest valuation
type Collateral struct {
	core.Collateral

	Price decimal.Decimal `json:"price"`
}
