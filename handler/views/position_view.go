package views

import (
	"rwalend/core"

	"github.com/shopspring/decimal"
)

// Position position view with its oracle derived fields
type Position struct {
	core.Position

	Price   decimal.Decimal `json:"price"`
	MaxDebt decimal.Decimal `json:"max_debt"`
	Healthy bool            `json:"healthy"`
}
