package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LTVRatio protocol borrowing ceiling: debt may not exceed 60% of the
// oracle value of the collateral item.
var LTVRatio = decimal.New(60, -2)

// Position vault position, one per collateral item
type Position struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	ItemID    string          `sql:"size:36;unique_index:idx_positions_item" json:"item_id"`
	Owner     string          `sql:"size:64;index:idx_positions_owner" json:"owner"`
	Debt      decimal.Decimal `sql:"type:decimal(32,16)" json:"debt"`
	Active    bool            `sql:"default:0" json:"active"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// MaxDebt borrowing ceiling for the given collateral price
func (p *Position) MaxDebt(price decimal.Decimal) decimal.Decimal {
	return price.Mul(LTVRatio)
}

// IPositionStore position store interface
type IPositionStore interface {
	Create(ctx context.Context, position *Position) error
	Find(ctx context.Context, itemID string) (*Position, error)
	FindByOwner(ctx context.Context, owner string) ([]*Position, error)
	ListActive(ctx context.Context) ([]*Position, error)
	All(ctx context.Context) ([]*Position, error)
	Update(ctx context.Context, position *Position) error
}

// IVaultService collateral vault service interface
type IVaultService interface {
	DepositCollateral(ctx context.Context, caller, itemID string) (*Position, error)
	Borrow(ctx context.Context, caller, itemID string, amount decimal.Decimal) (*Position, error)
	Repay(ctx context.Context, caller, itemID string, amount decimal.Decimal) (*Position, error)
	WithdrawCollateral(ctx context.Context, caller, itemID string) error
	MaxBorrow(ctx context.Context, itemID string) (decimal.Decimal, error)
	// SeizeForLiquidation moves the item custody to the auction escrow.
	// Engine only; debt stays untouched until settlement.
	SeizeForLiquidation(ctx context.Context, caller, itemID string) (*Position, error)
	// SettleLiquidation clears the position after auction proceeds are routed.
	SettleLiquidation(ctx context.Context, caller, itemID string, proceeds decimal.Decimal) error
	// ReinstateAfterAuction returns custody to the vault after a no-bid
	// auction, leaving the debt outstanding and the position active.
	ReinstateAfterAuction(ctx context.Context, caller, itemID string) error
}
