package core

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// Price oracle valuation of one collateral item
type Price struct {
	ID        int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	ItemID    string          `sql:"size:36;unique_index:idx_prices_item" json:"item_id,omitempty"`
	Price     decimal.Decimal `sql:"type:decimal(32,16)" json:"price,omitempty"`
	Content   types.JSONText  `sql:"type:varchar(1024)" json:"content,omitempty"`
	Version   int64           `sql:"default:0" json:"version,omitempty"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at,omitempty"`
}

// PriceTicker appraisal pulled from the price feed
type PriceTicker struct {
	Provider string          `json:"provider,omitempty"`
	ItemID   string          `json:"item_id,omitempty"`
	Price    decimal.Decimal `json:"price,omitempty"`
}

// IPriceStore price store interface
type IPriceStore interface {
	Save(ctx context.Context, price *Price) error
	Find(ctx context.Context, itemID string) (*Price, error)
	All(ctx context.Context) ([]*Price, error)
}

// IPriceOracleService oracle service interface
type IPriceOracleService interface {
	GetPrice(ctx context.Context, itemID string) (decimal.Decimal, error)
	IsPriceSet(ctx context.Context, itemID string) (bool, error)
	SetPrice(ctx context.Context, caller, itemID string, price decimal.Decimal) error
	PullPriceTicker(ctx context.Context, itemID string, t time.Time) (*PriceTicker, error)
}
