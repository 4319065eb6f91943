package core

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Collateral unique collateral item in the ownership registry
type Collateral struct {
	ID          uint64         `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	ItemID      string         `sql:"size:36;unique_index:idx_collaterals_item" json:"item_id"`
	Owner       string         `sql:"size:64;index:idx_collaterals_owner" json:"owner"`
	Approved    string         `sql:"size:64" json:"approved,omitempty"`
	MetadataURI string         `sql:"size:255" json:"metadata_uri,omitempty"`
	Metadata    types.JSONText `sql:"type:varchar(1024)" json:"metadata,omitempty"`
	Version     int64          `sql:"default:0" json:"version"`
	CreatedAt   time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ICollateralStore collateral store interface
type ICollateralStore interface {
	Create(ctx context.Context, collateral *Collateral) error
	Find(ctx context.Context, itemID string) (*Collateral, error)
	FindByOwner(ctx context.Context, owner string) ([]*Collateral, error)
	All(ctx context.Context) ([]*Collateral, error)
	Update(ctx context.Context, collateral *Collateral) error
}

// ICollateralRegistry ownership ledger for unique collateral items
type ICollateralRegistry interface {
	OwnerOf(ctx context.Context, itemID string) (string, error)
	Approve(ctx context.Context, caller, operator, itemID string) error
	// Transfer moves the item from -> to. Caller must be the owner or the
	// approved operator; any approval is cleared on transfer.
	Transfer(ctx context.Context, caller, from, to, itemID string) error
	Mint(ctx context.Context, caller, to, itemID, metadataURI string) error
}
