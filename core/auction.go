package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// AuctionDuration fixed auction window
	AuctionDuration = 72 * time.Hour
)

// BidIncrement recommended minimum step over the leading bid. The hard
// floor enforced on chain of custody is strictly-greater; the increment
// is surfaced to callers as policy.
var BidIncrement = decimal.New(105, -2)

// Auction English auction over one seized collateral item
type Auction struct {
	ID            uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	ItemID        string          `sql:"size:36;unique_index:idx_auctions_item" json:"item_id"`
	Active        bool            `sql:"default:0" json:"active"`
	Owner         string          `sql:"size:64" json:"owner"`
	OriginalDebt  decimal.Decimal `sql:"type:decimal(32,16)" json:"original_debt"`
	HighestBid    decimal.Decimal `sql:"type:decimal(32,16)" json:"highest_bid"`
	HighestBidder string          `sql:"size:64" json:"highest_bidder"`
	EndTime       time.Time       `json:"end_time"`
	Version       int64           `sql:"default:0" json:"version"`
	CreatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// HasBid whether any bid has been accepted
func (a *Auction) HasBid() bool {
	return a.HighestBidder != ""
}

// MinBid recommended next bid: the debt floor for the first bid, a 5%
// step afterwards.
func (a *Auction) MinBid() decimal.Decimal {
	if !a.HasBid() {
		return a.OriginalDebt
	}

	return a.HighestBid.Mul(BidIncrement)
}

// Expired whether the bidding window has closed at t
func (a *Auction) Expired(t time.Time) bool {
	return !t.Before(a.EndTime)
}

// IAuctionStore auction store interface
type IAuctionStore interface {
	Create(ctx context.Context, auction *Auction) error
	Find(ctx context.Context, itemID string) (*Auction, error)
	ListActive(ctx context.Context) ([]*Auction, error)
	All(ctx context.Context) ([]*Auction, error)
	Update(ctx context.Context, auction *Auction) error
}

// ILiquidationService liquidation engine service interface
//
// EndAuction is caller triggered; expiry is checked lazily, never pushed
// by a scheduler.
type ILiquidationService interface {
	CheckHealth(ctx context.Context, itemID string) (bool, error)
	StartAuction(ctx context.Context, itemID string) (*Auction, error)
	Bid(ctx context.Context, bidder, itemID string, amount decimal.Decimal) (*Auction, error)
	EndAuction(ctx context.Context, itemID string) error
}
