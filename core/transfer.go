package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// transfer sources
const (
	TransferSourcePoolDeposit   = "pool_deposit"
	TransferSourcePoolWithdraw  = "pool_withdraw"
	TransferSourceLend          = "lend"
	TransferSourceRepayment     = "repayment"
	TransferSourceEscrowLock    = "escrow_lock"
	TransferSourceEscrowRefund  = "escrow_refund"
	TransferSourceAuctionRepay  = "auction_repay"
	TransferSourceSurplusPayout = "surplus_payout"
)

// Transfer journal row for one fund movement
type Transfer struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
	TraceID   string          `sql:"size:36;unique_index:idx_transfers_trace" json:"trace_id,omitempty"`
	Source    string          `sql:"size:24" json:"source,omitempty"`
	From      string          `sql:"size:64" json:"from,omitempty"`
	To        string          `sql:"size:64" json:"to,omitempty"`
	Amount    decimal.Decimal `sql:"type:decimal(32,16)" json:"amount,omitempty"`
	Memo      string          `sql:"size:140" json:"memo,omitempty"`
}

// ITransferStore transfer journal interface
type ITransferStore interface {
	Create(ctx context.Context, transfer *Transfer) error
	Top(ctx context.Context, limit int) ([]*Transfer, error)
}
