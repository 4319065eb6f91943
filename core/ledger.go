package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerAccount stable asset balance of one address
type LedgerAccount struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Address   string          `sql:"size:64;unique_index:idx_ledger_accounts_address" json:"address"`
	Balance   decimal.Decimal `sql:"type:decimal(32,16)" json:"balance"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Allowance spending approval between two addresses
type Allowance struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Owner     string          `sql:"size:64;unique_index:idx_allowances_pair" json:"owner"`
	Spender   string          `sql:"size:64;unique_index:idx_allowances_pair" json:"spender"`
	Amount    decimal.Decimal `sql:"type:decimal(32,16)" json:"amount"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ILedgerStore stable ledger store interface
type ILedgerStore interface {
	SaveAccount(ctx context.Context, account *LedgerAccount) error
	FindAccount(ctx context.Context, address string) (*LedgerAccount, error)
	UpdateAccount(ctx context.Context, account *LedgerAccount) error
	SaveAllowance(ctx context.Context, allowance *Allowance) error
	FindAllowance(ctx context.Context, owner, spender string) (*Allowance, error)
	UpdateAllowance(ctx context.Context, allowance *Allowance) error
}

// IStableLedgerService fungible stable asset ledger with an allowance model
type IStableLedgerService interface {
	BalanceOf(ctx context.Context, address string) (decimal.Decimal, error)
	Transfer(ctx context.Context, from, to string, amount decimal.Decimal) error
	TransferFrom(ctx context.Context, spender, owner, to string, amount decimal.Decimal) error
	Approve(ctx context.Context, owner, spender string, amount decimal.Decimal) error
	Allowance(ctx context.Context, owner, spender string) (decimal.Decimal, error)
	// Mint admin gated faucet, dev and test only
	Mint(ctx context.Context, caller, to string, amount decimal.Decimal) error
}
