package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PoolAccount depositor principal in the shared liquidity pool
type PoolAccount struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Address   string          `sql:"size:64;unique_index:idx_pool_accounts_address" json:"address"`
	Principal decimal.Decimal `sql:"type:decimal(32,16)" json:"principal"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IPoolAccountStore pool account store interface
type IPoolAccountStore interface {
	Save(ctx context.Context, account *PoolAccount) error
	Find(ctx context.Context, address string) (*PoolAccount, error)
	All(ctx context.Context) ([]*PoolAccount, error)
	Update(ctx context.Context, account *PoolAccount) error
	SumOfPrincipals(ctx context.Context) (decimal.Decimal, error)
	CountOfDepositors(ctx context.Context) (int64, error)
}

// IPoolService liquidity pool service interface
//
// Lend and ReceiveRepayment never touch any principal entry; they move
// custody funds on behalf of the vault / liquidation engine only.
type IPoolService interface {
	Deposit(ctx context.Context, depositor string, amount decimal.Decimal) error
	Withdraw(ctx context.Context, depositor string, amount decimal.Decimal) error
	Lend(ctx context.Context, caller, borrower string, amount decimal.Decimal) error
	ReceiveRepayment(ctx context.Context, caller, payer string, amount decimal.Decimal) error
	Liquidity(ctx context.Context) (decimal.Decimal, error)
}
