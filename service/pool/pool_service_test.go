package pool

import (
	"context"
	"testing"

	"rwalend/core"
	"rwalend/pkg/number"
	accountstore "rwalend/store/account"
	ledgerstore "rwalend/store/ledger"
	transferstore "rwalend/store/transfer"

	ledgersrv "rwalend/service/ledger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *core.Config {
	return &core.Config{
		App: core.App{
			PoolAccount:   "pool-account",
			VaultAccount:  "vault-account",
			EngineAccount: "engine-account",
		},
		Admins: []string{"admin"},
	}
}

type testEnv struct {
	cfg          *core.Config
	accountStore core.IPoolAccountStore
	stableLedger core.IStableLedgerService
	pool         core.IPoolService
}

func newTestEnv(t *testing.T) *testEnv {
	cfg := newTestConfig()
	stableLedger := ledgersrv.New(cfg, ledgerstore.Memory())
	accountStore := accountstore.Memory()
	pool := New(cfg, accountStore, transferstore.Memory(), stableLedger)

	return &testEnv{
		cfg:          cfg,
		accountStore: accountStore,
		stableLedger: stableLedger,
		pool:         pool,
	}
}

func (e *testEnv) fund(t *testing.T, ctx context.Context, address string, amount int64) {
	require.Nil(t, e.stableLedger.Mint(ctx, "admin", address, decimal.NewFromInt(amount)))
}

func TestPoolDepositAndWithdraw(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	e.fund(t, ctx, "lender", 100000)
	require.Nil(t, e.stableLedger.Approve(ctx, "lender", e.cfg.App.PoolAccount, decimal.NewFromInt(100000)))

	require.Nil(t, e.pool.Deposit(ctx, "lender", decimal.NewFromInt(60000)))

	liquidity, err := e.pool.Liquidity(ctx)
	require.Nil(t, err)
	require.True(t, liquidity.Equal(decimal.NewFromInt(60000)))

	account, err := e.accountStore.Find(ctx, "lender")
	require.Nil(t, err)
	require.True(t, account.Principal.Equal(decimal.NewFromInt(60000)))

	// a second deposit accrues on the same principal row
	require.Nil(t, e.pool.Deposit(ctx, "lender", decimal.NewFromInt(10000)))
	account, err = e.accountStore.Find(ctx, "lender")
	require.Nil(t, err)
	require.True(t, account.Principal.Equal(decimal.NewFromInt(70000)))

	require.Nil(t, e.pool.Withdraw(ctx, "lender", decimal.NewFromInt(70000)))

	balance, err := e.stableLedger.BalanceOf(ctx, "lender")
	require.Nil(t, err)
	require.True(t, balance.Equal(decimal.NewFromInt(100000)))
}

func TestPoolDepositRequiresAllowance(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	e.fund(t, ctx, "lender", 1000)
	err := e.pool.Deposit(ctx, "lender", decimal.NewFromInt(1000))
	require.Equal(t, core.ErrInsufficientAllowance, err)
}

func TestPoolWithdrawOverPrincipal(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	e.fund(t, ctx, "lender", 1000)
	require.Nil(t, e.stableLedger.Approve(ctx, "lender", e.cfg.App.PoolAccount, decimal.NewFromInt(1000)))
	require.Nil(t, e.pool.Deposit(ctx, "lender", decimal.NewFromInt(1000)))

	err := e.pool.Withdraw(ctx, "lender", decimal.NewFromInt(1001))
	require.Equal(t, core.ErrInsufficientDeposit, err)

	err = e.pool.Withdraw(ctx, "stranger", decimal.NewFromInt(1))
	require.Equal(t, core.ErrInsufficientDeposit, err)
}

func TestPoolLend(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	e.fund(t, ctx, "lender", 50000)
	require.Nil(t, e.stableLedger.Approve(ctx, "lender", e.cfg.App.PoolAccount, decimal.NewFromInt(50000)))
	require.Nil(t, e.pool.Deposit(ctx, "lender", decimal.NewFromInt(50000)))

	err := e.pool.Lend(ctx, "intruder", "borrower", decimal.NewFromInt(1000))
	require.Equal(t, core.ErrUnauthorized, err)

	err = e.pool.Lend(ctx, e.cfg.App.VaultAccount, "borrower", decimal.NewFromInt(50001))
	require.Equal(t, core.ErrInsufficientPoolLiquidity, err)

	require.Nil(t, e.pool.Lend(ctx, e.cfg.App.VaultAccount, "borrower", decimal.NewFromInt(30000)))

	balance, err := e.stableLedger.BalanceOf(ctx, "borrower")
	require.Nil(t, err)
	require.True(t, balance.Equal(decimal.NewFromInt(30000)))

	// principal is untouched by lending, only custody shrinks
	account, err := e.accountStore.Find(ctx, "lender")
	require.Nil(t, err)
	require.True(t, account.Principal.Equal(decimal.NewFromInt(50000)))

	err = e.pool.Withdraw(ctx, "lender", decimal.NewFromInt(50000))
	require.Equal(t, core.ErrInsufficientPoolLiquidity, err)
}

func TestPoolReceiveRepayment(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	e.fund(t, ctx, "lender", 50000)
	require.Nil(t, e.stableLedger.Approve(ctx, "lender", e.cfg.App.PoolAccount, decimal.NewFromInt(50000)))
	require.Nil(t, e.pool.Deposit(ctx, "lender", decimal.NewFromInt(50000)))
	require.Nil(t, e.pool.Lend(ctx, e.cfg.App.VaultAccount, "borrower", decimal.NewFromInt(30000)))

	err := e.pool.ReceiveRepayment(ctx, "intruder", "borrower", decimal.NewFromInt(30000))
	require.Equal(t, core.ErrUnauthorized, err)

	// third party repayment is pulled through the allowance it granted
	// the calling component
	require.Nil(t, e.stableLedger.Approve(ctx, "borrower", e.cfg.App.VaultAccount, decimal.NewFromInt(30000)))
	require.Nil(t, e.pool.ReceiveRepayment(ctx, e.cfg.App.VaultAccount, "borrower", decimal.NewFromInt(30000)))

	liquidity, err := e.pool.Liquidity(ctx)
	require.Nil(t, err)
	require.True(t, liquidity.Equal(decimal.NewFromInt(50000)))

	// a component repaying from its own escrow moves funds directly
	e.fund(t, ctx, e.cfg.App.EngineAccount, 1000)
	require.Nil(t, e.pool.ReceiveRepayment(ctx, e.cfg.App.EngineAccount, e.cfg.App.EngineAccount, decimal.NewFromInt(1000)))

	liquidity, err = e.pool.Liquidity(ctx)
	require.Nil(t, err)
	require.True(t, liquidity.Equal(decimal.NewFromInt(51000)))
}

func TestPoolRejectsBadAmounts(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	for _, amount := range []decimal.Decimal{
		decimal.Zero,
		decimal.NewFromInt(-1),
		number.Decimal("0.0000001"),
	} {
		require.Equal(t, core.ErrInvalidAmount, e.pool.Deposit(ctx, "lender", amount))
		require.Equal(t, core.ErrInvalidAmount, e.pool.Withdraw(ctx, "lender", amount))
	}
}
