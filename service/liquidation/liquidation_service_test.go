package liquidation

import (
	"context"
	"testing"
	"time"

	"rwalend/core"
	accountstore "rwalend/store/account"
	auctionstore "rwalend/store/auction"
	collateralstore "rwalend/store/collateral"
	ledgerstore "rwalend/store/ledger"
	pricestore "rwalend/store/price"
	positionstore "rwalend/store/position"
	transferstore "rwalend/store/transfer"

	ledgersrv "rwalend/service/ledger"
	oraclesrv "rwalend/service/oracle"
	poolsrv "rwalend/service/pool"
	registrysrv "rwalend/service/registry"
	vaultsrv "rwalend/service/vault"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const itemID = "deed-001"

type testEnv struct {
	cfg           *core.Config
	auctionStore  core.IAuctionStore
	positionStore core.IPositionStore
	transferStore core.ITransferStore
	stableLedger  core.IStableLedgerService
	registry      core.ICollateralRegistry
	oracle        core.IPriceOracleService
	pool          core.IPoolService
	vault         core.IVaultService
	engine        core.ILiquidationService
}

func newTestEnv(t *testing.T) *testEnv {
	cfg := &core.Config{
		App: core.App{
			PoolAccount:   "pool-account",
			VaultAccount:  "vault-account",
			EngineAccount: "engine-account",
		},
		Admins: []string{"admin"},
	}

	auctionStore := auctionstore.Memory()
	positionStore := positionstore.Memory()
	transferStore := transferstore.Memory()

	stableLedger := ledgersrv.New(cfg, ledgerstore.Memory())
	registry := registrysrv.New(cfg, collateralstore.Memory())
	oracle := oraclesrv.New(cfg, pricestore.Memory())
	pool := poolsrv.New(cfg, accountstore.Memory(), transferStore, stableLedger)
	vault := vaultsrv.New(cfg, positionStore, registry, oracle, pool)
	engine := New(cfg, auctionStore, positionStore, transferStore, vault, oracle, pool, stableLedger, registry)

	return &testEnv{
		cfg:           cfg,
		auctionStore:  auctionStore,
		positionStore: positionStore,
		transferStore: transferStore,
		stableLedger:  stableLedger,
		registry:      registry,
		oracle:        oracle,
		pool:          pool,
		vault:         vault,
		engine:        engine,
	}
}

// underwater sets up the canonical scenario: alice pledges a 100000
// item, draws 50000, then the valuation drops to 60000 so the ceiling
// falls to 36000 and the position turns unhealthy
func (e *testEnv) underwater(t *testing.T, ctx context.Context) {
	require.Nil(t, e.registry.Mint(ctx, "admin", "alice", itemID, "ipfs://deed-001"))
	require.Nil(t, e.oracle.SetPrice(ctx, "admin", itemID, decimal.NewFromInt(100000)))

	require.Nil(t, e.stableLedger.Mint(ctx, "admin", "lender", decimal.NewFromInt(80000)))
	require.Nil(t, e.stableLedger.Approve(ctx, "lender", e.cfg.App.PoolAccount, decimal.NewFromInt(80000)))
	require.Nil(t, e.pool.Deposit(ctx, "lender", decimal.NewFromInt(80000)))

	require.Nil(t, e.registry.Approve(ctx, "alice", e.cfg.App.VaultAccount, itemID))
	_, err := e.vault.DepositCollateral(ctx, "alice", itemID)
	require.Nil(t, err)
	_, err = e.vault.Borrow(ctx, "alice", itemID, decimal.NewFromInt(50000))
	require.Nil(t, err)

	require.Nil(t, e.oracle.SetPrice(ctx, "admin", itemID, decimal.NewFromInt(60000)))
}

func (e *testEnv) fundBidder(t *testing.T, ctx context.Context, bidder string, amount int64) {
	require.Nil(t, e.stableLedger.Mint(ctx, "admin", bidder, decimal.NewFromInt(amount)))
	require.Nil(t, e.stableLedger.Approve(ctx, bidder, e.cfg.App.EngineAccount, decimal.NewFromInt(amount)))
}

// expire rewinds the bidding window so the lazy expiry check trips
func (e *testEnv) expire(t *testing.T, ctx context.Context) {
	auction, err := e.auctionStore.Find(ctx, itemID)
	require.Nil(t, err)
	auction.EndTime = time.Now().Add(-time.Minute)
	require.Nil(t, e.auctionStore.Update(ctx, auction))
}

func TestCheckHealth(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	_, err := e.engine.CheckHealth(ctx, itemID)
	require.Equal(t, core.ErrPositionNotFound, err)

	e.underwater(t, ctx)

	healthy, err := e.engine.CheckHealth(ctx, itemID)
	require.Nil(t, err)
	require.False(t, healthy)

	require.Nil(t, e.oracle.SetPrice(ctx, "admin", itemID, decimal.NewFromInt(100000)))
	healthy, err = e.engine.CheckHealth(ctx, itemID)
	require.Nil(t, err)
	require.True(t, healthy)
}

func TestStartAuction(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.underwater(t, ctx)

	require.Nil(t, e.oracle.SetPrice(ctx, "admin", itemID, decimal.NewFromInt(100000)))
	_, err := e.engine.StartAuction(ctx, itemID)
	require.Equal(t, core.ErrPositionHealthy, err)

	require.Nil(t, e.oracle.SetPrice(ctx, "admin", itemID, decimal.NewFromInt(60000)))
	auction, err := e.engine.StartAuction(ctx, itemID)
	require.Nil(t, err)
	require.True(t, auction.Active)
	require.Equal(t, "alice", auction.Owner)
	require.True(t, auction.OriginalDebt.Equal(decimal.NewFromInt(50000)))
	require.False(t, auction.HasBid())

	_, err = e.engine.StartAuction(ctx, itemID)
	require.Equal(t, core.ErrAuctionAlreadyActive, err)
}

func TestStartAuctionAfterRepay(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.underwater(t, ctx)

	// alice repays down to 30000, back under the 36000 ceiling
	require.Nil(t, e.stableLedger.Approve(ctx, "alice", e.cfg.App.VaultAccount, decimal.NewFromInt(50000)))
	_, err := e.vault.Repay(ctx, "alice", itemID, decimal.NewFromInt(20000))
	require.Nil(t, err)

	_, err = e.engine.StartAuction(ctx, itemID)
	require.Equal(t, core.ErrPositionHealthy, err)

	// the seize itself refuses a healthy position, so a repay landing
	// between the engine's health read and the seizure cannot lose the
	// collateral either
	_, err = e.vault.SeizeForLiquidation(ctx, e.cfg.App.EngineAccount, itemID)
	require.Equal(t, core.ErrPositionHealthy, err)

	// fully repaid: still no auction, and never one with a zero debt
	_, err = e.vault.Repay(ctx, "alice", itemID, decimal.NewFromInt(30000))
	require.Nil(t, err)
	_, err = e.engine.StartAuction(ctx, itemID)
	require.Equal(t, core.ErrPositionHealthy, err)

	auction, err := e.auctionStore.Find(ctx, itemID)
	require.Nil(t, err)
	require.Zero(t, auction.ID)
}

func TestBid(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.underwater(t, ctx)

	e.fundBidder(t, ctx, "bob", 60000)
	e.fundBidder(t, ctx, "carol", 60000)

	_, err := e.engine.Bid(ctx, "bob", itemID, decimal.NewFromInt(50000))
	require.Equal(t, core.ErrAuctionNotFound, err)

	_, err = e.engine.StartAuction(ctx, itemID)
	require.Nil(t, err)

	// opening bid must cover the outstanding debt
	_, err = e.engine.Bid(ctx, "bob", itemID, decimal.NewFromInt(49999))
	require.Equal(t, core.ErrBidTooLow, err)

	auction, err := e.engine.Bid(ctx, "bob", itemID, decimal.NewFromInt(50000))
	require.Nil(t, err)
	require.Equal(t, "bob", auction.HighestBidder)

	bobBalance, err := e.stableLedger.BalanceOf(ctx, "bob")
	require.Nil(t, err)
	require.True(t, bobBalance.Equal(decimal.NewFromInt(10000)))

	// matching the leader is not enough
	_, err = e.engine.Bid(ctx, "carol", itemID, decimal.NewFromInt(50000))
	require.Equal(t, core.ErrBidTooLow, err)

	auction, err = e.engine.Bid(ctx, "carol", itemID, decimal.NewFromInt(52000))
	require.Nil(t, err)
	require.Equal(t, "carol", auction.HighestBidder)
	require.True(t, auction.HighestBid.Equal(decimal.NewFromInt(52000)))

	// bob got his escrow back in full
	bobBalance, err = e.stableLedger.BalanceOf(ctx, "bob")
	require.Nil(t, err)
	require.True(t, bobBalance.Equal(decimal.NewFromInt(60000)))

	// a bidder without funds or allowance is rejected before any refund
	_, err = e.engine.Bid(ctx, "dave", itemID, decimal.NewFromInt(55000))
	require.Equal(t, core.ErrInsufficientBalance, err)

	require.Nil(t, e.stableLedger.Mint(ctx, "admin", "dave", decimal.NewFromInt(55000)))
	_, err = e.engine.Bid(ctx, "dave", itemID, decimal.NewFromInt(55000))
	require.Equal(t, core.ErrInsufficientAllowance, err)

	e.expire(t, ctx)
	_, err = e.engine.Bid(ctx, "bob", itemID, decimal.NewFromInt(60000))
	require.Equal(t, core.ErrAuctionEnded, err)
}

// flakyLedger fails escrow pulls on demand, standing in for a bidder
// whose balance or allowance was spent elsewhere between the up front
// checks and the pull
type flakyLedger struct {
	core.IStableLedgerService
	pullErr error
}

func (l *flakyLedger) TransferFrom(ctx context.Context, spender, owner, to string, amount decimal.Decimal) error {
	if l.pullErr != nil {
		return l.pullErr
	}

	return l.IStableLedgerService.TransferFrom(ctx, spender, owner, to, amount)
}

func TestBidEscrowPullFailure(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.underwater(t, ctx)

	flaky := &flakyLedger{IStableLedgerService: e.stableLedger}
	engine := New(e.cfg, e.auctionStore, e.positionStore, e.transferStore, e.vault, e.oracle, e.pool, flaky, e.registry)

	e.fundBidder(t, ctx, "bob", 60000)
	e.fundBidder(t, ctx, "carol", 60000)

	_, err := engine.StartAuction(ctx, itemID)
	require.Nil(t, err)
	_, err = engine.Bid(ctx, "bob", itemID, decimal.NewFromInt(50000))
	require.Nil(t, err)

	flaky.pullErr = core.ErrInsufficientAllowance
	_, err = engine.Bid(ctx, "carol", itemID, decimal.NewFromInt(52000))
	require.Equal(t, core.ErrInsufficientAllowance, err)

	// bob was refunded in full and the row no longer names him: a bid
	// with no escrow behind it must never lead the auction
	bobBalance, err := e.stableLedger.BalanceOf(ctx, "bob")
	require.Nil(t, err)
	require.True(t, bobBalance.Equal(decimal.NewFromInt(60000)))

	auction, err := e.auctionStore.Find(ctx, itemID)
	require.Nil(t, err)
	require.True(t, auction.Active)
	require.False(t, auction.HasBid())

	// bidding reopens at the debt floor
	flaky.pullErr = nil
	_, err = engine.Bid(ctx, "carol", itemID, decimal.NewFromInt(49999))
	require.Equal(t, core.ErrBidTooLow, err)

	auction, err = engine.Bid(ctx, "carol", itemID, decimal.NewFromInt(52000))
	require.Nil(t, err)
	require.Equal(t, "carol", auction.HighestBidder)

	e.expire(t, ctx)
	require.Nil(t, e.engine.EndAuction(ctx, itemID))

	owner, err := e.registry.OwnerOf(ctx, itemID)
	require.Nil(t, err)
	require.Equal(t, "carol", owner)
}

func TestEndAuctionWithWinner(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.underwater(t, ctx)

	e.fundBidder(t, ctx, "bob", 52000)

	_, err := e.engine.StartAuction(ctx, itemID)
	require.Nil(t, err)
	_, err = e.engine.Bid(ctx, "bob", itemID, decimal.NewFromInt(52000))
	require.Nil(t, err)

	err = e.engine.EndAuction(ctx, itemID)
	require.Equal(t, core.ErrAuctionStillLive, err)

	e.expire(t, ctx)
	require.Nil(t, e.engine.EndAuction(ctx, itemID))

	// debt repaid to the pool: 30000 custody after the 50000 draw, plus
	// the 50000 settled debt
	liquidity, err := e.pool.Liquidity(ctx)
	require.Nil(t, err)
	require.True(t, liquidity.Equal(decimal.NewFromInt(80000)))

	// the settlement leg is journaled apart from borrower repayments
	transfers, err := e.transferStore.Top(ctx, 100)
	require.Nil(t, err)
	var settled bool
	for _, transfer := range transfers {
		if transfer.Source == core.TransferSourceAuctionRepay {
			settled = transfer.Amount.Equal(decimal.NewFromInt(50000))
		}
	}
	require.True(t, settled)

	// surplus above the debt goes to the original owner
	aliceBalance, err := e.stableLedger.BalanceOf(ctx, "alice")
	require.Nil(t, err)
	require.True(t, aliceBalance.Equal(decimal.NewFromInt(52000)))

	owner, err := e.registry.OwnerOf(ctx, itemID)
	require.Nil(t, err)
	require.Equal(t, "bob", owner)

	position, err := e.positionStore.Find(ctx, itemID)
	require.Nil(t, err)
	require.False(t, position.Active)
	require.True(t, position.Debt.IsZero())

	err = e.engine.EndAuction(ctx, itemID)
	require.Equal(t, core.ErrAuctionEnded, err)
}

func TestEndAuctionWithoutBids(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.underwater(t, ctx)

	_, err := e.engine.StartAuction(ctx, itemID)
	require.Nil(t, err)

	e.expire(t, ctx)
	require.Nil(t, e.engine.EndAuction(ctx, itemID))

	// the position survives with its debt outstanding
	position, err := e.positionStore.Find(ctx, itemID)
	require.Nil(t, err)
	require.True(t, position.Active)
	require.True(t, position.Debt.Equal(decimal.NewFromInt(50000)))

	owner, err := e.registry.OwnerOf(ctx, itemID)
	require.Nil(t, err)
	require.Equal(t, e.cfg.App.VaultAccount, owner)

	// still unhealthy, so a fresh auction can be opened on the same row
	auction, err := e.engine.StartAuction(ctx, itemID)
	require.Nil(t, err)
	require.True(t, auction.Active)
	require.False(t, auction.HasBid())
}
