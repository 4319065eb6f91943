package liquidation

import (
	"context"
	"time"

	"rwalend/core"
	"rwalend/pkg/id"
	"rwalend/pkg/locker"
	"rwalend/pkg/number"

	"github.com/fox-one/pkg/logger"
	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
)

type liquidationService struct {
	cfg           *core.Config
	auctionStore  core.IAuctionStore
	positionStore core.IPositionStore
	transferStore core.ITransferStore
	vault         core.IVaultService
	oracle        core.IPriceOracleService
	pool          core.IPoolService
	stableLedger  core.IStableLedgerService
	registry      core.ICollateralRegistry
	locker        *locker.Locker
}

// New new liquidation engine service
func New(
	cfg *core.Config,
	auctionStore core.IAuctionStore,
	positionStore core.IPositionStore,
	transferStore core.ITransferStore,
	vault core.IVaultService,
	oracle core.IPriceOracleService,
	pool core.IPoolService,
	stableLedger core.IStableLedgerService,
	registry core.ICollateralRegistry,
) core.ILiquidationService {
	return &liquidationService{
		cfg:           cfg,
		auctionStore:  auctionStore,
		positionStore: positionStore,
		transferStore: transferStore,
		vault:         vault,
		oracle:        oracle,
		pool:          pool,
		stableLedger:  stableLedger,
		registry:      registry,
		locker:        locker.New(),
	}
}

// CheckHealth a position is healthy iff it has no debt or its debt stays
// within the value ceiling at the current price
func (s *liquidationService) CheckHealth(ctx context.Context, itemID string) (bool, error) {
	position, err := s.positionStore.Find(ctx, itemID)
	if err != nil {
		return false, err
	}

	if position.ID == 0 || !position.Active {
		return false, core.ErrPositionNotFound
	}

	if position.Debt.IsZero() {
		return true, nil
	}

	price, err := s.oracle.GetPrice(ctx, itemID)
	if err != nil {
		return false, err
	}

	return position.MaxDebt(price).GreaterThanOrEqual(position.Debt), nil
}

func (s *liquidationService) StartAuction(ctx context.Context, itemID string) (*core.Auction, error) {
	log := logger.FromContext(ctx).WithField("service", "liquidation")

	s.locker.Lock(s.auctionKey(itemID))
	defer s.locker.Unlock(s.auctionKey(itemID))

	auction, err := s.auctionStore.Find(ctx, itemID)
	if err != nil {
		log.WithError(err).Errorln("auctions.Find")
		return nil, err
	}

	if auction.Active {
		return nil, core.ErrAuctionAlreadyActive
	}

	// the seize revalidates health under the position lock; a position
	// repaid back to health between our read and the seizure surfaces
	// ErrPositionHealthy here, never an auction
	position, err := s.vault.SeizeForLiquidation(ctx, s.cfg.App.EngineAccount, itemID)
	if err != nil {
		return nil, err
	}

	log.Infof("auction started for %s, debt %s", itemID, position.Debt)

	if auction.ID == 0 {
		auction = &core.Auction{
			ItemID:       itemID,
			Active:       true,
			Owner:        position.Owner,
			OriginalDebt: position.Debt,
			HighestBid:   decimal.Zero,
			EndTime:      time.Now().Add(core.AuctionDuration),
		}
		if err := s.auctionStore.Create(ctx, auction); err != nil {
			log.WithError(err).Errorln("auctions.Create")
			return nil, err
		}

		return auction, nil
	}

	// the item went through an earlier auction; reuse its row
	auction.Active = true
	auction.Owner = position.Owner
	auction.OriginalDebt = position.Debt
	auction.HighestBid = decimal.Zero
	auction.HighestBidder = ""
	auction.EndTime = time.Now().Add(core.AuctionDuration)
	if err := s.auctionStore.Update(ctx, auction); err != nil {
		log.WithError(err).Errorln("auctions.Update")
		return nil, err
	}

	return auction, nil
}

func (s *liquidationService) Bid(ctx context.Context, bidder, itemID string, amount decimal.Decimal) (*core.Auction, error) {
	log := logger.FromContext(ctx).WithField("service", "liquidation")

	if !number.IsAmount(amount) {
		return nil, core.ErrInvalidAmount
	}

	s.locker.Lock(s.auctionKey(itemID))
	defer s.locker.Unlock(s.auctionKey(itemID))

	auction, err := s.auctionStore.Find(ctx, itemID)
	if err != nil {
		log.WithError(err).Errorln("auctions.Find")
		return nil, err
	}

	if auction.ID == 0 {
		return nil, core.ErrAuctionNotFound
	}

	if !auction.Active || auction.Expired(time.Now()) {
		return nil, core.ErrAuctionEnded
	}

	// hard floor: the debt for the opening bid, strictly greater than
	// the leader afterwards; the 5% step in MinBid is surfaced policy
	if !auction.HasBid() {
		if amount.LessThan(auction.OriginalDebt) {
			return nil, core.ErrBidTooLow
		}
	} else if amount.LessThanOrEqual(auction.HighestBid) {
		return nil, core.ErrBidTooLow
	}

	// check funds and allowance up front so the common failures surface
	// before the previous leader is refunded
	balance, err := s.stableLedger.BalanceOf(ctx, bidder)
	if err != nil {
		return nil, err
	}

	if balance.LessThan(amount) {
		return nil, core.ErrInsufficientBalance
	}

	granted, err := s.stableLedger.Allowance(ctx, bidder, s.cfg.App.EngineAccount)
	if err != nil {
		return nil, err
	}

	if granted.LessThan(amount) {
		return nil, core.ErrInsufficientAllowance
	}

	trace := id.GenTraceID()

	// refund the previous leader in full before accepting the new
	// escrow; two bidders' funds are never locked at once
	if auction.HasBid() {
		if err := s.stableLedger.Transfer(ctx, s.cfg.App.EngineAccount, auction.HighestBidder, auction.HighestBid); err != nil {
			log.WithError(err).Errorln("escrow refund")
			return nil, err
		}

		s.journal(ctx, &core.Transfer{
			TraceID: foxuuid.Modify(trace, "escrow_refund"),
			Source:  core.TransferSourceEscrowRefund,
			From:    s.cfg.App.EngineAccount,
			To:      auction.HighestBidder,
			Amount:  auction.HighestBid,
		})
	}

	if err := s.stableLedger.TransferFrom(ctx, s.cfg.App.EngineAccount, bidder, s.cfg.App.EngineAccount, amount); err != nil {
		log.WithError(err).Errorln("escrow pull")
		// the previous leader has already been made whole; drop the
		// stale claim so the row never names a bid with no escrow
		// behind it
		if auction.HasBid() {
			auction.HighestBid = decimal.Zero
			auction.HighestBidder = ""
			if uerr := s.auctionStore.Update(ctx, auction); uerr != nil {
				log.WithError(uerr).Errorln("auctions.Update")
			}
		}
		return nil, err
	}

	s.journal(ctx, &core.Transfer{
		TraceID: foxuuid.Modify(trace, "escrow_lock"),
		Source:  core.TransferSourceEscrowLock,
		From:    bidder,
		To:      s.cfg.App.EngineAccount,
		Amount:  amount,
	})

	auction.HighestBid = amount
	auction.HighestBidder = bidder
	if err := s.auctionStore.Update(ctx, auction); err != nil {
		log.WithError(err).Errorln("auctions.Update")
		return nil, err
	}

	return auction, nil
}

func (s *liquidationService) EndAuction(ctx context.Context, itemID string) error {
	log := logger.FromContext(ctx).WithField("service", "liquidation")

	s.locker.Lock(s.auctionKey(itemID))
	defer s.locker.Unlock(s.auctionKey(itemID))

	auction, err := s.auctionStore.Find(ctx, itemID)
	if err != nil {
		log.WithError(err).Errorln("auctions.Find")
		return err
	}

	if auction.ID == 0 {
		return core.ErrAuctionNotFound
	}

	if !auction.Active {
		return core.ErrAuctionEnded
	}

	if !auction.Expired(time.Now()) {
		return core.ErrAuctionStillLive
	}

	if !auction.HasBid() {
		// no sale: release the escrow hold, keep the debt outstanding
		// and the position active so the owner can repay or be
		// liquidated again
		if err := s.vault.ReinstateAfterAuction(ctx, s.cfg.App.EngineAccount, itemID); err != nil {
			return err
		}

		auction.Active = false
		if err := s.auctionStore.Update(ctx, auction); err != nil {
			log.WithError(err).Errorln("auctions.Update")
			return err
		}

		log.Infof("auction for %s closed without bids", itemID)
		return nil
	}

	trace := id.GenTraceID()

	// settlement order: clear the debt, pay out the surplus, hand over
	// the item, then close the books
	if err := s.pool.ReceiveRepayment(ctx, s.cfg.App.EngineAccount, s.cfg.App.EngineAccount, auction.OriginalDebt); err != nil {
		log.WithError(err).Errorln("repay from escrow")
		return err
	}

	if surplus := auction.HighestBid.Sub(auction.OriginalDebt); surplus.IsPositive() {
		if err := s.stableLedger.Transfer(ctx, s.cfg.App.EngineAccount, auction.Owner, surplus); err != nil {
			log.WithError(err).Errorln("surplus payout")
			return err
		}

		s.journal(ctx, &core.Transfer{
			TraceID: foxuuid.Modify(trace, "surplus"),
			Source:  core.TransferSourceSurplusPayout,
			From:    s.cfg.App.EngineAccount,
			To:      auction.Owner,
			Amount:  surplus,
		})
	}

	if err := s.registry.Transfer(ctx, s.cfg.App.EngineAccount, s.cfg.App.VaultAccount, auction.HighestBidder, itemID); err != nil {
		log.WithError(err).Errorln("item transfer")
		return err
	}

	if err := s.vault.SettleLiquidation(ctx, s.cfg.App.EngineAccount, itemID, auction.HighestBid); err != nil {
		return err
	}

	auction.Active = false
	if err := s.auctionStore.Update(ctx, auction); err != nil {
		log.WithError(err).Errorln("auctions.Update")
		return err
	}

	log.Infof("auction for %s settled at %s, surplus to %s", itemID, auction.HighestBid, auction.Owner)
	return nil
}

func (s *liquidationService) journal(ctx context.Context, transfer *core.Transfer) {
	if err := s.transferStore.Create(ctx, transfer); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("transfers.Create")
	}
}

func (s *liquidationService) auctionKey(itemID string) string {
	return "auction:" + itemID
}
