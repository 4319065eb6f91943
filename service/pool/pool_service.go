package pool

import (
	"context"

	"rwalend/core"
	"rwalend/pkg/id"
	"rwalend/pkg/locker"
	"rwalend/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// one pool wide critical section; every principal or custody mutation
// runs inside it so sum(principal) <= custody holds after each call
const lockKey = "pool"

type poolService struct {
	cfg           *core.Config
	accountStore  core.IPoolAccountStore
	transferStore core.ITransferStore
	stableLedger  core.IStableLedgerService
	locker        *locker.Locker
}

// New new liquidity pool service
func New(
	cfg *core.Config,
	accountStore core.IPoolAccountStore,
	transferStore core.ITransferStore,
	stableLedger core.IStableLedgerService,
) core.IPoolService {
	return &poolService{
		cfg:           cfg,
		accountStore:  accountStore,
		transferStore: transferStore,
		stableLedger:  stableLedger,
		locker:        locker.New(),
	}
}

func (s *poolService) Deposit(ctx context.Context, depositor string, amount decimal.Decimal) error {
	log := logger.FromContext(ctx).WithField("service", "pool")

	if !number.IsAmount(amount) {
		return core.ErrInvalidAmount
	}

	s.locker.Lock(lockKey)
	defer s.locker.Unlock(lockKey)

	// pull first; a failed pull leaves no state behind
	if err := s.stableLedger.TransferFrom(ctx, s.cfg.App.PoolAccount, depositor, s.cfg.App.PoolAccount, amount); err != nil {
		return err
	}

	account, err := s.accountStore.Find(ctx, depositor)
	if err != nil {
		log.WithError(err).Errorln("accounts.Find")
		return err
	}

	if account.ID == 0 {
		account = &core.PoolAccount{
			Address:   depositor,
			Principal: amount,
		}
		if err := s.accountStore.Save(ctx, account); err != nil {
			log.WithError(err).Errorln("accounts.Save")
			return err
		}
	} else {
		account.Principal = account.Principal.Add(amount)
		if err := s.accountStore.Update(ctx, account); err != nil {
			log.WithError(err).Errorln("accounts.Update")
			return err
		}
	}

	return s.journal(ctx, &core.Transfer{
		TraceID: id.GenTraceID(),
		Source:  core.TransferSourcePoolDeposit,
		From:    depositor,
		To:      s.cfg.App.PoolAccount,
		Amount:  amount,
	})
}

func (s *poolService) Withdraw(ctx context.Context, depositor string, amount decimal.Decimal) error {
	log := logger.FromContext(ctx).WithField("service", "pool")

	if !number.IsAmount(amount) {
		return core.ErrInvalidAmount
	}

	s.locker.Lock(lockKey)
	defer s.locker.Unlock(lockKey)

	account, err := s.accountStore.Find(ctx, depositor)
	if err != nil {
		log.WithError(err).Errorln("accounts.Find")
		return err
	}

	if account.ID == 0 || account.Principal.LessThan(amount) {
		return core.ErrInsufficientDeposit
	}

	custody, err := s.stableLedger.BalanceOf(ctx, s.cfg.App.PoolAccount)
	if err != nil {
		return err
	}

	if custody.LessThan(amount) {
		return core.ErrInsufficientPoolLiquidity
	}

	account.Principal = account.Principal.Sub(amount)
	if err := s.accountStore.Update(ctx, account); err != nil {
		log.WithError(err).Errorln("accounts.Update")
		return err
	}

	if err := s.stableLedger.Transfer(ctx, s.cfg.App.PoolAccount, depositor, amount); err != nil {
		log.WithError(err).Errorln("ledger.Transfer")
		return err
	}

	return s.journal(ctx, &core.Transfer{
		TraceID: id.GenTraceID(),
		Source:  core.TransferSourcePoolWithdraw,
		From:    s.cfg.App.PoolAccount,
		To:      depositor,
		Amount:  amount,
	})
}

func (s *poolService) Lend(ctx context.Context, caller, borrower string, amount decimal.Decimal) error {
	if caller != s.cfg.App.VaultAccount {
		return core.ErrUnauthorized
	}

	if !number.IsAmount(amount) {
		return core.ErrInvalidAmount
	}

	s.locker.Lock(lockKey)
	defer s.locker.Unlock(lockKey)

	custody, err := s.stableLedger.BalanceOf(ctx, s.cfg.App.PoolAccount)
	if err != nil {
		return err
	}

	if custody.LessThan(amount) {
		return core.ErrInsufficientPoolLiquidity
	}

	if err := s.stableLedger.Transfer(ctx, s.cfg.App.PoolAccount, borrower, amount); err != nil {
		return err
	}

	return s.journal(ctx, &core.Transfer{
		TraceID: id.GenTraceID(),
		Source:  core.TransferSourceLend,
		From:    s.cfg.App.PoolAccount,
		To:      borrower,
		Amount:  amount,
	})
}

func (s *poolService) ReceiveRepayment(ctx context.Context, caller, payer string, amount decimal.Decimal) error {
	if caller != s.cfg.App.VaultAccount && caller != s.cfg.App.EngineAccount {
		return core.ErrUnauthorized
	}

	if !number.IsAmount(amount) {
		return core.ErrInvalidAmount
	}

	s.locker.Lock(lockKey)
	defer s.locker.Unlock(lockKey)

	// a component repaying from its own escrow moves funds directly;
	// third parties are pulled through the allowance they granted the
	// calling component
	if payer == caller {
		if err := s.stableLedger.Transfer(ctx, payer, s.cfg.App.PoolAccount, amount); err != nil {
			return err
		}
	} else {
		if err := s.stableLedger.TransferFrom(ctx, caller, payer, s.cfg.App.PoolAccount, amount); err != nil {
			return err
		}
	}

	// auction settlements route through the engine escrow and are
	// journaled apart from borrower repayments
	source := core.TransferSourceRepayment
	if caller == s.cfg.App.EngineAccount {
		source = core.TransferSourceAuctionRepay
	}

	return s.journal(ctx, &core.Transfer{
		TraceID: id.GenTraceID(),
		Source:  source,
		From:    payer,
		To:      s.cfg.App.PoolAccount,
		Amount:  amount,
	})
}

func (s *poolService) Liquidity(ctx context.Context) (decimal.Decimal, error) {
	return s.stableLedger.BalanceOf(ctx, s.cfg.App.PoolAccount)
}

func (s *poolService) journal(ctx context.Context, transfer *core.Transfer) error {
	if err := s.transferStore.Create(ctx, transfer); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("transfers.Create")
		return err
	}

	return nil
}
