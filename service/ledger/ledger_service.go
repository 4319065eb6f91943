package ledger

import (
	"context"

	"rwalend/core"
	"rwalend/pkg/locker"
	"rwalend/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

const lockKey = "stable_ledger"

type ledgerService struct {
	cfg         *core.Config
	ledgerStore core.ILedgerStore
	locker      *locker.Locker
}

// New new stable ledger service
func New(cfg *core.Config, ledgerStore core.ILedgerStore) core.IStableLedgerService {
	return &ledgerService{
		cfg:         cfg,
		ledgerStore: ledgerStore,
		locker:      locker.New(),
	}
}

func (s *ledgerService) BalanceOf(ctx context.Context, address string) (decimal.Decimal, error) {
	account, err := s.ledgerStore.FindAccount(ctx, address)
	if err != nil {
		return decimal.Zero, err
	}

	return account.Balance, nil
}

func (s *ledgerService) Transfer(ctx context.Context, from, to string, amount decimal.Decimal) error {
	if !number.IsAmount(amount) {
		return core.ErrInvalidAmount
	}

	s.locker.Lock(lockKey)
	defer s.locker.Unlock(lockKey)

	return s.move(ctx, from, to, amount)
}

func (s *ledgerService) TransferFrom(ctx context.Context, spender, owner, to string, amount decimal.Decimal) error {
	if !number.IsAmount(amount) {
		return core.ErrInvalidAmount
	}

	s.locker.Lock(lockKey)
	defer s.locker.Unlock(lockKey)

	allowance, err := s.ledgerStore.FindAllowance(ctx, owner, spender)
	if err != nil {
		return err
	}

	if allowance.Amount.LessThan(amount) {
		return core.ErrInsufficientAllowance
	}

	if err := s.move(ctx, owner, to, amount); err != nil {
		return err
	}

	allowance.Amount = allowance.Amount.Sub(amount)
	return s.ledgerStore.UpdateAllowance(ctx, allowance)
}

func (s *ledgerService) Approve(ctx context.Context, owner, spender string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return core.ErrInvalidAmount
	}

	s.locker.Lock(lockKey)
	defer s.locker.Unlock(lockKey)

	allowance, err := s.ledgerStore.FindAllowance(ctx, owner, spender)
	if err != nil {
		return err
	}

	if allowance.ID == 0 {
		allowance = &core.Allowance{
			Owner:   owner,
			Spender: spender,
			Amount:  number.Truncate(amount),
		}
		return s.ledgerStore.SaveAllowance(ctx, allowance)
	}

	allowance.Amount = number.Truncate(amount)
	return s.ledgerStore.UpdateAllowance(ctx, allowance)
}

func (s *ledgerService) Allowance(ctx context.Context, owner, spender string) (decimal.Decimal, error) {
	allowance, err := s.ledgerStore.FindAllowance(ctx, owner, spender)
	if err != nil {
		return decimal.Zero, err
	}

	return allowance.Amount, nil
}

func (s *ledgerService) Mint(ctx context.Context, caller, to string, amount decimal.Decimal) error {
	if !s.cfg.IsAdmin(caller) {
		return core.ErrUnauthorized
	}

	if !number.IsAmount(amount) {
		return core.ErrInvalidAmount
	}

	s.locker.Lock(lockKey)
	defer s.locker.Unlock(lockKey)

	logger.FromContext(ctx).
		WithField("service", "ledger").
		Infof("mint %s to %s", amount, to)

	return s.credit(ctx, to, amount)
}

func (s *ledgerService) move(ctx context.Context, from, to string, amount decimal.Decimal) error {
	account, err := s.ledgerStore.FindAccount(ctx, from)
	if err != nil {
		return err
	}

	if account.Balance.LessThan(amount) {
		return core.ErrInsufficientBalance
	}

	account.Balance = account.Balance.Sub(amount)
	if err := s.ledgerStore.UpdateAccount(ctx, account); err != nil {
		return err
	}

	return s.credit(ctx, to, amount)
}

func (s *ledgerService) credit(ctx context.Context, to string, amount decimal.Decimal) error {
	account, err := s.ledgerStore.FindAccount(ctx, to)
	if err != nil {
		return err
	}

	if account.ID == 0 {
		account = &core.LedgerAccount{
			Address: to,
			Balance: amount,
		}
		return s.ledgerStore.SaveAccount(ctx, account)
	}

	account.Balance = account.Balance.Add(amount)
	return s.ledgerStore.UpdateAccount(ctx, account)
}
