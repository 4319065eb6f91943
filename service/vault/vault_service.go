package vault

import (
	"context"

	"rwalend/core"
	"rwalend/pkg/locker"
	"rwalend/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

type vaultService struct {
	cfg           *core.Config
	positionStore core.IPositionStore
	registry      core.ICollateralRegistry
	oracle        core.IPriceOracleService
	pool          core.IPoolService
	locker        *locker.Locker
}

// New new collateral vault service
func New(
	cfg *core.Config,
	positionStore core.IPositionStore,
	registry core.ICollateralRegistry,
	oracle core.IPriceOracleService,
	pool core.IPoolService,
) core.IVaultService {
	return &vaultService{
		cfg:           cfg,
		positionStore: positionStore,
		registry:      registry,
		oracle:        oracle,
		pool:          pool,
		locker:        locker.New(),
	}
}

func (s *vaultService) DepositCollateral(ctx context.Context, caller, itemID string) (*core.Position, error) {
	log := logger.FromContext(ctx).WithField("service", "vault")

	s.locker.Lock(s.positionKey(itemID))
	defer s.locker.Unlock(s.positionKey(itemID))

	owner, err := s.registry.OwnerOf(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if owner != caller {
		return nil, core.ErrNotOwner
	}

	position, err := s.positionStore.Find(ctx, itemID)
	if err != nil {
		log.WithError(err).Errorln("positions.Find")
		return nil, err
	}

	if position.Active {
		return nil, core.ErrAlreadyDeposited
	}

	// depositor must have approved the vault as operator beforehand
	if err := s.registry.Transfer(ctx, s.cfg.App.VaultAccount, caller, s.cfg.App.VaultAccount, itemID); err != nil {
		return nil, err
	}

	if position.ID == 0 {
		position = &core.Position{
			ItemID: itemID,
			Owner:  caller,
			Debt:   decimal.Zero,
			Active: true,
		}
		if err := s.positionStore.Create(ctx, position); err != nil {
			log.WithError(err).Errorln("positions.Create")
			return nil, err
		}

		return position, nil
	}

	position.Owner = caller
	position.Debt = decimal.Zero
	position.Active = true
	if err := s.positionStore.Update(ctx, position); err != nil {
		log.WithError(err).Errorln("positions.Update")
		return nil, err
	}

	return position, nil
}

func (s *vaultService) Borrow(ctx context.Context, caller, itemID string, amount decimal.Decimal) (*core.Position, error) {
	log := logger.FromContext(ctx).WithField("service", "vault")

	if !number.IsAmount(amount) {
		return nil, core.ErrInvalidAmount
	}

	s.locker.Lock(s.positionKey(itemID))
	defer s.locker.Unlock(s.positionKey(itemID))

	position, err := s.requireActivePosition(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if position.Owner != caller {
		return nil, core.ErrNotOwner
	}

	ok, err := s.oracle.IsPriceSet(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, core.ErrPriceNotAvailable
	}

	price, err := s.oracle.GetPrice(ctx, itemID)
	if err != nil {
		return nil, err
	}

	// both the value ceiling and the pool liquidity must hold before
	// any state changes; Lend performs its own check under the pool lock
	if position.Debt.Add(amount).GreaterThan(position.MaxDebt(price)) {
		return nil, core.ErrExceedsBorrowingLimit
	}

	if err := s.pool.Lend(ctx, s.cfg.App.VaultAccount, caller, amount); err != nil {
		return nil, err
	}

	position.Debt = number.Truncate(position.Debt.Add(amount))
	if err := s.positionStore.Update(ctx, position); err != nil {
		log.WithError(err).Errorln("positions.Update")
		return nil, err
	}

	return position, nil
}

func (s *vaultService) Repay(ctx context.Context, caller, itemID string, amount decimal.Decimal) (*core.Position, error) {
	log := logger.FromContext(ctx).WithField("service", "vault")

	if !number.IsAmount(amount) {
		return nil, core.ErrInvalidAmount
	}

	s.locker.Lock(s.positionKey(itemID))
	defer s.locker.Unlock(s.positionKey(itemID))

	position, err := s.requireActivePosition(ctx, itemID)
	if err != nil {
		return nil, err
	}

	// overpayment is rejected, never silently capped
	if amount.GreaterThan(position.Debt) {
		return nil, core.ErrRepayExceedsDebt
	}

	if err := s.pool.ReceiveRepayment(ctx, s.cfg.App.VaultAccount, caller, amount); err != nil {
		return nil, err
	}

	position.Debt = number.Truncate(position.Debt.Sub(amount))
	if err := s.positionStore.Update(ctx, position); err != nil {
		log.WithError(err).Errorln("positions.Update")
		return nil, err
	}

	return position, nil
}

func (s *vaultService) WithdrawCollateral(ctx context.Context, caller, itemID string) error {
	log := logger.FromContext(ctx).WithField("service", "vault")

	s.locker.Lock(s.positionKey(itemID))
	defer s.locker.Unlock(s.positionKey(itemID))

	position, err := s.requireActivePosition(ctx, itemID)
	if err != nil {
		return err
	}

	if position.Owner != caller {
		return core.ErrNotOwner
	}

	if !position.Debt.IsZero() {
		return core.ErrOutstandingDebt
	}

	if err := s.registry.Transfer(ctx, s.cfg.App.VaultAccount, s.cfg.App.VaultAccount, caller, itemID); err != nil {
		return err
	}

	position.Active = false
	if err := s.positionStore.Update(ctx, position); err != nil {
		log.WithError(err).Errorln("positions.Update")
		return err
	}

	return nil
}

func (s *vaultService) MaxBorrow(ctx context.Context, itemID string) (decimal.Decimal, error) {
	position, err := s.requireActivePosition(ctx, itemID)
	if err != nil {
		return decimal.Zero, err
	}

	price, err := s.oracle.GetPrice(ctx, itemID)
	if err != nil {
		return decimal.Zero, err
	}

	headroom := position.MaxDebt(price).Sub(position.Debt)
	if headroom.IsNegative() {
		return decimal.Zero, nil
	}

	return number.Truncate(headroom), nil
}

func (s *vaultService) SeizeForLiquidation(ctx context.Context, caller, itemID string) (*core.Position, error) {
	if caller != s.cfg.App.EngineAccount {
		return nil, core.ErrUnauthorized
	}

	s.locker.Lock(s.positionKey(itemID))
	defer s.locker.Unlock(s.positionKey(itemID))

	position, err := s.requireActivePosition(ctx, itemID)
	if err != nil {
		return nil, err
	}

	// the unhealthy check must hold at the moment of seizure; a repay
	// racing the engine would otherwise lose healthy collateral
	if position.Debt.IsZero() {
		return nil, core.ErrPositionHealthy
	}

	price, err := s.oracle.GetPrice(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if position.MaxDebt(price).GreaterThanOrEqual(position.Debt) {
		return nil, core.ErrPositionHealthy
	}

	// custody moves to the auction escrow conceptually: the engine is
	// approved as operator; the registry transfer itself happens only at
	// auction finalize, to the winner
	if err := s.registry.Approve(ctx, s.cfg.App.VaultAccount, s.cfg.App.EngineAccount, itemID); err != nil {
		return nil, err
	}

	return position, nil
}

func (s *vaultService) SettleLiquidation(ctx context.Context, caller, itemID string, proceeds decimal.Decimal) error {
	log := logger.FromContext(ctx).WithField("service", "vault")

	if caller != s.cfg.App.EngineAccount {
		return core.ErrUnauthorized
	}

	s.locker.Lock(s.positionKey(itemID))
	defer s.locker.Unlock(s.positionKey(itemID))

	position, err := s.requireActivePosition(ctx, itemID)
	if err != nil {
		return err
	}

	log.Infof("settle %s: debt %s cleared by proceeds %s", itemID, position.Debt, proceeds)

	position.Debt = decimal.Zero
	position.Active = false
	if err := s.positionStore.Update(ctx, position); err != nil {
		log.WithError(err).Errorln("positions.Update")
		return err
	}

	return nil
}

func (s *vaultService) ReinstateAfterAuction(ctx context.Context, caller, itemID string) error {
	if caller != s.cfg.App.EngineAccount {
		return core.ErrUnauthorized
	}

	s.locker.Lock(s.positionKey(itemID))
	defer s.locker.Unlock(s.positionKey(itemID))

	if _, err := s.requireActivePosition(ctx, itemID); err != nil {
		return err
	}

	// debt stays outstanding and the position active; only the escrow
	// hold on the item is released
	return s.registry.Approve(ctx, s.cfg.App.VaultAccount, "", itemID)
}

func (s *vaultService) requireActivePosition(ctx context.Context, itemID string) (*core.Position, error) {
	position, err := s.positionStore.Find(ctx, itemID)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("positions.Find")
		return nil, err
	}

	if position.ID == 0 || !position.Active {
		return nil, core.ErrPositionNotFound
	}

	return position, nil
}

func (s *vaultService) positionKey(itemID string) string {
	return "position:" + itemID
}
