package registry

import (
	"context"

	"rwalend/core"
	"rwalend/pkg/locker"

	"github.com/fox-one/pkg/logger"
	"github.com/jmoiron/sqlx/types"
)

type registryService struct {
	cfg             *core.Config
	collateralStore core.ICollateralStore
	locker          *locker.Locker
}

// New new collateral registry service
func New(cfg *core.Config, collateralStore core.ICollateralStore) core.ICollateralRegistry {
	return &registryService{
		cfg:             cfg,
		collateralStore: collateralStore,
		locker:          locker.New(),
	}
}

func (s *registryService) OwnerOf(ctx context.Context, itemID string) (string, error) {
	collateral, err := s.collateralStore.Find(ctx, itemID)
	if err != nil {
		return "", err
	}

	if collateral.ID == 0 {
		return "", core.ErrItemNotFound
	}

	return collateral.Owner, nil
}

func (s *registryService) Approve(ctx context.Context, caller, operator, itemID string) error {
	s.locker.Lock(itemID)
	defer s.locker.Unlock(itemID)

	collateral, err := s.collateralStore.Find(ctx, itemID)
	if err != nil {
		return err
	}

	if collateral.ID == 0 {
		return core.ErrItemNotFound
	}

	if collateral.Owner != caller {
		return core.ErrNotOwner
	}

	collateral.Approved = operator
	return s.collateralStore.Update(ctx, collateral)
}

func (s *registryService) Transfer(ctx context.Context, caller, from, to, itemID string) error {
	s.locker.Lock(itemID)
	defer s.locker.Unlock(itemID)

	collateral, err := s.collateralStore.Find(ctx, itemID)
	if err != nil {
		return err
	}

	if collateral.ID == 0 {
		return core.ErrItemNotFound
	}

	if collateral.Owner != from {
		return core.ErrNotOwner
	}

	if caller != collateral.Owner && caller != collateral.Approved {
		return core.ErrUnauthorized
	}

	collateral.Owner = to
	collateral.Approved = ""
	return s.collateralStore.Update(ctx, collateral)
}

func (s *registryService) Mint(ctx context.Context, caller, to, itemID, metadataURI string) error {
	if !s.cfg.IsAdmin(caller) {
		return core.ErrUnauthorized
	}

	s.locker.Lock(itemID)
	defer s.locker.Unlock(itemID)

	existing, err := s.collateralStore.Find(ctx, itemID)
	if err != nil {
		return err
	}

	if existing.ID > 0 {
		return core.ErrItemExists
	}

	logger.FromContext(ctx).
		WithField("service", "registry").
		Infof("mint item %s to %s", itemID, to)

	collateral := &core.Collateral{
		ItemID:      itemID,
		Owner:       to,
		MetadataURI: metadataURI,
		Metadata:    types.JSONText("{}"),
	}
	return s.collateralStore.Create(ctx, collateral)
}
