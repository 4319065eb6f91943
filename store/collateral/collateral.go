package collateral

import (
	"context"

	"rwalend/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type collateralStore struct {
	db *db.DB
}

// New new collateral store
func New(db *db.DB) core.ICollateralStore {
	return &collateralStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Collateral{})
		if err := tx.AutoMigrate(core.Collateral{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *collateralStore) Create(ctx context.Context, collateral *core.Collateral) error {
	return s.db.Update().Where("item_id=?", collateral.ItemID).FirstOrCreate(collateral).Error
}

func (s *collateralStore) Find(ctx context.Context, itemID string) (*core.Collateral, error) {
	var collateral core.Collateral
	if err := s.db.View().Where("item_id=?", itemID).First(&collateral).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Collateral{}, nil
		}

		return nil, err
	}

	return &collateral, nil
}

func (s *collateralStore) FindByOwner(ctx context.Context, owner string) ([]*core.Collateral, error) {
	var collaterals []*core.Collateral
	if err := s.db.View().Where("owner=?", owner).Find(&collaterals).Error; err != nil {
		return nil, err
	}

	return collaterals, nil
}

func (s *collateralStore) All(ctx context.Context) ([]*core.Collateral, error) {
	var collaterals []*core.Collateral
	if err := s.db.View().Find(&collaterals).Error; err != nil {
		return nil, err
	}

	return collaterals, nil
}

func (s *collateralStore) Update(ctx context.Context, collateral *core.Collateral) error {
	version := collateral.Version
	collateral.Version++

	return s.db.Update().Model(core.Collateral{}).
		Where("item_id=? and version=?", collateral.ItemID, version).
		Updates(map[string]interface{}{
			"owner":    collateral.Owner,
			"approved": collateral.Approved,
			"version":  collateral.Version,
		}).Error
}
