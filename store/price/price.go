package price

import (
	"context"

	"rwalend/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type priceStore struct {
	db *db.DB
}

// New new price store
func New(db *db.DB) core.IPriceStore {
	return &priceStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Price{})
		if err := tx.AutoMigrate(core.Price{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *priceStore) Save(ctx context.Context, price *core.Price) error {
	var existing core.Price
	err := s.db.View().Where("item_id=?", price.ItemID).First(&existing).Error
	if err != nil {
		if !gorm.IsRecordNotFoundError(err) {
			return err
		}

		return s.db.Update().Create(price).Error
	}

	price.ID = existing.ID
	price.Version = existing.Version + 1
	return s.db.Update().Model(core.Price{}).
		Where("item_id=? and version=?", price.ItemID, existing.Version).
		Updates(map[string]interface{}{
			"price":   price.Price,
			"content": price.Content,
			"version": price.Version,
		}).Error
}

func (s *priceStore) Find(ctx context.Context, itemID string) (*core.Price, error) {
	var price core.Price
	if err := s.db.View().Where("item_id=?", itemID).First(&price).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Price{}, nil
		}

		return nil, err
	}

	return &price, nil
}

func (s *priceStore) All(ctx context.Context) ([]*core.Price, error) {
	var prices []*core.Price
	if err := s.db.View().Find(&prices).Error; err != nil {
		return nil, err
	}

	return prices, nil
}
