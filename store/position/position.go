package position

import (
	"context"

	"rwalend/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type positionStore struct {
	db *db.DB
}

// New new position store
func New(db *db.DB) core.IPositionStore {
	return &positionStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Position{})
		if err := tx.AutoMigrate(core.Position{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *positionStore) Create(ctx context.Context, position *core.Position) error {
	return s.db.Update().Where("item_id=?", position.ItemID).FirstOrCreate(position).Error
}

func (s *positionStore) Find(ctx context.Context, itemID string) (*core.Position, error) {
	var position core.Position
	if err := s.db.View().Where("item_id=?", itemID).First(&position).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Position{}, nil
		}

		return nil, err
	}

	return &position, nil
}

func (s *positionStore) FindByOwner(ctx context.Context, owner string) ([]*core.Position, error) {
	var positions []*core.Position
	if err := s.db.View().Where("owner=?", owner).Find(&positions).Error; err != nil {
		return nil, err
	}

	return positions, nil
}

func (s *positionStore) ListActive(ctx context.Context) ([]*core.Position, error) {
	var positions []*core.Position
	if err := s.db.View().Where("active=?", true).Find(&positions).Error; err != nil {
		return nil, err
	}

	return positions, nil
}

func (s *positionStore) All(ctx context.Context) ([]*core.Position, error) {
	var positions []*core.Position
	if err := s.db.View().Find(&positions).Error; err != nil {
		return nil, err
	}

	return positions, nil
}

func (s *positionStore) Update(ctx context.Context, position *core.Position) error {
	version := position.Version
	position.Version++

	return s.db.Update().Model(core.Position{}).
		Where("item_id=? and version=?", position.ItemID, version).
		Updates(map[string]interface{}{
			"owner":   position.Owner,
			"debt":    position.Debt,
			"active":  position.Active,
			"version": position.Version,
		}).Error
}
