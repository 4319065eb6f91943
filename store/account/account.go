package account

import (
	"context"

	"rwalend/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type accountStore struct {
	db *db.DB
}

// New new pool account store
func New(db *db.DB) core.IPoolAccountStore {
	return &accountStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.PoolAccount{})
		if err := tx.AutoMigrate(core.PoolAccount{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *accountStore) Save(ctx context.Context, account *core.PoolAccount) error {
	return s.db.Update().Where("address=?", account.Address).FirstOrCreate(account).Error
}

func (s *accountStore) Find(ctx context.Context, address string) (*core.PoolAccount, error) {
	var account core.PoolAccount
	if err := s.db.View().Where("address=?", address).First(&account).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.PoolAccount{}, nil
		}

		return nil, err
	}

	return &account, nil
}

func (s *accountStore) All(ctx context.Context) ([]*core.PoolAccount, error) {
	var accounts []*core.PoolAccount
	if err := s.db.View().Find(&accounts).Error; err != nil {
		return nil, err
	}

	return accounts, nil
}

func (s *accountStore) Update(ctx context.Context, account *core.PoolAccount) error {
	version := account.Version
	account.Version++

	return s.db.Update().Model(core.PoolAccount{}).
		Where("address=? and version=?", account.Address, version).
		Updates(map[string]interface{}{
			"principal": account.Principal,
			"version":   account.Version,
		}).Error
}

func (s *accountStore) SumOfPrincipals(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := s.db.View().Model(core.PoolAccount{}).
		Select("sum(principal)").Row().Scan(&sum); err != nil {
		return decimal.Zero, err
	}

	if !sum.Valid {
		return decimal.Zero, nil
	}

	return sum.Decimal, nil
}

func (s *accountStore) CountOfDepositors(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.View().Model(core.PoolAccount{}).
		Select("count(address)").Where("principal > 0").Row().Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
