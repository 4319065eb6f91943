package ledger

import (
	"context"

	"rwalend/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type ledgerStore struct {
	db *db.DB
}

// New new stable ledger store
func New(db *db.DB) core.ILedgerStore {
	return &ledgerStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		if err := db.Update().Model(core.LedgerAccount{}).AutoMigrate(core.LedgerAccount{}).Error; err != nil {
			return err
		}

		if err := db.Update().Model(core.Allowance{}).AutoMigrate(core.Allowance{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *ledgerStore) SaveAccount(ctx context.Context, account *core.LedgerAccount) error {
	return s.db.Update().Where("address=?", account.Address).FirstOrCreate(account).Error
}

func (s *ledgerStore) FindAccount(ctx context.Context, address string) (*core.LedgerAccount, error) {
	var account core.LedgerAccount
	if err := s.db.View().Where("address=?", address).First(&account).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.LedgerAccount{}, nil
		}

		return nil, err
	}

	return &account, nil
}

func (s *ledgerStore) UpdateAccount(ctx context.Context, account *core.LedgerAccount) error {
	version := account.Version
	account.Version++

	return s.db.Update().Model(core.LedgerAccount{}).
		Where("address=? and version=?", account.Address, version).
		Updates(map[string]interface{}{
			"balance": account.Balance,
			"version": account.Version,
		}).Error
}

func (s *ledgerStore) SaveAllowance(ctx context.Context, allowance *core.Allowance) error {
	return s.db.Update().
		Where("owner=? and spender=?", allowance.Owner, allowance.Spender).
		FirstOrCreate(allowance).Error
}

func (s *ledgerStore) FindAllowance(ctx context.Context, owner, spender string) (*core.Allowance, error) {
	var allowance core.Allowance
	if err := s.db.View().Where("owner=? and spender=?", owner, spender).First(&allowance).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Allowance{}, nil
		}

		return nil, err
	}

	return &allowance, nil
}

func (s *ledgerStore) UpdateAllowance(ctx context.Context, allowance *core.Allowance) error {
	version := allowance.Version
	allowance.Version++

	return s.db.Update().Model(core.Allowance{}).
		Where("owner=? and spender=? and version=?", allowance.Owner, allowance.Spender, version).
		Updates(map[string]interface{}{
			"amount":  allowance.Amount,
			"version": allowance.Version,
		}).Error
}
