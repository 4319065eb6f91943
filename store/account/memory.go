package account

import (
	"context"
	"sort"
	"sync"

	"rwalend/core"

	"github.com/shopspring/decimal"
)

type memoryStore struct {
	mu   sync.RWMutex
	rows map[string]*core.PoolAccount
	next uint64
}

// Memory in-memory pool account store for tests and the in-memory dev mode
func Memory() core.IPoolAccountStore {
	return &memoryStore{
		rows: make(map[string]*core.PoolAccount),
		next: 1,
	}
}

func (s *memoryStore) Save(ctx context.Context, account *core.PoolAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if row, ok := s.rows[account.Address]; ok {
		*account = *row
		return nil
	}

	account.ID = s.next
	s.next++

	row := *account
	s.rows[account.Address] = &row
	return nil
}

func (s *memoryStore) Find(ctx context.Context, address string) (*core.PoolAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if row, ok := s.rows[address]; ok {
		account := *row
		return &account, nil
	}

	return &core.PoolAccount{}, nil
}

func (s *memoryStore) All(ctx context.Context) ([]*core.PoolAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var accounts []*core.PoolAccount
	for _, row := range s.rows {
		account := *row
		accounts = append(accounts, &account)
	}

	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].ID < accounts[j].ID
	})
	return accounts, nil
}

func (s *memoryStore) Update(ctx context.Context, account *core.PoolAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[account.Address]
	if !ok || row.Version != account.Version {
		return nil
	}

	account.Version++
	updated := *account
	s.rows[account.Address] = &updated
	return nil
}

func (s *memoryStore) SumOfPrincipals(ctx context.Context) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := decimal.Zero
	for _, row := range s.rows {
		sum = sum.Add(row.Principal)
	}

	return sum, nil
}

func (s *memoryStore) CountOfDepositors(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, row := range s.rows {
		if row.Principal.IsPositive() {
			count++
		}
	}

	return count, nil
}
