package ledger

import (
	"context"
	"sync"

	"rwalend/core"
)

type memoryStore struct {
	mu         sync.RWMutex
	accounts   map[string]*core.LedgerAccount
	allowances map[string]*core.Allowance
	next       uint64
}

// Memory in-memory stable ledger store for tests and the in-memory dev mode
func Memory() core.ILedgerStore {
	return &memoryStore{
		accounts:   make(map[string]*core.LedgerAccount),
		allowances: make(map[string]*core.Allowance),
		next:       1,
	}
}

func (s *memoryStore) SaveAccount(ctx context.Context, account *core.LedgerAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if row, ok := s.accounts[account.Address]; ok {
		*account = *row
		return nil
	}

	account.ID = s.next
	s.next++

	row := *account
	s.accounts[account.Address] = &row
	return nil
}

func (s *memoryStore) FindAccount(ctx context.Context, address string) (*core.LedgerAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if row, ok := s.accounts[address]; ok {
		account := *row
		return &account, nil
	}

	return &core.LedgerAccount{}, nil
}

func (s *memoryStore) UpdateAccount(ctx context.Context, account *core.LedgerAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.accounts[account.Address]
	if !ok || row.Version != account.Version {
		return nil
	}

	account.Version++
	updated := *account
	s.accounts[account.Address] = &updated
	return nil
}

func (s *memoryStore) SaveAllowance(ctx context.Context, allowance *core.Allowance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := allowance.Owner + "/" + allowance.Spender
	if row, ok := s.allowances[key]; ok {
		*allowance = *row
		return nil
	}

	allowance.ID = s.next
	s.next++

	row := *allowance
	s.allowances[key] = &row
	return nil
}

func (s *memoryStore) FindAllowance(ctx context.Context, owner, spender string) (*core.Allowance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if row, ok := s.allowances[owner+"/"+spender]; ok {
		allowance := *row
		return &allowance, nil
	}

	return &core.Allowance{}, nil
}

func (s *memoryStore) UpdateAllowance(ctx context.Context, allowance *core.Allowance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := allowance.Owner + "/" + allowance.Spender
	row, ok := s.allowances[key]
	if !ok || row.Version != allowance.Version {
		return nil
	}

	allowance.Version++
	updated := *allowance
	s.allowances[key] = &updated
	return nil
}
