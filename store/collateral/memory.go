package collateral

import (
	"context"
	"sort"
	"sync"

	"rwalend/core"
)

type memoryStore struct {
	mu   sync.RWMutex
	rows map[string]*core.Collateral
	next uint64
}

// Memory in-memory collateral store for tests and the in-memory dev mode
func Memory() core.ICollateralStore {
	return &memoryStore{
		rows: make(map[string]*core.Collateral),
		next: 1,
	}
}

func (s *memoryStore) Create(ctx context.Context, collateral *core.Collateral) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if row, ok := s.rows[collateral.ItemID]; ok {
		*collateral = *row
		return nil
	}

	collateral.ID = s.next
	s.next++

	row := *collateral
	s.rows[collateral.ItemID] = &row
	return nil
}

func (s *memoryStore) Find(ctx context.Context, itemID string) (*core.Collateral, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if row, ok := s.rows[itemID]; ok {
		collateral := *row
		return &collateral, nil
	}

	return &core.Collateral{}, nil
}

func (s *memoryStore) FindByOwner(ctx context.Context, owner string) ([]*core.Collateral, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var collaterals []*core.Collateral
	for _, row := range s.rows {
		if row.Owner == owner {
			collateral := *row
			collaterals = append(collaterals, &collateral)
		}
	}

	sortCollaterals(collaterals)
	return collaterals, nil
}

func (s *memoryStore) All(ctx context.Context) ([]*core.Collateral, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var collaterals []*core.Collateral
	for _, row := range s.rows {
		collateral := *row
		collaterals = append(collaterals, &collateral)
	}

	sortCollaterals(collaterals)
	return collaterals, nil
}

func (s *memoryStore) Update(ctx context.Context, collateral *core.Collateral) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[collateral.ItemID]
	if !ok || row.Version != collateral.Version {
		return nil
	}

	collateral.Version++
	updated := *collateral
	s.rows[collateral.ItemID] = &updated
	return nil
}

func sortCollaterals(collaterals []*core.Collateral) {
	sort.Slice(collaterals, func(i, j int) bool {
		return collaterals[i].ID < collaterals[j].ID
	})
}
