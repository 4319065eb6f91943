package price

import (
	"context"
	"sort"
	"sync"

	"rwalend/core"
)

type memoryStore struct {
	mu   sync.RWMutex
	rows map[string]*core.Price
	next int64
}

// Memory in-memory price store for tests and the in-memory dev mode
func Memory() core.IPriceStore {
	return &memoryStore{
		rows: make(map[string]*core.Price),
		next: 1,
	}
}

func (s *memoryStore) Save(ctx context.Context, price *core.Price) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if row, ok := s.rows[price.ItemID]; ok {
		price.ID = row.ID
		price.Version = row.Version + 1
	} else {
		price.ID = s.next
		s.next++
	}

	row := *price
	s.rows[price.ItemID] = &row
	return nil
}

func (s *memoryStore) Find(ctx context.Context, itemID string) (*core.Price, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if row, ok := s.rows[itemID]; ok {
		price := *row
		return &price, nil
	}

	return &core.Price{}, nil
}

func (s *memoryStore) All(ctx context.Context) ([]*core.Price, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var prices []*core.Price
	for _, row := range s.rows {
		price := *row
		prices = append(prices, &price)
	}

	sort.Slice(prices, func(i, j int) bool {
		return prices[i].ID < prices[j].ID
	})
	return prices, nil
}
