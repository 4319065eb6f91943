package auction

import (
	"context"
	"sort"
	"sync"

	"rwalend/core"
)

type memoryStore struct {
	mu   sync.RWMutex
	rows map[string]*core.Auction
	next uint64
}

// Memory in-memory auction store for tests and the in-memory dev mode
func Memory() core.IAuctionStore {
	return &memoryStore{
		rows: make(map[string]*core.Auction),
		next: 1,
	}
}

func (s *memoryStore) Create(ctx context.Context, auction *core.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if row, ok := s.rows[auction.ItemID]; ok {
		*auction = *row
		return nil
	}

	auction.ID = s.next
	s.next++

	row := *auction
	s.rows[auction.ItemID] = &row
	return nil
}

func (s *memoryStore) Find(ctx context.Context, itemID string) (*core.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if row, ok := s.rows[itemID]; ok {
		auction := *row
		return &auction, nil
	}

	return &core.Auction{}, nil
}

func (s *memoryStore) ListActive(ctx context.Context) ([]*core.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var auctions []*core.Auction
	for _, row := range s.rows {
		if row.Active {
			auction := *row
			auctions = append(auctions, &auction)
		}
	}

	sortAuctions(auctions)
	return auctions, nil
}

func (s *memoryStore) All(ctx context.Context) ([]*core.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var auctions []*core.Auction
	for _, row := range s.rows {
		auction := *row
		auctions = append(auctions, &auction)
	}

	sortAuctions(auctions)
	return auctions, nil
}

func (s *memoryStore) Update(ctx context.Context, auction *core.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[auction.ItemID]
	if !ok || row.Version != auction.Version {
		return nil
	}

	auction.Version++
	updated := *auction
	s.rows[auction.ItemID] = &updated
	return nil
}

func sortAuctions(auctions []*core.Auction) {
	sort.Slice(auctions, func(i, j int) bool {
		return auctions[i].ID < auctions[j].ID
	})
}
