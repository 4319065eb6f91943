package position

import (
	"context"
	"sort"
	"sync"

	"rwalend/core"
)

type memoryStore struct {
	mu   sync.RWMutex
	rows map[string]*core.Position
	next uint64
}

// Memory in-memory position store for tests and the in-memory dev mode
func Memory() core.IPositionStore {
	return &memoryStore{
		rows: make(map[string]*core.Position),
		next: 1,
	}
}

func (s *memoryStore) Create(ctx context.Context, position *core.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if row, ok := s.rows[position.ItemID]; ok {
		*position = *row
		return nil
	}

	position.ID = s.next
	s.next++

	row := *position
	s.rows[position.ItemID] = &row
	return nil
}

func (s *memoryStore) Find(ctx context.Context, itemID string) (*core.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if row, ok := s.rows[itemID]; ok {
		position := *row
		return &position, nil
	}

	return &core.Position{}, nil
}

func (s *memoryStore) FindByOwner(ctx context.Context, owner string) ([]*core.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var positions []*core.Position
	for _, row := range s.rows {
		if row.Owner == owner {
			position := *row
			positions = append(positions, &position)
		}
	}

	sortPositions(positions)
	return positions, nil
}

func (s *memoryStore) ListActive(ctx context.Context) ([]*core.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var positions []*core.Position
	for _, row := range s.rows {
		if row.Active {
			position := *row
			positions = append(positions, &position)
		}
	}

	sortPositions(positions)
	return positions, nil
}

func (s *memoryStore) All(ctx context.Context) ([]*core.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var positions []*core.Position
	for _, row := range s.rows {
		position := *row
		positions = append(positions, &position)
	}

	sortPositions(positions)
	return positions, nil
}

func (s *memoryStore) Update(ctx context.Context, position *core.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[position.ItemID]
	if !ok || row.Version != position.Version {
		return nil
	}

	position.Version++
	updated := *position
	s.rows[position.ItemID] = &updated
	return nil
}

func sortPositions(positions []*core.Position) {
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].ID < positions[j].ID
	})
}
