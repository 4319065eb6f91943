package transfer

import (
	"context"
	"sync"
	"time"

	"rwalend/core"
)

type memoryStore struct {
	mu   sync.RWMutex
	rows []*core.Transfer
	seen map[string]bool
	next uint64
}

// Memory in-memory transfer journal for tests and the in-memory dev mode
func Memory() core.ITransferStore {
	return &memoryStore{
		seen: make(map[string]bool),
		next: 1,
	}
}

func (s *memoryStore) Create(ctx context.Context, transfer *core.Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seen[transfer.TraceID] {
		return nil
	}

	transfer.ID = s.next
	s.next++
	if transfer.CreatedAt.IsZero() {
		transfer.CreatedAt = time.Now()
	}

	row := *transfer
	s.rows = append(s.rows, &row)
	s.seen[transfer.TraceID] = true
	return nil
}

func (s *memoryStore) Top(ctx context.Context, limit int) ([]*core.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}

	var transfers []*core.Transfer
	for i := len(s.rows) - 1; i >= 0 && len(transfers) < limit; i-- {
		row := *s.rows[i]
		transfers = append(transfers, &row)
	}

	return transfers, nil
}
