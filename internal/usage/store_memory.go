package usage

import (
	"context"
	"sync"
)

const memoryCap = 1000

type memoryStore struct {
	mu      sync.Mutex
	records []Record
}

func newMemoryStore() *memoryStore {
	return &memoryStore{}
}

func (s *memoryStore) Insert(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	if len(s.records) > memoryCap {
		s.records = s.records[len(s.records)-memoryCap:]
	}
	return nil
}

func (s *memoryStore) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, 0, limit)
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}
