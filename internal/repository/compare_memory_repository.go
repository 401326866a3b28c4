package repository

import (
	"context"
	"slices"
	"sync"
)

// CompareMemoryRepository is an in-process store used by tests and
// COMPARE_STORE=memory. Sets are lost on restart.
type CompareMemoryRepository struct {
	mu   sync.RWMutex
	sets map[string][]int
}

func NewCompareMemoryRepository() *CompareMemoryRepository {
	return &CompareMemoryRepository{sets: make(map[string][]int)}
}

func (r *CompareMemoryRepository) Load(_ context.Context, clientID string) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids, ok := r.sets[clientID]
	if !ok {
		return nil, nil
	}
	return slices.Clone(ids), nil
}

func (r *CompareMemoryRepository) Save(_ context.Context, clientID string, ids []int) error {
	r.mu.Lock()
	r.sets[clientID] = slices.Clone(ids)
	r.mu.Unlock()
	return nil
}

func (r *CompareMemoryRepository) Delete(_ context.Context, clientID string) error {
	r.mu.Lock()
	delete(r.sets, clientID)
	r.mu.Unlock()
	return nil
}
