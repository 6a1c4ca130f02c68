// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order

import (
	"context"
	"sync"
)

// MemoryRepository keeps orders in process memory.
type MemoryRepository struct {
	mu     sync.RWMutex
	orders map[int64]Order
	nextID int64
}

// NewMemoryRepository creates an empty in-memory order store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{orders: make(map[int64]Order)}
}

func (repository *MemoryRepository) Place(ctx context.Context, order *Order) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.nextID++
	order.ID = repository.nextID
	repository.orders[order.ID] = *order

	return nil
}

func (repository *MemoryRepository) Get(ctx context.Context, id int64) (*Order, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	stored, ok := repository.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &stored, nil
}

func (repository *MemoryRepository) Delete(ctx context.Context, id int64) (*Order, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(repository.orders, id)

	return &stored, nil
}
