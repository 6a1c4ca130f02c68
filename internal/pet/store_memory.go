// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pet

import (
	"context"
	"fmt"
	"sync"

	"github.com/taibuivan/petstore/pkg/slug"
)

// MemoryRepository keeps pets in process memory. It is the default store.
type MemoryRepository struct {
	mu             sync.RWMutex
	pets           map[int64]*Pet
	categories     map[string]Category
	nextPetID      int64
	nextCategoryID int64
}

// NewMemoryRepository creates an empty in-memory pet store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		pets:       make(map[int64]*Pet),
		categories: make(map[string]Category),
	}
}

func (repository *MemoryRepository) ResolveCategory(ctx context.Context, name string) (Category, error) {
	key := slug.From(name)
	if key == "" {
		return Category{}, fmt.Errorf("pet: category %q has an empty slug", name)
	}

	repository.mu.Lock()
	defer repository.mu.Unlock()

	if category, ok := repository.categories[key]; ok {
		return category, nil
	}

	repository.nextCategoryID++
	category := Category{ID: repository.nextCategoryID, Name: name, Slug: key}
	repository.categories[key] = category

	return category, nil
}

func (repository *MemoryRepository) Create(ctx context.Context, pet *Pet) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.nextPetID++
	pet.ID = repository.nextPetID
	repository.pets[pet.ID] = pet.Clone()

	return nil
}

func (repository *MemoryRepository) Get(ctx context.Context, id int64) (*Pet, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	stored, ok := repository.pets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return stored.Clone(), nil
}

func (repository *MemoryRepository) Update(ctx context.Context, pet *Pet) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.pets[pet.ID]; !ok {
		return ErrNotFound
	}
	repository.pets[pet.ID] = pet.Clone()

	return nil
}

func (repository *MemoryRepository) Delete(ctx context.Context, id int64) (*Pet, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.pets[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(repository.pets, id)

	return stored, nil
}

func (repository *MemoryRepository) Reserve(ctx context.Context, id int64) (*Pet, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.pets[id]
	if !ok {
		return nil, ErrNotFound
	}
	if stored.Status != StatusAvailable {
		return nil, ErrNotAvailable
	}

	stored.Status = StatusPending
	return stored.Clone(), nil
}

func (repository *MemoryRepository) Inventory(ctx context.Context) (Inventory, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	inventory := NewInventory()
	for _, stored := range repository.pets {
		inventory[stored.Status]++
	}
	return inventory, nil
}
