// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"
	"sync"
)

// MemoryRepository keeps users in process memory.
type MemoryRepository struct {
	mu     sync.RWMutex
	users  map[string]User
	nextID int64
}

// NewMemoryRepository creates an empty in-memory user store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]User)}
}

func (repository *MemoryRepository) Create(ctx context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, exists := repository.users[user.Username]; exists {
		return ErrDuplicate
	}

	repository.nextID++
	user.ID = repository.nextID
	repository.users[user.Username] = *user

	return nil
}

func (repository *MemoryRepository) Get(ctx context.Context, username string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	stored, ok := repository.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &stored, nil
}

func (repository *MemoryRepository) Update(ctx context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.users[user.Username]
	if !ok {
		return ErrNotFound
	}

	user.ID = stored.ID
	repository.users[user.Username] = *user

	return nil
}

func (repository *MemoryRepository) Delete(ctx context.Context, username string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.users[username]; !ok {
		return ErrNotFound
	}
	delete(repository.users, username)

	return nil
}
