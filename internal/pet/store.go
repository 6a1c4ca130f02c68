// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pet

import "context"

// Repository defines the data access contract for pets.
//
// # Errors
//
// Lookups of unknown IDs return [ErrNotFound]. [Repository.Reserve] returns
// [ErrNotAvailable] when the pet exists but is not available.
type Repository interface {
	// ResolveCategory returns the category with the slug of name, creating it if needed.
	ResolveCategory(ctx context.Context, name string) (Category, error)

	// Create stores a new pet and assigns its ID.
	Create(ctx context.Context, pet *Pet) error

	// Get returns the pet with the given ID.
	Get(ctx context.Context, id int64) (*Pet, error)

	// Update replaces the stored pet with the same ID.
	Update(ctx context.Context, pet *Pet) error

	// Delete removes a pet and returns its last state.
	Delete(ctx context.Context, id int64) (*Pet, error)

	// Reserve atomically moves an available pet to pending.
	Reserve(ctx context.Context, id int64) (*Pet, error)

	// Inventory counts pets per status.
	Inventory(ctx context.Context) (Inventory, error)
}
