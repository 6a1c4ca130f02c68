// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import "context"

// Repository defines the data access contract for users, keyed by username.
type Repository interface {
	// Create stores a new user and assigns its ID, or fails with [ErrDuplicate].
	Create(ctx context.Context, user *User) error

	// Get returns the user with the given username or [ErrNotFound].
	Get(ctx context.Context, username string) (*User, error)

	// Update replaces the profile of an existing user or fails with [ErrNotFound].
	Update(ctx context.Context, user *User) error

	// Delete removes the user or fails with [ErrNotFound].
	Delete(ctx context.Context, username string) error
}
