// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order

import "context"

// Repository defines the data access contract for orders.
type Repository interface {
	// Place stores a new order and assigns its ID.
	Place(ctx context.Context, order *Order) error

	// Get returns the order with the given ID or [ErrNotFound].
	Get(ctx context.Context, id int64) (*Order, error)

	// Delete removes an order and returns its last state, or [ErrNotFound].
	Delete(ctx context.Context, id int64) (*Order, error)
}
