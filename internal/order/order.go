// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package order contains store orders and their repositories.
package order

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no order has the requested ID.
var ErrNotFound = errors.New("order: not found")

// StatusPlaced is the status of a newly placed order.
const StatusPlaced = "placed"

// Order is a purchase of a pet.
type Order struct {
	ID       int64     `json:"orderId"`
	PetID    int64     `json:"petId"`
	Quantity int       `json:"quantity"`
	ShipDate time.Time `json:"shipDate"`
	Status   string    `json:"status"`
	PlacedBy string    `json:"-"`
}

// NewOrder is the input of the PLACE_ORDER operation.
type NewOrder struct {
	PetID    int64 `json:"petId"`
	Quantity int   `json:"quantity"`
}
