// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pet contains the pet inventory: the model, its repository contract
// and the memory, PostgreSQL and Redis-cached implementations.
package pet

import (
	"errors"
	"slices"
)

// # Errors

var (
	// ErrNotFound is returned when no pet has the requested ID.
	ErrNotFound = errors.New("pet: not found")

	// ErrNotAvailable is returned when reserving a pet that is not available.
	ErrNotAvailable = errors.New("pet: not available")
)

// # Status

// Status is the lifecycle state of a pet in the store.
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusSold      Status = "sold"
)

// Statuses lists every status in inventory order.
var Statuses = []Status{StatusAvailable, StatusPending, StatusSold}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

// # Model

// Category groups pets. Categories are identified by the slug of their name.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"-"`
}

// Pet is an animal listed in the store.
type Pet struct {
	ID        int64    `json:"id"`
	Category  Category `json:"category"`
	Name      string   `json:"name"`
	PhotoURLs []string `json:"photoUrls"`
	Tags      []string `json:"tags"`
	Status    Status   `json:"status"`
}

// NewPet is the input of the ADD_PET operation.
type NewPet struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Tags     []string `json:"tags,omitempty"`
}

// Clone returns a deep copy so stored values never alias caller slices.
func (p *Pet) Clone() *Pet {
	clone := *p
	clone.PhotoURLs = append(make([]string, 0, len(p.PhotoURLs)), p.PhotoURLs...)
	clone.Tags = append(make([]string, 0, len(p.Tags)), p.Tags...)
	return &clone
}

// Inventory counts pets per status. Every status is present, possibly with 0.
type Inventory map[Status]int

// NewInventory returns an inventory with all counts at zero.
func NewInventory() Inventory {
	inventory := make(Inventory, len(Statuses))
	for _, status := range Statuses {
		inventory[status] = 0
	}
	return inventory
}
