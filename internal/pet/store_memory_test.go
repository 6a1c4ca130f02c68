// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pet_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/petstore/internal/pet"
)

func addPet(t *testing.T, repository pet.Repository, name, category string) *pet.Pet {
	t.Helper()
	ctx := context.Background()

	resolved, err := repository.ResolveCategory(ctx, category)
	require.NoError(t, err)

	created := &pet.Pet{Name: name, Category: resolved, Status: pet.StatusAvailable}
	require.NoError(t, repository.Create(ctx, created))
	return created
}

/*
TestMemoryRepository_Lifecycle verifies create, read, update and delete.
*/
func TestMemoryRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repository := pet.NewMemoryRepository()

	// 1. Create assigns sequential IDs
	rex := addPet(t, repository, "Rex", "Dogs")
	tom := addPet(t, repository, "Tom", "Cats")
	assert.Equal(t, int64(1), rex.ID)
	assert.Equal(t, int64(2), tom.ID)

	// 2. Returned values do not alias the store
	loaded, err := repository.Get(ctx, rex.ID)
	require.NoError(t, err)
	loaded.PhotoURLs = append(loaded.PhotoURLs, "http://x/1.png")

	again, err := repository.Get(ctx, rex.ID)
	require.NoError(t, err)
	assert.Empty(t, again.PhotoURLs)

	// 3. Update persists
	require.NoError(t, repository.Update(ctx, loaded))
	again, err = repository.Get(ctx, rex.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://x/1.png"}, again.PhotoURLs)

	// 4. Delete removes
	deleted, err := repository.Delete(ctx, rex.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rex", deleted.Name)

	_, err = repository.Get(ctx, rex.ID)
	assert.ErrorIs(t, err, pet.ErrNotFound)
	_, err = repository.Delete(ctx, rex.ID)
	assert.ErrorIs(t, err, pet.ErrNotFound)
	assert.ErrorIs(t, repository.Update(ctx, &pet.Pet{ID: 99}), pet.ErrNotFound)
}

/*
TestMemoryRepository_Categories verifies slug based category resolution.
*/
func TestMemoryRepository_Categories(t *testing.T) {
	ctx := context.Background()
	repository := pet.NewMemoryRepository()

	first, err := repository.ResolveCategory(ctx, "Dogs")
	require.NoError(t, err)
	second, err := repository.ResolveCategory(ctx, " dógs ")
	require.NoError(t, err)
	other, err := repository.ResolveCategory(ctx, "Cats")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "dogs", first.Slug)
	assert.NotEqual(t, first.ID, other.ID)

	_, err = repository.ResolveCategory(ctx, "!!!")
	assert.Error(t, err)
}

/*
TestMemoryRepository_Reserve verifies the available to pending transition and the inventory.
*/
func TestMemoryRepository_Reserve(t *testing.T) {
	ctx := context.Background()
	repository := pet.NewMemoryRepository()

	rex := addPet(t, repository, "Rex", "Dogs")
	addPet(t, repository, "Tom", "Cats")

	reserved, err := repository.Reserve(ctx, rex.ID)
	require.NoError(t, err)
	assert.Equal(t, pet.StatusPending, reserved.Status)

	_, err = repository.Reserve(ctx, rex.ID)
	assert.ErrorIs(t, err, pet.ErrNotAvailable)
	_, err = repository.Reserve(ctx, 42)
	assert.ErrorIs(t, err, pet.ErrNotFound)

	inventory, err := repository.Inventory(ctx)
	require.NoError(t, err)
	assert.Equal(t, pet.Inventory{pet.StatusAvailable: 1, pet.StatusPending: 1, pet.StatusSold: 0}, inventory)
}
