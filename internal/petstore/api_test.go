// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package petstore_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/petstore/internal/operation"
	"github.com/taibuivan/petstore/internal/order"
	"github.com/taibuivan/petstore/internal/pet"
	"github.com/taibuivan/petstore/internal/petstore"
	"github.com/taibuivan/petstore/internal/platform/apperr"
	"github.com/taibuivan/petstore/internal/platform/sec"
	"github.com/taibuivan/petstore/internal/user"
)

const testSecret = "0123456789abcdef0123456789abcdef"

var shipTime = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

type fixture struct {
	api    petstore.API
	tokens *sec.TokenService
	pets   *pet.MemoryRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tokens, err := sec.NewTokenService(testSecret, "petstore.test", time.Minute)
	require.NoError(t, err)

	pets := pet.NewMemoryRepository()
	api := petstore.New().
		WithPets(pets).
		WithOrders(order.NewMemoryRepository()).
		WithUsers(user.NewMemoryRepository()).
		WithTokens(tokens).
		WithStaticBaseURL("https://static.example.com/pets/").
		WithClock(func() time.Time { return shipTime })

	return &fixture{api: api, tokens: tokens, pets: pets}
}

func requireKind(t *testing.T, err error, kind apperr.Kind, message string) {
	t.Helper()

	appErr := apperr.As(err)
	require.NotNil(t, appErr, "expected an application error, got %v", err)
	assert.Equal(t, kind, appErr.Kind)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}

/*
TestAPI_WithSecurityContext verifies that binding a request identity never touches the base facade.
*/
func TestAPI_WithSecurityContext(t *testing.T) {
	f := newFixture(t)

	bound := petstore.Bind(f.api, sec.NewSecurityContext("alice"))

	assert.Equal(t, "alice", bound.SecurityContext().Subject())
	assert.Nil(t, f.api.SecurityContext())
}

/*
TestAPI_Users verifies registration, lookup, update and deletion of customers.
*/
func TestAPI_Users(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	alice := user.User{Username: "alice", FirstName: "Alice", Email: "alice@example.com", Password: "secret"}

	// 1. Create
	message, err := f.api.CreateUser(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "User alice created successfully", message.Message)

	// 2. Duplicate username
	_, err = f.api.CreateUser(ctx, alice)
	requireKind(t, err, apperr.KindBadRequest, "Username alice already exists")

	// 3. Lookup never exposes credentials
	found, err := f.api.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.FirstName)
	assert.Empty(t, found.Password)
	assert.Empty(t, found.PasswordHash)

	// 4. Update keeps the password when none is supplied
	updated, err := f.api.UpdateUser(ctx, "alice", user.User{FirstName: "Ally", Email: "ally@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ally", updated.FirstName)
	assert.Equal(t, "alice", updated.Username)

	_, err = f.api.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	// 5. The username is immutable
	_, err = f.api.UpdateUser(ctx, "alice", user.User{Username: "bob"})
	requireKind(t, err, apperr.KindBadRequest, "Username cannot be changed")

	// 6. Delete, then every lookup fails
	message, err = f.api.DeleteUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "User alice deleted successfully", message.Message)

	_, err = f.api.GetUser(ctx, "alice")
	requireKind(t, err, apperr.KindNotFound, "User alice does not exist")

	_, err = f.api.DeleteUser(ctx, "alice")
	requireKind(t, err, apperr.KindNotFound, "User alice does not exist")
}

/*
TestAPI_CreateUsers verifies batch registration.
*/
func TestAPI_CreateUsers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	batch := []user.User{
		{Username: "alice", Password: "a"},
		{Username: "bob", Password: "b"},
	}

	message, err := f.api.CreateUsers(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, "Created 2 users successfully", message.Message)

	_, err = f.api.CreateUsers(ctx, []user.User{
		{Username: "carol", Password: "c"},
		{Username: "carol", Password: "d"},
	})
	requireKind(t, err, apperr.KindBadRequest, "Input contains duplicate users")

	// Nothing from the rejected batch was stored
	_, err = f.api.GetUser(ctx, "carol")
	requireKind(t, err, apperr.KindNotFound, "")
}

/*
TestAPI_CreateUser_Validation verifies the input rules of registration.
*/
func TestAPI_CreateUser_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		input user.User
	}{
		{"MissingUsername", user.User{Password: "secret"}},
		{"MissingPassword", user.User{Username: "alice"}},
		{"SlashInUsername", user.User{Username: "al/ice", Password: "secret"}},
		{"BadEmail", user.User{Username: "alice", Password: "secret", Email: "not-an-email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.api.CreateUser(context.Background(), tt.input)
			requireKind(t, err, apperr.KindBadRequest, "")
			assert.True(t, strings.HasPrefix(apperr.As(err).Message, "Validation failed: "))
		})
	}
}

/*
TestAPI_Login verifies credential checks and the issued session.
*/
func TestAPI_Login(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.api.CreateUser(ctx, user.User{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	// 1. Success yields a token for the username
	session, err := f.api.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ExpiresAt)

	subject, err := f.tokens.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)

	// 2. Wrong password
	_, err = f.api.Login(ctx, "alice", "wrong")
	requireKind(t, err, apperr.KindForbidden, "Invalid password")

	// 3. Unknown user
	_, err = f.api.Login(ctx, "nobody", "secret")
	requireKind(t, err, apperr.KindNotFound, "User nobody does not exist")

	// 4. Logout is declared only
	_, err = f.api.Logout(ctx)
	requireKind(t, err, apperr.KindNotImplemented, "")
}

/*
TestAPI_Pets verifies listing, update, image upload and removal of pets.
*/
func TestAPI_Pets(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// 1. New pets are available and get a resolved category
	rex, err := f.api.AddPet(ctx, pet.NewPet{Name: "Rex", Category: "Dogs", Tags: []string{"friendly"}})
	require.NoError(t, err)
	assert.Equal(t, pet.StatusAvailable, rex.Status)
	assert.Equal(t, "Dogs", rex.Category.Name)

	again, err := f.api.AddPet(ctx, pet.NewPet{Name: "Max", Category: "dogs"})
	require.NoError(t, err)
	assert.Equal(t, rex.Category.ID, again.Category.ID)

	// 2. Update merges the supplied fields
	updated, err := f.api.UpdatePet(ctx, rex.ID, pet.Pet{ID: 999, Name: "Rexy", Status: pet.StatusSold})
	require.NoError(t, err)
	assert.Equal(t, rex.ID, updated.ID)
	assert.Equal(t, "Rexy", updated.Name)
	assert.Equal(t, pet.StatusSold, updated.Status)
	assert.Equal(t, []string{"friendly"}, updated.Tags)

	_, err = f.api.UpdatePet(ctx, rex.ID, pet.Pet{Status: "lost"})
	requireKind(t, err, apperr.KindBadRequest, "Invalid status lost")

	// 3. Upload appends a published URL
	message, err := f.api.UploadImage(ctx, rex.ID, petstore.Image{Filename: "rex.PNG", Data: []byte("png")})
	require.NoError(t, err)
	assert.Equal(t, "Pet image was uploaded successfully", message.Message)

	found, err := f.api.GetPet(ctx, rex.ID)
	require.NoError(t, err)
	require.Len(t, found.PhotoURLs, 1)
	assert.True(t, strings.HasPrefix(found.PhotoURLs[0], "https://static.example.com/pets/"))
	assert.True(t, strings.HasSuffix(found.PhotoURLs[0], ".png"))

	// 4. Delete returns the removed pet
	deleted, err := f.api.DeletePet(ctx, rex.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rexy", deleted.Name)

	_, err = f.api.GetPet(ctx, rex.ID)
	requireKind(t, err, apperr.KindNotFound, "Pet 1 does not exist")

	_, err = f.api.UploadImage(ctx, rex.ID, petstore.Image{Filename: "rex.png"})
	requireKind(t, err, apperr.KindNotFound, "Pet 1 does not exist")
}

/*
TestAPI_AddPet_Validation verifies that name and category are required.
*/
func TestAPI_AddPet_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		input pet.NewPet
	}{
		{"MissingName", pet.NewPet{Category: "Dogs"}},
		{"MissingCategory", pet.NewPet{Name: "Rex"}},
		{"UnsluggableCategory", pet.NewPet{Name: "Rex", Category: "!!!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.api.AddPet(context.Background(), tt.input)
			requireKind(t, err, apperr.KindBadRequest, "")
		})
	}
}

/*
TestAPI_Orders verifies that placing an order reserves the pet.
*/
func TestAPI_Orders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	api := petstore.Bind(f.api, sec.NewSecurityContext("alice"))

	rex, err := api.AddPet(ctx, pet.NewPet{Name: "Rex", Category: "Dogs"})
	require.NoError(t, err)

	// 1. Place
	placed, err := api.PlaceOrder(ctx, order.NewOrder{PetID: rex.ID, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, order.StatusPlaced, placed.Status)
	assert.Equal(t, shipTime, placed.ShipDate)
	assert.Equal(t, "alice", placed.PlacedBy)

	reserved, err := api.GetPet(ctx, rex.ID)
	require.NoError(t, err)
	assert.Equal(t, pet.StatusPending, reserved.Status)

	inventory, err := api.Inventory(ctx)
	require.NoError(t, err)
	assert.Equal(t, pet.Inventory{pet.StatusAvailable: 0, pet.StatusPending: 1, pet.StatusSold: 0}, inventory)

	// 2. The pet cannot be ordered twice
	_, err = api.PlaceOrder(ctx, order.NewOrder{PetID: rex.ID, Quantity: 1})
	requireKind(t, err, apperr.KindBadRequest, "Pet 1 is not available")

	// 3. Unknown pet and bad quantity
	_, err = api.PlaceOrder(ctx, order.NewOrder{PetID: 42, Quantity: 1})
	requireKind(t, err, apperr.KindBadRequest, "Invalid pet id")

	_, err = api.PlaceOrder(ctx, order.NewOrder{PetID: rex.ID, Quantity: 0})
	requireKind(t, err, apperr.KindBadRequest, "")

	// 4. Read and delete
	found, err := api.GetOrder(ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, found.ID)

	_, err = api.DeleteOrder(ctx, placed.ID)
	require.NoError(t, err)

	_, err = api.GetOrder(ctx, placed.ID)
	requireKind(t, err, apperr.KindNotFound, "Order 1 does not exist")

	_, err = api.DeleteOrder(ctx, placed.ID)
	requireKind(t, err, apperr.KindNotFound, "Order 1 does not exist")
}

/*
TestOperations_Table verifies the registry of the Pet Store API.
*/
func TestOperations_Table(t *testing.T) {
	registry, err := petstore.NewRegistry()
	require.NoError(t, err)

	assert.Len(t, registry.Names(), 16)

	tests := []struct {
		name   string
		scheme operation.Scheme
	}{
		{petstore.OpCreateUser, operation.SchemeNone},
		{petstore.OpCreateUserList, operation.SchemeNone},
		{petstore.OpGetUserByName, operation.SchemeNone},
		{petstore.OpUpdateUser, operation.SchemeLoginSession},
		{petstore.OpDeleteUser, operation.SchemeLoginSession},
		{petstore.OpLoginUser, operation.SchemeNone},
		{petstore.OpLogoutUser, operation.SchemeLoginSession},
		{petstore.OpGetInventory, operation.SchemeNone},
		{petstore.OpPlaceOrder, operation.SchemeLoginSession},
		{petstore.OpGetOrder, operation.SchemeLoginSession},
		{petstore.OpDeleteOrder, operation.SchemeLoginSession},
		{petstore.OpAddPet, operation.SchemeLoginSession},
		{petstore.OpUpdatePet, operation.SchemeLoginSession},
		{petstore.OpUploadImage, operation.SchemeLoginSession},
		{petstore.OpGetPet, operation.SchemeNone},
		{petstore.OpDeletePet, operation.SchemeLoginSession},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			descriptor, err := registry.Lookup(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.scheme, descriptor.Scheme)
		})
	}
}
