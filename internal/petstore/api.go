// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package petstore is the business facade of the Pet Store API.

[API] is an immutable value. The long-lived instance is assembled once at
startup with the With* methods, and the front controller derives one copy per
request through [API.WithSecurityContext]. No request ever writes to a field
that another request can read.

Every method returns either a result or an [apperr.AppError] describing a
client-visible failure. Store faults are wrapped as Unexpected.
*/
package petstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/taibuivan/petstore/internal/order"
	"github.com/taibuivan/petstore/internal/pet"
	"github.com/taibuivan/petstore/internal/platform/apperr"
	"github.com/taibuivan/petstore/internal/platform/ctxutil"
	"github.com/taibuivan/petstore/internal/platform/sec"
	"github.com/taibuivan/petstore/internal/platform/validate"
	"github.com/taibuivan/petstore/internal/user"
	"github.com/taibuivan/petstore/pkg/slug"
	"github.com/taibuivan/petstore/pkg/uuid"
)

// TokenIssuer issues session tokens at login.
type TokenIssuer interface {
	Issue(subject string) (sec.Token, error)
}

// Message is the body of operations that only report what they did.
type Message struct {
	Message string `json:"message"`
}

// Image is an uploaded pet photo.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
	Metadata    string
}

// API is the per-request business facade.
type API struct {
	pets          pet.Repository
	orders        order.Repository
	users         user.Repository
	tokens        TokenIssuer
	security      *sec.SecurityContext
	staticBaseURL string
	now           func() time.Time
}

// # Construction

// New returns an empty facade. Collaborators are attached with the With* methods.
func New() API {
	return API{now: time.Now}
}

// WithPets returns a copy using the given pet repository.
func (api API) WithPets(pets pet.Repository) API {
	api.pets = pets
	return api
}

// WithOrders returns a copy using the given order repository.
func (api API) WithOrders(orders order.Repository) API {
	api.orders = orders
	return api
}

// WithUsers returns a copy using the given user repository.
func (api API) WithUsers(users user.Repository) API {
	api.users = users
	return api
}

// WithTokens returns a copy issuing session tokens with tokens.
func (api API) WithTokens(tokens TokenIssuer) API {
	api.tokens = tokens
	return api
}

// WithStaticBaseURL returns a copy publishing uploaded images under baseURL.
func (api API) WithStaticBaseURL(baseURL string) API {
	api.staticBaseURL = strings.TrimRight(baseURL, "/")
	return api
}

// WithClock returns a copy using now as its time source.
func (api API) WithClock(now func() time.Time) API {
	api.now = now
	return api
}

// WithSecurityContext returns a copy bound to the identity of one request.
func (api API) WithSecurityContext(securityContext *sec.SecurityContext) API {
	api.security = securityContext
	return api
}

// SecurityContext returns the identity the facade is bound to, nil when anonymous.
func (api API) SecurityContext() *sec.SecurityContext {
	return api.security
}

// # Users

// CreateUser registers a new customer.
func (api API) CreateUser(ctx context.Context, data user.User) (Message, error) {
	if err := validateUser(data); err != nil {
		return Message{}, err
	}

	hash, err := sec.HashPassword(data.Password)
	if err != nil {
		return Message{}, internal(err)
	}

	data.Password, data.PasswordHash = "", hash
	if err := api.users.Create(ctx, &data); err != nil {
		if errors.Is(err, user.ErrDuplicate) {
			return Message{}, apperr.BadRequest("Username " + data.Username + " already exists")
		}
		return Message{}, internal(err)
	}

	return Message{Message: "User " + data.Username + " created successfully"}, nil
}

// CreateUsers registers a batch of customers. Usernames must be unique within the batch.
func (api API) CreateUsers(ctx context.Context, batch []user.User) (Message, error) {
	seen := make(map[string]struct{}, len(batch))
	for _, data := range batch {
		if _, duplicate := seen[data.Username]; duplicate {
			return Message{}, apperr.BadRequest("Input contains duplicate users")
		}
		seen[data.Username] = struct{}{}
	}

	for _, data := range batch {
		if _, err := api.CreateUser(ctx, data); err != nil {
			return Message{}, err
		}
	}

	return Message{Message: fmt.Sprintf("Created %d users successfully", len(batch))}, nil
}

// GetUser returns a customer without credentials.
func (api API) GetUser(ctx context.Context, username string) (user.User, error) {
	existing, err := api.findUser(ctx, username)
	if err != nil {
		return user.User{}, err
	}
	return existing.Redacted(), nil
}

// UpdateUser replaces the profile of a customer. The username cannot change.
func (api API) UpdateUser(ctx context.Context, username string, data user.User) (user.User, error) {
	existing, err := api.findUser(ctx, username)
	if err != nil {
		return user.User{}, err
	}

	if data.Username != "" && data.Username != username {
		return user.User{}, apperr.BadRequest("Username cannot be changed")
	}
	data.Username = username

	if err := (&validate.Validator{}).Email("email", data.Email).Err(); err != nil {
		return user.User{}, err
	}

	// Keep the stored credential unless a new password is supplied
	data.PasswordHash = existing.PasswordHash
	if data.Password != "" {
		if data.PasswordHash, err = sec.HashPassword(data.Password); err != nil {
			return user.User{}, internal(err)
		}
	}

	if err := api.users.Update(ctx, &data); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, userNotFound(username)
		}
		return user.User{}, internal(err)
	}

	return data.Redacted(), nil
}

// DeleteUser removes a customer.
func (api API) DeleteUser(ctx context.Context, username string) (Message, error) {
	if err := api.users.Delete(ctx, username); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Message{}, userNotFound(username)
		}
		return Message{}, internal(err)
	}
	return Message{Message: "User " + username + " deleted successfully"}, nil
}

// Login verifies the credentials and issues a session token.
func (api API) Login(ctx context.Context, username, password string) (user.Session, error) {
	existing, err := api.findUser(ctx, username)
	if err != nil {
		return user.Session{}, err
	}

	matches, err := sec.CheckPassword(password, existing.PasswordHash)
	if err != nil {
		return user.Session{}, internal(err)
	}
	if !matches {
		return user.Session{}, apperr.Forbidden("Invalid password")
	}

	token, err := api.tokens.Issue(existing.Username)
	if err != nil {
		return user.Session{}, internal(err)
	}

	return user.Session{
		Token:     token.Serialized,
		ExpiresAt: token.ExpiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// Logout is declared by the contract but sessions are stateless, so there is nothing to end.
func (api API) Logout(ctx context.Context) (Message, error) {
	return Message{}, apperr.NotImplemented()
}

func (api API) findUser(ctx context.Context, username string) (*user.User, error) {
	existing, err := api.users.Get(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, userNotFound(username)
		}
		return nil, internal(err)
	}
	return existing, nil
}

func validateUser(data user.User) error {
	return (&validate.Validator{}).
		Required("username", data.Username).
		Custom("username", strings.ContainsAny(data.Username, "/ "), "Must not contain spaces or '/'").
		MaxLen("username", data.Username, 64).
		Required("password", data.Password).
		Email("email", data.Email).
		Err()
}

// # Store

// Inventory counts pets per status.
func (api API) Inventory(ctx context.Context) (pet.Inventory, error) {
	inventory, err := api.pets.Inventory(ctx)
	if err != nil {
		return nil, internal(err)
	}
	return inventory, nil
}

// PlaceOrder reserves an available pet and records the order.
//
// The reservation is not rolled back if recording the order fails: the pet
// stays pending.
func (api API) PlaceOrder(ctx context.Context, input order.NewOrder) (order.Order, error) {
	if err := (&validate.Validator{}).Min("quantity", int64(input.Quantity), 1).Err(); err != nil {
		return order.Order{}, err
	}

	// 1. The pet must exist and be available
	candidate, err := api.pets.Get(ctx, input.PetID)
	if err != nil {
		if errors.Is(err, pet.ErrNotFound) {
			return order.Order{}, apperr.BadRequest("Invalid pet id")
		}
		return order.Order{}, internal(err)
	}
	if candidate.Status != pet.StatusAvailable {
		return order.Order{}, petNotAvailable(input.PetID)
	}

	// 2. Reserve it; a concurrent order may have won the race
	if _, err := api.pets.Reserve(ctx, input.PetID); err != nil {
		switch {
		case errors.Is(err, pet.ErrNotAvailable):
			return order.Order{}, petNotAvailable(input.PetID)
		case errors.Is(err, pet.ErrNotFound):
			return order.Order{}, apperr.BadRequest("Invalid pet id")
		default:
			return order.Order{}, internal(err)
		}
	}

	// 3. Record the order
	placed := order.Order{
		PetID:    input.PetID,
		Quantity: input.Quantity,
		ShipDate: api.now().UTC(),
		Status:   order.StatusPlaced,
		PlacedBy: api.security.Subject(),
	}
	if err := api.orders.Place(ctx, &placed); err != nil {
		return order.Order{}, internal(err)
	}

	return placed, nil
}

// GetOrder returns an order.
func (api API) GetOrder(ctx context.Context, id int64) (order.Order, error) {
	found, err := api.orders.Get(ctx, id)
	if err != nil {
		return order.Order{}, orderError(id, err)
	}
	return *found, nil
}

// DeleteOrder removes an order and returns it.
func (api API) DeleteOrder(ctx context.Context, id int64) (order.Order, error) {
	deleted, err := api.orders.Delete(ctx, id)
	if err != nil {
		return order.Order{}, orderError(id, err)
	}
	return *deleted, nil
}

// # Pets

// AddPet lists a new, available pet.
func (api API) AddPet(ctx context.Context, input pet.NewPet) (pet.Pet, error) {
	err := (&validate.Validator{}).
		Required("name", input.Name).
		Required("category", input.Category).
		Err()
	if err != nil {
		return pet.Pet{}, err
	}

	category, err := api.resolveCategory(ctx, input.Category)
	if err != nil {
		return pet.Pet{}, err
	}

	created := pet.Pet{
		Category:  category,
		Name:      input.Name,
		PhotoURLs: []string{},
		Tags:      append([]string{}, input.Tags...),
		Status:    pet.StatusAvailable,
	}
	if err := api.pets.Create(ctx, &created); err != nil {
		return pet.Pet{}, internal(err)
	}

	return created, nil
}

// UpdatePet replaces the mutable fields of a pet. The path ID always wins over the body.
func (api API) UpdatePet(ctx context.Context, id int64, data pet.Pet) (pet.Pet, error) {
	existing, err := api.findPet(ctx, id)
	if err != nil {
		return pet.Pet{}, err
	}

	updated := *existing
	if data.Name != "" {
		updated.Name = data.Name
	}
	if data.Status != "" {
		if !data.Status.Valid() {
			return pet.Pet{}, apperr.BadRequest("Invalid status " + string(data.Status))
		}
		updated.Status = data.Status
	}
	if data.Tags != nil {
		updated.Tags = data.Tags
	}
	if data.PhotoURLs != nil {
		updated.PhotoURLs = data.PhotoURLs
	}
	if data.Category.Name != "" {
		if updated.Category, err = api.resolveCategory(ctx, data.Category.Name); err != nil {
			return pet.Pet{}, err
		}
	}

	if err := api.pets.Update(ctx, &updated); err != nil {
		return pet.Pet{}, petError(id, err)
	}

	return updated, nil
}

// UploadImage publishes a photo of a pet and appends its URL to the pet.
func (api API) UploadImage(ctx context.Context, id int64, image Image) (Message, error) {
	existing, err := api.findPet(ctx, id)
	if err != nil {
		return Message{}, err
	}

	name := uuid.New() + strings.ToLower(path.Ext(image.Filename))
	url := api.staticBaseURL + "/" + name

	ctxutil.GetLogger(ctx).DebugContext(ctx, "pet_image_received",
		slog.Int64("pet_id", id),
		slog.String("filename", image.Filename),
		slog.String("content_type", image.ContentType),
		slog.Int("size", len(image.Data)),
		slog.String("metadata", image.Metadata),
		slog.String("url", url),
	)

	existing.PhotoURLs = append(existing.PhotoURLs, url)
	if err := api.pets.Update(ctx, existing); err != nil {
		return Message{}, petError(id, err)
	}

	return Message{Message: "Pet image was uploaded successfully"}, nil
}

// GetPet returns a pet.
func (api API) GetPet(ctx context.Context, id int64) (pet.Pet, error) {
	found, err := api.findPet(ctx, id)
	if err != nil {
		return pet.Pet{}, err
	}
	return *found, nil
}

// DeletePet removes a pet and returns it.
func (api API) DeletePet(ctx context.Context, id int64) (pet.Pet, error) {
	deleted, err := api.pets.Delete(ctx, id)
	if err != nil {
		return pet.Pet{}, petError(id, err)
	}
	return *deleted, nil
}

func (api API) resolveCategory(ctx context.Context, name string) (pet.Category, error) {
	if slug.From(name) == "" {
		return pet.Category{}, apperr.BadRequest("Invalid category " + name)
	}

	category, err := api.pets.ResolveCategory(ctx, name)
	if err != nil {
		return pet.Category{}, internal(err)
	}
	return category, nil
}

func (api API) findPet(ctx context.Context, id int64) (*pet.Pet, error) {
	found, err := api.pets.Get(ctx, id)
	if err != nil {
		return nil, petError(id, err)
	}
	return found, nil
}

// # Failure Helpers

func internal(err error) error {
	return apperr.Unexpected("Internal server error", err)
}

func userNotFound(username string) error {
	return apperr.NotFound("User " + username + " does not exist")
}

func petNotAvailable(id int64) error {
	return apperr.BadRequest(fmt.Sprintf("Pet %d is not available", id))
}

func petError(id int64, err error) error {
	if errors.Is(err, pet.ErrNotFound) {
		return apperr.NotFound(fmt.Sprintf("Pet %d does not exist", id))
	}
	return internal(err)
}

func orderError(id int64, err error) error {
	if errors.Is(err, order.ErrNotFound) {
		return apperr.NotFound(fmt.Sprintf("Order %d does not exist", id))
	}
	return internal(err)
}
