// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package petstore

import (
	"context"

	"github.com/taibuivan/petstore/internal/operation"
	"github.com/taibuivan/petstore/internal/order"
	"github.com/taibuivan/petstore/internal/pet"
	"github.com/taibuivan/petstore/internal/platform/sec"
	"github.com/taibuivan/petstore/internal/user"
)

// Operation names, as used for the operationId of the OpenAPI contract.
const (
	OpCreateUser     = "CREATE_USER"
	OpCreateUserList = "CREATE_USER_LIST"
	OpGetUserByName  = "GET_USER_BY_NAME"
	OpUpdateUser     = "UPDATE_USER"
	OpDeleteUser     = "DELETE_USER"
	OpLoginUser      = "LOGIN_USER"
	OpLogoutUser     = "LOGOUT_USER"
	OpGetInventory   = "GET_INVENTORY"
	OpPlaceOrder     = "PLACE_ORDER"
	OpGetOrder       = "GET_ORDER"
	OpDeleteOrder    = "DELETE_ORDER"
	OpAddPet         = "ADD_PET"
	OpUpdatePet      = "UPDATE_PET"
	OpUploadImage    = "UPLOAD_IMAGE"
	OpGetPet         = "GET_PET"
	OpDeletePet      = "DELETE_PET"
)

// Bind derives the facade of one request from the long-lived one.
func Bind(base API, securityContext *sec.SecurityContext) API {
	return base.WithSecurityContext(securityContext)
}

// NewRegistry builds the operation registry of the Pet Store API.
func NewRegistry() (*operation.Registry[API], error) {
	return operation.NewRegistry(Operations())
}

// Operations is the static operation table.
func Operations() []operation.Descriptor[API] {
	return []operation.Descriptor[API]{
		// Users
		{Name: OpCreateUser, Scheme: operation.SchemeNone, Handle: createUser},
		{Name: OpCreateUserList, Scheme: operation.SchemeNone, Handle: createUserList},
		{Name: OpGetUserByName, Scheme: operation.SchemeNone, Handle: getUserByName},
		{Name: OpUpdateUser, Scheme: operation.SchemeLoginSession, Handle: updateUser},
		{Name: OpDeleteUser, Scheme: operation.SchemeLoginSession, Handle: deleteUser},
		{Name: OpLoginUser, Scheme: operation.SchemeNone, Handle: loginUser},
		{Name: OpLogoutUser, Scheme: operation.SchemeLoginSession, Handle: logoutUser},

		// Store
		{Name: OpGetInventory, Scheme: operation.SchemeNone, Handle: getInventory},
		{Name: OpPlaceOrder, Scheme: operation.SchemeLoginSession, Handle: placeOrder},
		{Name: OpGetOrder, Scheme: operation.SchemeLoginSession, Handle: getOrder},
		{Name: OpDeleteOrder, Scheme: operation.SchemeLoginSession, Handle: deleteOrder},

		// Pets
		{Name: OpAddPet, Scheme: operation.SchemeLoginSession, Handle: addPet},
		{Name: OpUpdatePet, Scheme: operation.SchemeLoginSession, Handle: updatePet},
		{Name: OpUploadImage, Scheme: operation.SchemeLoginSession, Handle: uploadImage},
		{Name: OpGetPet, Scheme: operation.SchemeNone, Handle: getPet},
		{Name: OpDeletePet, Scheme: operation.SchemeLoginSession, Handle: deletePet},
	}
}

// # Users

func createUser(ctx context.Context, api API, request *operation.Request) (any, error) {
	var input user.User
	if err := request.Decode(&input); err != nil {
		return nil, err
	}
	return api.CreateUser(ctx, input)
}

func createUserList(ctx context.Context, api API, request *operation.Request) (any, error) {
	var input []user.User
	if err := request.Decode(&input); err != nil {
		return nil, err
	}
	return api.CreateUsers(ctx, input)
}

func getUserByName(ctx context.Context, api API, request *operation.Request) (any, error) {
	return api.GetUser(ctx, request.Path("username"))
}

func updateUser(ctx context.Context, api API, request *operation.Request) (any, error) {
	var input user.User
	if err := request.Decode(&input); err != nil {
		return nil, err
	}
	return api.UpdateUser(ctx, request.Path("username"), input)
}

func deleteUser(ctx context.Context, api API, request *operation.Request) (any, error) {
	return api.DeleteUser(ctx, request.Path("username"))
}

func loginUser(ctx context.Context, api API, request *operation.Request) (any, error) {
	return api.Login(ctx, request.Query("username"), request.Query("password"))
}

func logoutUser(ctx context.Context, api API, request *operation.Request) (any, error) {
	return api.Logout(ctx)
}

// # Store

func getInventory(ctx context.Context, api API, request *operation.Request) (any, error) {
	return api.Inventory(ctx)
}

func placeOrder(ctx context.Context, api API, request *operation.Request) (any, error) {
	var input order.NewOrder
	if err := request.Decode(&input); err != nil {
		return nil, err
	}
	return api.PlaceOrder(ctx, input)
}

func getOrder(ctx context.Context, api API, request *operation.Request) (any, error) {
	id, err := request.PathInt64("orderId")
	if err != nil {
		return nil, err
	}
	return api.GetOrder(ctx, id)
}

func deleteOrder(ctx context.Context, api API, request *operation.Request) (any, error) {
	id, err := request.PathInt64("orderId")
	if err != nil {
		return nil, err
	}
	return api.DeleteOrder(ctx, id)
}

// # Pets

func addPet(ctx context.Context, api API, request *operation.Request) (any, error) {
	var input pet.NewPet
	if err := request.Decode(&input); err != nil {
		return nil, err
	}
	return api.AddPet(ctx, input)
}

func updatePet(ctx context.Context, api API, request *operation.Request) (any, error) {
	id, err := request.PathInt64("petId")
	if err != nil {
		return nil, err
	}

	var input pet.Pet
	if err := request.Decode(&input); err != nil {
		return nil, err
	}
	return api.UpdatePet(ctx, id, input)
}

func uploadImage(ctx context.Context, api API, request *operation.Request) (any, error) {
	id, err := request.PathInt64("petId")
	if err != nil {
		return nil, err
	}

	upload, err := request.File("file")
	if err != nil {
		return nil, err
	}

	return api.UploadImage(ctx, id, Image{
		Filename:    upload.Filename,
		ContentType: upload.ContentType,
		Data:        upload.Data,
		Metadata:    request.FormValue("additionalMetadata"),
	})
}

func getPet(ctx context.Context, api API, request *operation.Request) (any, error) {
	id, err := request.PathInt64("petId")
	if err != nil {
		return nil, err
	}
	return api.GetPet(ctx, id)
}

func deletePet(ctx context.Context, api API, request *operation.Request) (any, error) {
	id, err := request.PathInt64("petId")
	if err != nil {
		return nil, err
	}
	return api.DeletePet(ctx, id)
}
