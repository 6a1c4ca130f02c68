// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/petstore/internal/platform/apperr"
)

/*
TestKind_StatusAndTitle verifies the fixed status code and title of every kind.
*/
func TestKind_StatusAndTitle(t *testing.T) {
	tests := []struct {
		err    *apperr.AppError
		status int
		title  string
		detail string
	}{
		{apperr.ContractViolation("body.name is required", nil), http.StatusBadRequest, "ContractViolation", "body.name is required"},
		{apperr.BadRequest("Invalid pet id"), http.StatusBadRequest, "BadRequest", "Invalid pet id"},
		{apperr.AuthenticationRejected(errors.New("expired")), http.StatusUnauthorized, "AuthenticationRejected", "Unauthorized"},
		{apperr.Forbidden("Invalid password"), http.StatusForbidden, "Forbidden", "Invalid password"},
		{apperr.NotFound("Pet 7 does not exist"), http.StatusNotFound, "NotFound", "Pet 7 does not exist"},
		{apperr.NotImplemented(), http.StatusNotImplemented, "NotImplemented", "The operation has not been implemented"},
		{apperr.Unexpected("Internal server error", errors.New("db down")), http.StatusInternalServerError, "Unexpected", "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			problem := tt.err.Problem("/petstore/v1/pet/7")

			assert.Equal(t, tt.status, problem.Status)
			assert.Equal(t, tt.title, problem.Title)
			assert.Equal(t, tt.detail, problem.Detail)
			assert.Equal(t, apperr.DefaultType, problem.Type)
			require.NotNil(t, problem.Instance)
			assert.Equal(t, "/petstore/v1/pet/7", *problem.Instance)
		})
	}
}

/*
TestAppError_CustomType verifies that a classification URI replaces the default type.
*/
func TestAppError_CustomType(t *testing.T) {
	err := apperr.BadRequest("bad")
	err.Type = "https://petstore.example/problems/bad-input"

	assert.Equal(t, "https://petstore.example/problems/bad-input", err.Problem("").Type)
}

/*
TestAppError_Unwrap verifies that the cause chain is reachable through errors.Is.
*/
func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("loading: %w", apperr.Unexpected("Internal server error", cause))

	assert.ErrorIs(t, err, cause)
	assert.True(t, apperr.IsKind(err, apperr.KindUnexpected))
	assert.False(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Nil(t, apperr.As(errors.New("plain")))
}
