// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"github.com/getkin/kin-openapi/openapi3filter"

	"github.com/taibuivan/petstore/internal/operation"
	"github.com/taibuivan/petstore/internal/platform/apperr"
	"github.com/taibuivan/petstore/internal/platform/failure"
	"github.com/taibuivan/petstore/internal/platform/middleware"
)

// NewFailureRegistry returns the failure registry of the server: the
// built-in mappings plus the failure kinds raised by the transport layers.
func NewFailureRegistry() *failure.Registry {
	registry := failure.NewRegistry()

	failure.On(registry, func(err *middleware.AuthenticationError) *apperr.AppError {
		return apperr.AuthenticationRejected(err)
	})

	failure.On(registry, func(err *openapi3filter.RequestError) *apperr.AppError {
		return apperr.ContractViolation(err.Error(), err)
	})

	failure.On(registry, func(err *openapi3filter.SecurityRequirementsError) *apperr.AppError {
		return apperr.AuthenticationRejected(err)
	})

	failure.On(registry, func(err *operation.UnsupportedOperationError) *apperr.AppError {
		return apperr.Unexpected(err.Error(), err)
	})

	failure.On(registry, func(err *operation.PanicError) *apperr.AppError {
		return apperr.Unexpected("Internal server error", err)
	})

	return registry
}
