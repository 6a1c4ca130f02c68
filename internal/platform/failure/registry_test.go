// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/petstore/internal/platform/apperr"
	"github.com/taibuivan/petstore/internal/platform/failure"
)

type customFault struct{ reason string }

func (f *customFault) Error() string { return f.reason }

// selfWrapped unwraps to itself forever.
type selfWrapped struct{}

func (f *selfWrapped) Error() string { return "self" }
func (f *selfWrapped) Unwrap() error { return f }

// joinedLoop joins itself with a plain error.
type joinedLoop struct{}

func (f *joinedLoop) Error() string   { return "loop" }
func (f *joinedLoop) Unwrap() []error { return []error{f, errors.New("plain")} }

type temporaryFault struct{}

func (temporaryFault) Error() string   { return "temporary" }
func (temporaryFault) Temporary() bool { return true }

/*
TestRegistry_ExactMatch verifies that a registered concrete type resolves without a walk.
*/
func TestRegistry_ExactMatch(t *testing.T) {
	registry := failure.NewRegistry()

	mapped := registry.Map(apperr.NotFound("Pet 7 does not exist"))

	assert.Equal(t, apperr.KindNotFound, mapped.Kind)
	assert.Equal(t, "Pet 7 does not exist", mapped.Message)
	assert.Zero(t, registry.Walks())
}

/*
TestRegistry_FallbackIsCached verifies that an unregistered kind is walked once and then served from cache.
*/
func TestRegistry_FallbackIsCached(t *testing.T) {
	registry := failure.NewRegistry()

	// 1. First occurrence walks the ancestors and falls back
	first := registry.Map(&customFault{reason: "boom"})
	assert.Equal(t, apperr.KindUnexpected, first.Kind)
	assert.Equal(t, "Unhandled exception", first.Message)
	assert.Equal(t, int64(1), registry.Walks())

	// 2. Second occurrence of the same kind yields the same result without walking
	second := registry.Map(&customFault{reason: "boom again"})
	assert.Equal(t, first.Kind, second.Kind)
	assert.Equal(t, first.Title(), second.Title())
	assert.Equal(t, first.Status(), second.Status())
	assert.Equal(t, int64(1), registry.Walks())
}

/*
TestRegistry_AncestorMatch verifies that interface registrations act as ancestor kinds.
*/
func TestRegistry_AncestorMatch(t *testing.T) {
	registry := failure.NewRegistry()
	failure.On(registry, func(err interface {
		error
		Temporary() bool
	}) *apperr.AppError {
		return apperr.BadRequest("try again")
	})

	mapped := registry.Map(temporaryFault{})
	assert.Equal(t, apperr.KindBadRequest, mapped.Kind)
	assert.Equal(t, int64(1), registry.Walks())

	registry.Map(temporaryFault{})
	assert.Equal(t, int64(1), registry.Walks())
}

/*
TestRegistry_WrappedErrors verifies that wrapping errors are translated through their cause.
*/
func TestRegistry_WrappedErrors(t *testing.T) {
	registry := failure.NewRegistry()

	tests := []struct {
		name   string
		err    error
		kind   apperr.Kind
		detail string
	}{
		{"Wrapped", fmt.Errorf("loading pet: %w", apperr.NotFound("Pet 1 does not exist")), apperr.KindNotFound, "Pet 1 does not exist"},
		{"DoubleWrapped", fmt.Errorf("a: %w", fmt.Errorf("b: %w", apperr.BadRequest("bad"))), apperr.KindBadRequest, "bad"},
		{"Joined", errors.Join(errors.New("plain"), apperr.Forbidden("nope")), apperr.KindForbidden, "nope"},
		{"WrappedUnknown", fmt.Errorf("x: %w", &customFault{reason: "y"}), apperr.KindUnexpected, "Unhandled exception"},
		{"Plain", errors.New("plain"), apperr.KindUnexpected, "Unhandled exception"},
		{"MaxBytes", &http.MaxBytesError{Limit: 10}, apperr.KindBadRequest, "Request body too large"},
		{"Nil", nil, apperr.KindUnexpected, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := registry.Map(tt.err)
			require.NotNil(t, mapped)
			assert.Equal(t, tt.kind, mapped.Kind)
			assert.Equal(t, tt.detail, mapped.Detail(""))
		})
	}
}

/*
TestRegistry_ExactOverridesAncestor verifies that an exact registration wins over a matching ancestor.
*/
func TestRegistry_ExactOverridesAncestor(t *testing.T) {
	registry := failure.NewRegistry()
	failure.On(registry, func(err *customFault) *apperr.AppError {
		return apperr.Forbidden(err.reason)
	})

	wrapper := registry.Resolve(reflect.TypeOf(&customFault{}))
	mapped := wrapper(&customFault{reason: "custom"})

	assert.Equal(t, apperr.KindForbidden, mapped.Kind)
	assert.Zero(t, registry.Walks())
}

/*
TestRegistry_ConcurrentResolve verifies that concurrent first lookups agree on the result.
*/
func TestRegistry_ConcurrentResolve(t *testing.T) {
	registry := failure.NewRegistry()

	var wg sync.WaitGroup
	results := make([]apperr.Kind, 32)
	for i := range results {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			results[index] = registry.Map(&customFault{reason: "race"}).Kind
		}(i)
	}
	wg.Wait()

	for _, kind := range results {
		assert.Equal(t, apperr.KindUnexpected, kind)
	}

	walks := registry.Walks()
	registry.Map(&customFault{reason: "after"})
	assert.Equal(t, walks, registry.Walks())
}

/*
TestRegistry_UnwrapDepthIsBounded verifies that errors wrapping themselves resolve to the fallback.
*/
func TestRegistry_UnwrapDepthIsBounded(t *testing.T) {
	registry := failure.NewRegistry()

	tests := []struct {
		name string
		err  error
	}{
		{"SelfWrapped", &selfWrapped{}},
		{"WrappedSelfWrapped", fmt.Errorf("outer: %w", &selfWrapped{})},
		{"JoinedLoop", &joinedLoop{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := registry.Map(tt.err)
			require.NotNil(t, mapped)
			assert.Equal(t, apperr.KindUnexpected, mapped.Kind)
			assert.Equal(t, "Unhandled exception", mapped.Message)
		})
	}
}

/*
TestRegistry_UnwrapDepthLimit verifies that a chain within the limit still reaches its cause.
*/
func TestRegistry_UnwrapDepthLimit(t *testing.T) {
	registry := failure.NewRegistry()

	// 1. Exactly at the limit the cause is found
	var err error = apperr.Forbidden("deep")
	for i := 0; i < failure.MaxUnwrapDepth; i++ {
		err = fmt.Errorf("layer: %w", err)
	}
	assert.Equal(t, apperr.KindForbidden, registry.Map(err).Kind)

	// 2. One layer more is treated as unhandled
	err = fmt.Errorf("layer: %w", err)
	assert.Equal(t, apperr.KindUnexpected, registry.Map(err).Kind)
}
