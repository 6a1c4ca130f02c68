// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package failure translates arbitrary Go errors into the closed [apperr] taxonomy
and renders them as RFC 7807 problem bodies.

Resolution:

  - Exact: a mapper registered for the concrete dynamic type of the error.
  - Cached: the result of an earlier ancestor walk for the same type.
  - Ancestor: mappers registered for interface types, checked in
    registration order. The first interface the type implements wins.
  - Fallback: a fixed Unexpected mapper ("Unhandled exception").

Walk results, fallback included, are cached per concrete type, so a given
type is walked at most a handful of times under concurrent first use and
never again afterwards.
*/
package failure

import (
	"net/http"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/taibuivan/petstore/internal/platform/apperr"
)

// Mapper converts an error into a taxonomy member. Returning nil defers to the fallback.
type Mapper func(err error) *apperr.AppError

// rule is a mapper that knows how deep in a wrapping chain it was reached.
type rule func(err error, depth int) *apperr.AppError

// MaxUnwrapDepth bounds how many wrapping layers are followed before a
// failure is treated as unhandled. It stops errors that wrap themselves.
const MaxUnwrapDepth = 32

type ancestor struct {
	kind reflect.Type
	rule rule
}

// Registry maps failure kinds (concrete error types) to mappers.
//
// Registration happens at startup through [On] and must complete before the
// first call to [Registry.Map]. Lookups are safe for concurrent use.
type Registry struct {
	exact     map[reflect.Type]rule
	ancestors []ancestor
	cache     sync.Map // reflect.Type -> rule
	walks     atomic.Int64
	fallback  rule
}

// NewRegistry creates a registry preloaded with the built-in mappings:
//
//   - [*apperr.AppError]: identity.
//   - [*http.MaxBytesError]: BadRequest.
//   - interface{ Unwrap() error }: translate the wrapped error.
//   - interface{ Unwrap() []error }: translate the first wrapped error that maps to a client failure.
//
// Wrapping is followed at most [MaxUnwrapDepth] layers deep.
func NewRegistry() *Registry {
	registry := &Registry{
		exact:    make(map[reflect.Type]rule),
		fallback: unhandled,
	}

	On(registry, func(err *apperr.AppError) *apperr.AppError {
		return err
	})

	On(registry, func(err *http.MaxBytesError) *apperr.AppError {
		return apperr.BadRequest("Request body too large")
	})

	registry.ancestors = append(registry.ancestors,
		ancestor{kind: reflect.TypeOf((*interface {
			error
			Unwrap() error
		})(nil)).Elem(), rule: registry.unwrapSingle},
		ancestor{kind: reflect.TypeOf((*interface {
			error
			Unwrap() []error
		})(nil)).Elem(), rule: registry.unwrapJoined},
	)

	return registry
}

func (registry *Registry) unwrapSingle(err error, depth int) *apperr.AppError {
	wrapper, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	inner := wrapper.Unwrap()
	if inner == nil {
		return nil
	}
	return registry.mapAt(inner, depth+1)
}

func (registry *Registry) unwrapJoined(err error, depth int) *apperr.AppError {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return nil
	}

	var first *apperr.AppError
	for _, inner := range joined.Unwrap() {
		if inner == nil {
			continue
		}
		mapped := registry.mapAt(inner, depth+1)
		if mapped.Kind != apperr.KindUnexpected {
			return mapped
		}
		if first == nil {
			first = mapped
		}
	}
	return first
}

// On registers mapper for the failure kind T.
//
// A concrete T is matched exactly against the dynamic type of the error. An
// interface T is an ancestor kind: it matches any error type implementing it,
// in registration order. Registering the same concrete T twice replaces the
// earlier mapper.
func On[T error](registry *Registry, mapper func(T) *apperr.AppError) {
	kind := reflect.TypeOf((*T)(nil)).Elem()

	wrapped := func(err error, _ int) *apperr.AppError {
		typed, ok := err.(T)
		if !ok {
			return nil
		}
		return mapper(typed)
	}

	if kind.Kind() == reflect.Interface {
		registry.ancestors = append(registry.ancestors, ancestor{kind: kind, rule: wrapped})
		return
	}

	registry.exact[kind] = wrapped
}

// Map translates err into a taxonomy member. It never returns nil.
func (registry *Registry) Map(err error) *apperr.AppError {
	return registry.mapAt(err, 0)
}

func (registry *Registry) mapAt(err error, depth int) *apperr.AppError {
	if err == nil {
		return apperr.Unexpected("Internal server error", nil)
	}
	if depth > MaxUnwrapDepth {
		return registry.fallback(err, depth)
	}

	if mapped := registry.resolve(reflect.TypeOf(err))(err, depth); mapped != nil {
		return mapped
	}

	return registry.fallback(err, depth)
}

// Resolve returns the mapper for a concrete failure kind.
func (registry *Registry) Resolve(kind reflect.Type) Mapper {
	resolved := registry.resolve(kind)
	return func(err error) *apperr.AppError {
		return resolved(err, 0)
	}
}

func (registry *Registry) resolve(kind reflect.Type) rule {

	// 1. Exact registration
	if exact, ok := registry.exact[kind]; ok {
		return exact
	}

	// 2. Previously walked
	if cached, ok := registry.cache.Load(kind); ok {
		return cached.(rule)
	}

	// 3. Ancestor walk, falling back to Unexpected
	registry.walks.Add(1)

	resolved := registry.fallback
	for _, candidate := range registry.ancestors {
		if kind.Implements(candidate.kind) {
			resolved = candidate.rule
			break
		}
	}

	// Concurrent walks for the same kind store the same rule
	registry.cache.Store(kind, resolved)

	return resolved
}

// Walks returns how many ancestor walks have been performed.
func (registry *Registry) Walks() int64 {
	return registry.walks.Load()
}

func unhandled(err error, _ int) *apperr.AppError {
	return apperr.Unexpected("Unhandled exception", err)
}
