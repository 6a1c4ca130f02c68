// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package operation implements the operation registry and the front controller.

Every API operation is declared once, at startup, as a [Descriptor]: a unique
name, the security scheme it requires and the handler that implements it. The
scheme is declared next to the operation instead of being inferred from the
handler, so the authentication requirement of every route is visible in one
table.

Flow of a dispatched request:

	lookup → gate (per scheme) → preconditions → bind facade → handler → JSON | problem

The package is generic over the facade type F so the registry never depends
on business code.
*/
package operation

import (
	"context"
	"fmt"
	"net/http"
	"sort"
)

// # Security Schemes

// Scheme is the authentication requirement of an operation.
type Scheme string

const (
	// SchemeNone operations run anonymously. Any Authorization header is ignored.
	SchemeNone Scheme = "NONE"

	// SchemeLoginSession operations require a valid bearer session token.
	SchemeLoginSession Scheme = "LOGIN_SESSION"
)

// Valid reports whether s is one of the two declared schemes.
func (s Scheme) Valid() bool {
	return s == SchemeNone || s == SchemeLoginSession
}

// # Descriptors

// Handler implements one operation against the per-request facade.
type Handler[F any] func(ctx context.Context, facade F, request *Request) (any, error)

// Descriptor binds an operation name to its security scheme and handler.
type Descriptor[F any] struct {
	// Name is the unique operation identifier, e.g. "GET_PET".
	Name string
	// Scheme is the authentication requirement.
	Scheme Scheme
	// Status is the success status code. Zero means 200.
	Status int
	// Handle implements the operation.
	Handle Handler[F]
}

// SuccessStatus returns the status code written on success.
func (d Descriptor[F]) SuccessStatus() int {
	if d.Status == 0 {
		return http.StatusOK
	}
	return d.Status
}

// # Registry

// UnsupportedOperationError is returned when a name has no descriptor.
//
// It signals a routing misconfiguration, so it is translated to a server fault.
type UnsupportedOperationError struct {
	Name string
}

// Error implements the error interface.
func (e *UnsupportedOperationError) Error() string {
	return "Unsupported API operation " + e.Name
}

// Registry is the closed, immutable set of operations.
type Registry[F any] struct {
	descriptors map[string]Descriptor[F]
}

// NewRegistry builds a registry from a static descriptor table.
//
// It fails on an empty or duplicate name, an unknown scheme or a nil handler.
func NewRegistry[F any](descriptors []Descriptor[F]) (*Registry[F], error) {
	registry := &Registry[F]{descriptors: make(map[string]Descriptor[F], len(descriptors))}

	for _, descriptor := range descriptors {
		switch {
		case descriptor.Name == "":
			return nil, fmt.Errorf("operation: descriptor without a name")
		case !descriptor.Scheme.Valid():
			return nil, fmt.Errorf("operation: %s: unknown security scheme %q", descriptor.Name, descriptor.Scheme)
		case descriptor.Handle == nil:
			return nil, fmt.Errorf("operation: %s: nil handler", descriptor.Name)
		}

		if _, exists := registry.descriptors[descriptor.Name]; exists {
			return nil, fmt.Errorf("operation: duplicate operation %s", descriptor.Name)
		}

		registry.descriptors[descriptor.Name] = descriptor
	}

	return registry, nil
}

// Lookup resolves name to its descriptor.
func (registry *Registry[F]) Lookup(name string) (Descriptor[F], error) {
	descriptor, ok := registry.descriptors[name]
	if !ok {
		return Descriptor[F]{}, &UnsupportedOperationError{Name: name}
	}
	return descriptor, nil
}

// Names returns the registered operation names in lexical order.
func (registry *Registry[F]) Names() []string {
	names := make([]string, 0, len(registry.descriptors))
	for name := range registry.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
