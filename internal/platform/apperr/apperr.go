// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the closed failure taxonomy of the Pet Store API.

Every client-visible failure is an [AppError] of exactly one [Kind]. The kind
fixes the HTTP status code and the policy for the "detail" text that reaches
the client.

Architecture:

  - Kind: A closed enumeration. There is no way to create a new kind at runtime.
  - AppError: Immutable once constructed. It only knows the semantic kind,
    never the request it belongs to.
  - Problem: The RFC 7807 body. The instance URI is attached at render time by
    the failure translator (see package failure).

The Cause field is kept for server-side logging and is never rendered.
*/
package apperr

import (
	"errors"
	"net/http"
)

// # Failure Kinds

// Kind identifies a member of the closed failure taxonomy.
type Kind int

const (
	// KindUnexpected is the catch-all for faults that indicate a server defect.
	KindUnexpected Kind = iota

	// KindContractViolation is raised when a request does not satisfy the OpenAPI contract.
	KindContractViolation

	// KindBadRequest is raised by business rules rejecting well-formed input.
	KindBadRequest

	// KindAuthenticationRejected is raised when a session is required but not proven.
	KindAuthenticationRejected

	// KindForbidden is raised when the caller is identified but the action is refused.
	KindForbidden

	// KindNotFound is raised when a route or resource does not exist.
	KindNotFound

	// KindNotImplemented is raised by operations that are declared but not built.
	KindNotImplemented
)

// DefaultType is the problem "type" used when no classification URI is given.
const DefaultType = "about:blank"

// MediaType is the content type of every failure response.
const MediaType = "application/problem+json"

// Fixed details for kinds that never echo a caller message.
const (
	unauthorizedDetail   = "Unauthorized"
	notImplementedDetail = "The operation has not been implemented"
	routeNotFoundPrefix  = "No route/resource handler for "
)

// String returns the kind name. It doubles as the problem "title".
func (k Kind) String() string {
	switch k {
	case KindContractViolation:
		return "ContractViolation"
	case KindBadRequest:
		return "BadRequest"
	case KindAuthenticationRejected:
		return "AuthenticationRejected"
	case KindForbidden:
		return "Forbidden"
	case KindNotFound:
		return "NotFound"
	case KindNotImplemented:
		return "NotImplemented"
	default:
		return "Unexpected"
	}
}

// Status returns the HTTP status code bound to the kind.
func (k Kind) Status() int {
	switch k {
	case KindContractViolation, KindBadRequest:
		return http.StatusBadRequest
	case KindAuthenticationRejected:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindNotImplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// # Error Type

// AppError is the canonical failure type of the API.
//
// # Security
//
// Detail disclosure is decided by the [Kind], not by the caller. An
// AuthenticationRejected error renders the same detail whatever its cause.
type AppError struct {
	// Kind is the taxonomy member.
	Kind Kind
	// Message is the caller-supplied text. Whether it reaches the client depends on Kind.
	Message string
	// Type is the classification URI. Empty means [DefaultType].
	Type string
	// Cause is the underlying error, used for server-side logging only.
	Cause error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Message
}

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// Status returns the HTTP status code of the error.
func (e *AppError) Status() int { return e.Kind.Status() }

// Title returns the short machine name of the error.
func (e *AppError) Title() string { return e.Kind.String() }

// Detail returns the client-safe message according to the kind's disclosure policy.
func (e *AppError) Detail(instance string) string {
	switch e.Kind {
	case KindAuthenticationRejected:
		return unauthorizedDetail
	case KindNotImplemented:
		return notImplementedDetail
	case KindNotFound:
		if e.Message == "" {
			return routeNotFoundPrefix + instance
		}
		return e.Message
	default:
		return e.Message
	}
}

// # Problem Rendering

// Problem is the RFC 7807 response body. The field set is fixed.
type Problem struct {
	Type     string  `json:"type"`
	Title    string  `json:"title"`
	Status   int     `json:"status"`
	Detail   string  `json:"detail"`
	Instance *string `json:"instance"`
}

// Problem renders the error for the given request instance.
// An empty instance is rendered as JSON null.
func (e *AppError) Problem(instance string) Problem {
	problemType := e.Type
	if problemType == "" {
		problemType = DefaultType
	}

	problem := Problem{
		Type:   problemType,
		Title:  e.Title(),
		Status: e.Status(),
		Detail: e.Detail(instance),
	}

	if instance != "" {
		problem.Instance = &instance
	}

	return problem
}

// InternalProblem is the hard-coded body used when translation itself fails.
func InternalProblem(instance string) Problem {
	problem := Problem{
		Type:   DefaultType,
		Title:  KindUnexpected.String(),
		Status: http.StatusInternalServerError,
		Detail: "Internal server error",
	}
	if instance != "" {
		problem.Instance = &instance
	}
	return problem
}

// # Client Errors (4xx)

// ContractViolation creates a 400 [AppError] echoing a schema-validation message.
func ContractViolation(msg string, cause error) *AppError {
	return &AppError{Kind: KindContractViolation, Message: msg, Cause: cause}
}

// BadRequest creates a 400 [AppError] for input rejected by a business rule.
//
// Example:
//
//	apperr.BadRequest("Invalid pet id")
func BadRequest(msg string) *AppError {
	return &AppError{Kind: KindBadRequest, Message: msg}
}

// AuthenticationRejected creates a 401 [AppError]. The cause is logged, never rendered.
func AuthenticationRejected(cause error) *AppError {
	return &AppError{Kind: KindAuthenticationRejected, Message: "Authentication rejected", Cause: cause}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{Kind: KindForbidden, Message: msg}
}

// NotFound creates a 404 [AppError] for a missing resource.
//
// Example:
//
//	apperr.NotFound("Pet 7 does not exist")
func NotFound(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Message: msg}
}

// RouteNotFound creates a 404 [AppError] whose detail names the request URI.
func RouteNotFound() *AppError {
	return &AppError{Kind: KindNotFound}
}

// NotImplemented creates a 501 [AppError].
func NotImplemented() *AppError {
	return &AppError{Kind: KindNotImplemented, Message: "Not implemented"}
}

// # Server Errors (5xx)

// Unexpected creates a 500 [AppError]. msg reaches the client, cause does not.
func Unexpected(msg string, cause error) *AppError {
	return &AppError{Kind: KindUnexpected, Message: msg, Cause: cause}
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsKind reports whether err carries an [*AppError] of the given kind.
func IsKind(err error, kind Kind) bool {
	ae := As(err)
	return ae != nil && ae.Kind == kind
}
