// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/taibuivan/petstore/internal/operation"
	"github.com/taibuivan/petstore/internal/platform/constants"
	"github.com/taibuivan/petstore/internal/platform/sec"
)

// # Rejection Reasons

var (
	// ErrMissingCredentials is the reason when no Authorization header is present.
	ErrMissingCredentials = errors.New("missing Authorization header")

	// ErrMalformedCredentials is the reason when the header is not "Bearer <token>".
	ErrMalformedCredentials = errors.New("invalid Authorization header value")

	// ErrInvalidCredentials is the reason when the bearer token fails verification.
	ErrInvalidCredentials = errors.New("invalid session token")
)

// AuthenticationError is the single failure type produced by the [Gate].
//
// # Security
//
// Reason and Cause are for server-side logs. The failure handler renders
// every AuthenticationError with the same fixed detail.
type AuthenticationError struct {
	// Reason is one of the Err*Credentials sentinels.
	Reason error
	// Cause is the token service failure, set only for ErrInvalidCredentials.
	Cause error
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	if e.Cause != nil {
		return "authentication rejected: " + e.Reason.Error() + ": " + e.Cause.Error()
	}
	return "authentication rejected: " + e.Reason.Error()
}

// Unwrap exposes both the reason and the cause to [errors.Is].
func (e *AuthenticationError) Unwrap() []error {
	return []error{e.Reason, e.Cause}
}

// # Gate

// TokenVerifier defines the token check needed by the [Gate].
//
// Defining it here decouples the gate from [sec.TokenService] so tests can
// inject a stub.
type TokenVerifier interface {
	Verify(serialized string) (string, error)
}

// Gate enforces the security scheme of an operation before its handler runs.
//
// For each request the gate moves from UNVERIFIED to either AUTHENTICATED
// (a [*sec.SecurityContext] is returned) or REJECTED (an
// [*AuthenticationError] is returned). It holds no per-request state.
type Gate struct {
	verifier TokenVerifier
}

// NewGate creates a Gate backed by verifier.
func NewGate(verifier TokenVerifier) *Gate {
	return &Gate{verifier: verifier}
}

// Admit applies scheme to request.
//
// # Flow
//  1. NONE: pass-through. Returns (nil, nil) and ignores any header.
//  2. LOGIN_SESSION: requires 'Authorization: Bearer <token>'.
//  3. The token is verified and its subject becomes the security context.
func (gate *Gate) Admit(request *http.Request, scheme operation.Scheme) (*sec.SecurityContext, error) {

	// ── 1. Anonymous Operations ───────────────────────────────────────────
	if scheme != operation.SchemeLoginSession {
		return nil, nil
	}

	// ── 2. Header Extraction ──────────────────────────────────────────────
	header := request.Header.Get(constants.HeaderAuthorization)
	if header == "" {
		return nil, &AuthenticationError{Reason: ErrMissingCredentials}
	}

	token, ok := bearerToken(header)
	if !ok {
		return nil, &AuthenticationError{Reason: ErrMalformedCredentials}
	}

	// ── 3. Token Verification ─────────────────────────────────────────────
	subject, err := gate.verifier.Verify(token)
	if err != nil {
		return nil, &AuthenticationError{Reason: ErrInvalidCredentials, Cause: err}
	}

	return sec.NewSecurityContext(subject), nil
}

// bearerToken extracts the token from a "Bearer <token>" header value.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, constants.BearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}

	return token, true
}
