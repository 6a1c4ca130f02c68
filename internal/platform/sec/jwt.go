// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and session token management.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, token
// signing) from the domain logic. Session tokens are stateless HS256 JWTs:
// nothing is stored server-side, a token stays valid until it expires and
// logout is a client-side discard.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// # Errors

var (
	// ErrInvalidToken is returned when the token cannot be parsed or is unverifiable.
	ErrInvalidToken = errors.New("sec: invalid token")

	// ErrSignatureMismatch is returned when the MAC does not match the signing input.
	ErrSignatureMismatch = errors.New("sec: signature mismatch")

	// ErrTokenExpired is returned when the token's expiry has elapsed.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrEmptySubject is returned when issuing a token for an empty subject.
	ErrEmptySubject = errors.New("sec: subject must not be empty")
)

// MinSecretLength is the minimum HMAC secret size in bytes.
const MinSecretLength = 32

// DefaultTokenTTL is the lifetime of a session token when none is configured.
const DefaultTokenTTL = 15 * time.Minute

// # Token Model

// Token is an issued session token.
type Token struct {
	Subject    string
	IssuedAt   time.Time
	ExpiresAt  time.Time
	Serialized string
}

// TokenService issues and verifies HS256 session tokens.
//
// A TokenService is safe for concurrent use. It holds no mutable state after
// construction.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a [TokenService].
type Option func(*TokenService)

// WithClock replaces the time source. Used by tests to control expiry.
func WithClock(now func() time.Time) Option {
	return func(service *TokenService) {
		service.now = now
	}
}

// NewTokenService creates a TokenService signing with the given secret.
//
// A non-positive ttl falls back to [DefaultTokenTTL].
func NewTokenService(secret, issuer string, ttl time.Duration, opts ...Option) (*TokenService, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("sec: secret must be at least %d bytes, got %d", MinSecretLength, len(secret))
	}

	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	service := &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// TTL returns the configured token lifetime.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}

// # Issuing

// Issue signs a new token for subject, valid from now until now + TTL.
func (service *TokenService) Issue(subject string) (Token, error) {
	if subject == "" {
		return Token{}, ErrEmptySubject
	}

	// Claims carry second precision, keep the returned timestamps aligned with them
	issuedAt := service.now().Truncate(jwt.TimePrecision)
	expiresAt := issuedAt.Add(service.ttl)

	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   subject,
		Issuer:    service.issuer,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	serialized, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(service.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return Token{
		Subject:    subject,
		IssuedAt:   issuedAt,
		ExpiresAt:  expiresAt,
		Serialized: serialized,
	}, nil
}

// # Verification

// Verify checks the signature and expiry of serialized and returns its subject.
//
// The returned error wraps exactly one of [ErrInvalidToken],
// [ErrSignatureMismatch] or [ErrTokenExpired], followed by the parser's reason.
func (service *TokenService) Verify(serialized string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(serialized, claims, service.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return "", classify(err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims.Subject, nil
}

func (service *TokenService) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return service.secret, nil
}

// classify maps a jwt parser error onto the package sentinels.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrSignatureMismatch, err)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
}
