// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Routing: The API context path and request size limits.
  - Security: Token issuer and header names.
  - Caching: Redis key prefixes.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "petstore-api"
	AppVersion = "1.0.0"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// ReadinessTimeout bounds each dependency check of the readiness probe.
	ReadinessTimeout = 2 * time.Second
)

// # Routing

const (
	// ContextPath is the prefix under which every contract operation is mounted.
	ContextPath = "/petstore/v1"

	// MaxBodyBytes caps JSON request bodies.
	MaxBodyBytes = 1 << 20

	// MaxUploadBytes caps image uploads.
	MaxUploadBytes = 8 << 20
)

// # Authentication

const (
	// AuthIssuer is the default 'iss' claim of session tokens.
	AuthIssuer = "petstore.api"

	// BearerScheme is the Authorization scheme of session tokens.
	BearerScheme = "Bearer"
)

// # HTTP Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderCacheControl  = "Cache-Control"
	HeaderOrigin        = "Origin"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # JSON Field Identifiers

const (
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixPet = "petstore:pet:"
)
