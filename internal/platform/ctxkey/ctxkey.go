// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines the typed keys of the values a request carries in
// its context: the correlation ID, the request logger and the security
// context of an admitted operation.
//
// Keys are of an unexported type, so no other package can read or overwrite
// them by using the same string.
package ctxkey

type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeySecurity is the context key for the per-request [*sec.SecurityContext].
	KeySecurity key = "security"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
