// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/petstore/internal/platform/ctxkey"
	"github.com/taibuivan/petstore/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok || logger == nil {
		return slog.Default()
	}
	return logger
}

// # Identity

// WithSecurityContext returns a new context carrying the verified identity of the request.
func WithSecurityContext(ctx context.Context, sc *sec.SecurityContext) context.Context {
	return context.WithValue(ctx, ctxkey.KeySecurity, sc)
}

// GetSecurityContext retrieves the [*sec.SecurityContext] from the [context.Context].
// It returns nil for anonymous requests.
func GetSecurityContext(ctx context.Context) *sec.SecurityContext {
	sc, ok := ctx.Value(ctxkey.KeySecurity).(*sec.SecurityContext)
	if !ok {
		return nil
	}
	return sc
}

// Subject returns the username the request was authenticated as.
// The boolean is false for anonymous requests and for requests not yet through the gate.
func Subject(ctx context.Context) (string, bool) {
	sc := GetSecurityContext(ctx)
	if !sc.Authenticated() {
		return "", false
	}
	return sc.Subject(), true
}
