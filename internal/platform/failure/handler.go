// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package failure

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/taibuivan/petstore/internal/platform/apperr"
	"github.com/taibuivan/petstore/internal/platform/ctxutil"
	"github.com/taibuivan/petstore/internal/platform/respond"
)

// Handler renders failures as problem responses.
type Handler struct {
	registry *Registry
	logger   *slog.Logger
}

// NewHandler creates a Handler. A nil logger uses [slog.Default].
func NewHandler(registry *Registry, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{registry: registry, logger: logger}
}

// Translate maps err to a problem body for the given instance URI.
//
// Translate never panics. A fault raised while mapping or rendering yields a
// hard-coded 500 problem.
func (handler *Handler) Translate(err error, instance string) apperr.Problem {
	_, problem := handler.translate(err, instance)
	return problem
}

func (handler *Handler) translate(err error, instance string) (mapped *apperr.AppError, problem apperr.Problem) {
	defer func() {
		if recovered := recover(); recovered != nil {
			handler.logger.Error("failure_translation_panicked",
				slog.Any("panic", recovered),
				slog.Any("error", err),
			)
			mapped = apperr.Unexpected("Internal server error", fmt.Errorf("translation panicked: %v", recovered))
			problem = apperr.InternalProblem(instance)
		}
	}()

	mapped = handler.registry.Map(err)
	return mapped, mapped.Problem(instance)
}

// ServeError translates err and writes the problem response.
func (handler *Handler) ServeError(writer http.ResponseWriter, request *http.Request, err error) {
	ctx := request.Context()
	mapped, problem := handler.translate(err, Instance(request))

	logger := ctxutil.GetLogger(ctx)
	attrs := []any{
		slog.Int("status", problem.Status),
		slog.String("title", problem.Title),
		slog.String("detail", problem.Detail),
		slog.Any("error", err),
	}
	if mapped.Cause != nil {
		attrs = append(attrs, slog.Any("cause", mapped.Cause))
	}
	if subject, ok := ctxutil.Subject(ctx); ok {
		attrs = append(attrs, slog.String("subject", subject))
	}

	switch {
	case problem.Status >= http.StatusInternalServerError:
		logger.ErrorContext(ctx, "request_failed", attrs...)
	case mapped.Kind == apperr.KindAuthenticationRejected:
		// The reason is only ever visible here
		logger.DebugContext(ctx, "request_rejected", attrs...)
	default:
		logger.InfoContext(ctx, "request_failed", attrs...)
	}

	respond.Problem(writer, problem)
}

// Instance returns the absolute URI of the request, used as the problem "instance".
func Instance(request *http.Request) string {
	if request.Host == "" {
		return request.URL.RequestURI()
	}

	scheme := "http"
	if request.TLS != nil {
		scheme = "https"
	}

	return scheme + "://" + request.Host + request.URL.RequestURI()
}
