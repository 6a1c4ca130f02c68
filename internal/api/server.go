// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and the
contract-driven operation routes into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Routes are not declared here: every path and method of the OpenAPI
    contract is mounted under the context path and dispatched by operationId.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/petstore/internal/contract"
	"github.com/taibuivan/petstore/internal/operation"
	"github.com/taibuivan/petstore/internal/petstore"
	"github.com/taibuivan/petstore/internal/platform/apperr"
	"github.com/taibuivan/petstore/internal/platform/config"
	"github.com/taibuivan/petstore/internal/platform/constants"
	"github.com/taibuivan/petstore/internal/platform/failure"
	"github.com/taibuivan/petstore/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Handlers groups everything the router dispatches to.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all dependencies are healthy.
	Readiness http.HandlerFunc

	// Contract supplies the route table and request validation.
	Contract *contract.Contract

	// Operations is the registry the controller dispatches through.
	Operations *operation.Registry[petstore.API]

	// Controller runs the operations.
	Controller *operation.Controller[petstore.API]

	// Failures renders every failure raised outside an operation.
	Failures *failure.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// mounts the contract routes.
func NewServer(cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.PanicRecovery(h.Failures))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.DefaultHeaders())
	r.Use(chimw.CleanPath)

	// # Unmatched Requests
	// Registered before mounting so the API sub-router inherits them.
	routeNotFound := func(writer http.ResponseWriter, request *http.Request) {
		h.Failures.ServeError(writer, request, apperr.RouteNotFound())
	}
	r.NotFound(routeNotFound)
	r.MethodNotAllowed(routeNotFound)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route(constants.ContextPath, func(api chi.Router) {
		for _, route := range h.Contract.Routes() {
			checkRoute(log, h.Operations, route)
			api.Method(route.Method, route.Path, h.Controller.Dispatch(route.OperationID, conforms(route)))
		}
	})

	log.Info("contract_mounted",
		slog.String("title", h.Contract.Title()),
		slog.String("version", h.Contract.Version()),
		slog.String("context_path", constants.ContextPath),
		slog.Int("routes", len(h.Contract.Routes())),
	)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// conforms validates a request against its contract route, using the path
// parameters chi matched.
func conforms(route contract.Route) operation.Precondition {
	return func(request *http.Request) error {
		params := make(map[string]string)
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
			for i, key := range routeContext.URLParams.Keys {
				params[key] = routeContext.URLParams.Values[i]
			}
		}
		return route.Validate(request, params)
	}
}

// checkRoute reports contract routes the registry disagrees with. The registry always wins.
func checkRoute(log *slog.Logger, operations *operation.Registry[petstore.API], route contract.Route) {
	descriptor, err := operations.Lookup(route.OperationID)
	if err != nil {
		log.Warn("contract_operation_unregistered",
			slog.String("operation", route.OperationID),
			slog.String("method", route.Method),
			slog.String("path", route.Path),
		)
		return
	}

	if descriptor.Scheme != route.Scheme {
		log.Warn("contract_scheme_mismatch",
			slog.String("operation", route.OperationID),
			slog.String("contract_scheme", string(route.Scheme)),
			slog.String("registry_scheme", string(descriptor.Scheme)),
		)
	}
}

// # Server Lifecycle

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
