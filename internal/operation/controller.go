// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package operation

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/taibuivan/petstore/internal/platform/ctxutil"
	"github.com/taibuivan/petstore/internal/platform/respond"
	"github.com/taibuivan/petstore/internal/platform/sec"
)

// # Collaborators

// Gate decides whether a request may run an operation of the given scheme.
//
// It returns a nil context for anonymous operations and an error when the
// request is rejected.
type Gate interface {
	Admit(request *http.Request, scheme Scheme) (*sec.SecurityContext, error)
}

// FailureHandler renders a failure as the response of the request.
type FailureHandler interface {
	ServeError(writer http.ResponseWriter, request *http.Request, err error)
}

// Binder derives the per-request facade from the long-lived one.
//
// It must return a copy carrying the security context and leave base untouched.
type Binder[F any] func(base F, securityContext *sec.SecurityContext) F

// Precondition inspects an admitted request before its handler runs.
// A non-nil error is rendered instead of running the handler.
type Precondition func(request *http.Request) error

// PanicError is a panic raised by an operation handler, converted into a failure.
type PanicError struct {
	Value any
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("operation panicked: %v", e.Value)
}

// # Controller

// Controller dispatches requests to registered operations.
//
// A Controller is safe for concurrent use: it holds only immutable
// collaborators and derives all per-request state inside [Controller.Dispatch].
type Controller[F any] struct {
	registry *Registry[F]
	gate     Gate
	failures FailureHandler
	base     F
	bind     Binder[F]
}

// NewController creates a front controller over registry.
func NewController[F any](registry *Registry[F], gate Gate, failures FailureHandler, base F, bind Binder[F]) *Controller[F] {
	return &Controller[F]{
		registry: registry,
		gate:     gate,
		failures: failures,
		base:     base,
		bind:     bind,
	}
}

// Dispatch returns the handler running the named operation.
//
// The name is resolved per request, so mounting a name that is not
// registered yields a 500 problem instead of a startup failure.
// Preconditions run in order once the request has been admitted.
func (controller *Controller[F]) Dispatch(name string, preconditions ...Precondition) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		controller.serve(writer, request, name, preconditions)
	})
}

// dispatchRecord collects the fields of the operation_dispatched event.
type dispatchRecord struct {
	name    string
	scheme  Scheme
	subject string
	outcome string
	status  int
}

func (controller *Controller[F]) serve(writer http.ResponseWriter, request *http.Request, name string, preconditions []Precondition) {
	startTime := time.Now()
	record := dispatchRecord{name: name}

	defer func() {
		controller.logDispatch(request, record, time.Since(startTime))
	}()

	// 1. Resolve the operation
	descriptor, err := controller.registry.Lookup(name)
	if err != nil {
		record.outcome, record.status = controller.fail(writer, request, err)
		return
	}
	record.scheme = descriptor.Scheme

	// 2. Authenticate per the declared scheme. Rejected requests never reach the handler.
	securityContext, err := controller.gate.Admit(request, descriptor.Scheme)
	if err != nil {
		record.outcome, record.status = controller.fail(writer, request, err)
		return
	}

	// 3. Attach the identity to this request only
	ctx := request.Context()
	if securityContext != nil {
		ctx = ctxutil.WithSecurityContext(ctx, securityContext)
		request = request.WithContext(ctx)
		record.subject = securityContext.Subject()
	}

	// 4. Check the admitted request
	for _, precondition := range preconditions {
		if err := precondition(request); err != nil {
			record.outcome, record.status = controller.fail(writer, request, err)
			return
		}
	}

	// 5. Bind a per-request copy of the facade and run the handler
	facade := controller.bind(controller.base, securityContext)

	result, err := invoke(ctx, descriptor, facade, NewRequest(request))
	if err != nil {
		record.outcome, record.status = controller.fail(writer, request, err)
		return
	}

	// 6. Success
	record.outcome, record.status = "success", descriptor.SuccessStatus()
	respond.JSON(writer, record.status, result)
}

// invoke runs the handler, converting a panic into a [*PanicError].
func invoke[F any](ctx context.Context, descriptor Descriptor[F], facade F, request *Request) (result any, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			stackTrace := make([]byte, 4096)
			length := runtime.Stack(stackTrace, false)
			result, err = nil, &PanicError{Value: recovered, Stack: string(stackTrace[:length])}
		}
	}()

	return descriptor.Handle(ctx, facade, request)
}

func (controller *Controller[F]) fail(writer http.ResponseWriter, request *http.Request, err error) (string, int) {
	recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusInternalServerError}
	controller.failures.ServeError(recorder, request, err)
	return "failure", recorder.status
}

func (controller *Controller[F]) logDispatch(request *http.Request, record dispatchRecord, latency time.Duration) {
	ctx := request.Context()

	attrs := []slog.Attr{
		slog.String("operation", record.name),
		slog.String("scheme", string(record.scheme)),
		slog.Bool("authenticated", record.subject != ""),
		slog.String("outcome", record.outcome),
		slog.Int("status", record.status),
		slog.Int64("latency_ms", latency.Milliseconds()),
	}
	if record.subject != "" {
		attrs = append(attrs, slog.String("subject", record.subject))
	}

	ctxutil.GetLogger(ctx).LogAttrs(ctx, slog.LevelInfo, "operation_dispatched", attrs...)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}
