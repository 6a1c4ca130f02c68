// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package contract loads the OpenAPI document that defines the public surface
of the Pet Store API.

The document is the single source of the route table: every path and method
it declares is mounted by the HTTP server, and its operationId names the
operation the front controller dispatches to. Requests are validated against
the document before any handler runs.
*/
package contract

import (
	"context"
	_ "embed"
	"fmt"
	"mime"
	"net/http"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"

	"github.com/taibuivan/petstore/internal/operation"
)

//go:embed petstore.yaml
var document []byte

// Route is one path and method of the contract.
type Route struct {
	Method      string
	Path        string
	OperationID string

	// Scheme is derived from the security requirements in effect for the operation.
	Scheme operation.Scheme

	route *routers.Route
}

// Contract is a parsed and validated OpenAPI document.
type Contract struct {
	doc    *openapi3.T
	routes []Route
}

// Load parses the embedded Pet Store document.
func Load(ctx context.Context) (*Contract, error) {
	return LoadData(ctx, document)
}

// LoadData parses an OpenAPI 3 document. Every operation must carry an operationId.
func LoadData(ctx context.Context, data []byte) (*Contract, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("contract: parse document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("contract: invalid document: %w", err)
	}

	routes, err := collectRoutes(doc)
	if err != nil {
		return nil, err
	}

	return &Contract{doc: doc, routes: routes}, nil
}

// Title returns the API title declared by the document.
func (c *Contract) Title() string {
	return c.doc.Info.Title
}

// Version returns the API version declared by the document.
func (c *Contract) Version() string {
	return c.doc.Info.Version
}

// Routes returns the route table ordered by path, then method.
func (c *Contract) Routes() []Route {
	return append([]Route(nil), c.routes...)
}

func collectRoutes(doc *openapi3.T) ([]Route, error) {
	var routes []Route

	for path, item := range doc.Paths {
		for method, op := range item.Operations() {
			if op.OperationID == "" {
				return nil, fmt.Errorf("contract: %s %s has no operationId", method, path)
			}

			routes = append(routes, Route{
				Method:      method,
				Path:        path,
				OperationID: op.OperationID,
				Scheme:      schemeOf(doc, op),
				route: &routers.Route{
					Spec:      doc,
					Path:      path,
					PathItem:  item,
					Method:    method,
					Operation: op,
				},
			})
		}
	}

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})

	return routes, nil
}

// schemeOf applies the operation's security requirements, or the document's when it declares none.
// An explicit empty list opts the operation out of authentication.
func schemeOf(doc *openapi3.T, op *openapi3.Operation) operation.Scheme {
	requirements := doc.Security
	if op.Security != nil {
		requirements = *op.Security
	}

	for _, requirement := range requirements {
		if len(requirement) > 0 {
			return operation.SchemeLoginSession
		}
	}
	return operation.SchemeNone
}

// Validate checks the parameters and body of request against the route.
//
// Authentication is not checked here: credentials are the gate's concern, so
// security requirements always pass. The body is restored after validation.
// Multipart bodies carry files of arbitrary media types and are left to the
// handler that parses them.
func (route Route) Validate(request *http.Request, pathParams map[string]string) error {
	mediaType, _, _ := mime.ParseMediaType(request.Header.Get("Content-Type"))

	return openapi3filter.ValidateRequest(request.Context(), &openapi3filter.RequestValidationInput{
		Request:    request,
		PathParams: pathParams,
		Route:      route.route,
		Options: &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
			ExcludeRequestBody: mediaType == "multipart/form-data",
		},
	})
}
