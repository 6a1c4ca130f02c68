// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response writers used by the front controller
// and the failure handler.
//
// # Architecture
//
// Success bodies are the operation result serialized as plain JSON (no
// envelope). Failure bodies are RFC 7807 problems written with
// [apperr.MediaType]. Nothing else writes to the [http.ResponseWriter].
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/taibuivan/petstore/internal/platform/apperr"
)

const contentTypeJSON = "application/json; charset=utf-8"

// JSON writes payload as a JSON response with the given status code.
//
// A nil payload writes the status with an empty body.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	if payload == nil {
		writer.WriteHeader(statusCode)
		return
	}

	writer.Header().Set("Content-Type", contentTypeJSON)
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response.
func OK(writer http.ResponseWriter, payload any) {
	JSON(writer, http.StatusOK, payload)
}

// Problem writes an RFC 7807 problem body. The status line equals problem.Status.
func Problem(writer http.ResponseWriter, problem apperr.Problem) {
	writer.Header().Set("Content-Type", apperr.MediaType)
	writer.WriteHeader(problem.Status)
	_ = json.NewEncoder(writer).Encode(problem)
}
