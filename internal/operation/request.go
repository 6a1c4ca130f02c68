// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package operation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/petstore/internal/platform/apperr"
	"github.com/taibuivan/petstore/internal/platform/constants"
)

/*
Request gives handlers access to the already validated parameters of an HTTP request.

It abstracts away the router's parameter extraction and the body decoding
pattern, so that handlers never touch the [http.Request] directly.
*/
type Request struct {
	raw *http.Request
}

// NewRequest wraps an inbound request.
func NewRequest(raw *http.Request) *Request {
	return &Request{raw: raw}
}

/*
Path retrieves a named URL parameter from the request.
*/
func (request *Request) Path(name string) string {
	return chi.URLParam(request.raw, name)
}

/*
PathInt64 retrieves a named URL parameter as an integer.

Returns:
  - error: BadRequest "Invalid <name>" if the parameter is not an integer
*/
func (request *Request) PathInt64(name string) (int64, error) {
	value, err := strconv.ParseInt(request.Path(name), 10, 64)
	if err != nil {
		return 0, apperr.BadRequest("Invalid " + name)
	}
	return value, nil
}

/*
Query retrieves a query string parameter. Missing parameters are "".
*/
func (request *Request) Query(name string) string {
	return request.raw.URL.Query().Get(name)
}

/*
Decode reads the JSON body into target.

Returns:
  - error: [*http.MaxBytesError] if the body exceeds the limit,
    BadRequest "Invalid JSON payload" if decoding fails, otherwise nil
*/
func (request *Request) Decode(target any) error {
	body := http.MaxBytesReader(nil, request.raw.Body, constants.MaxBodyBytes)

	if err := json.NewDecoder(body).Decode(target); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return tooLarge
		}
		return apperr.BadRequest("Invalid JSON payload")
	}

	return nil
}

// Upload is a file received as multipart/form-data.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

/*
File reads the multipart file field and the named text fields of the form.

Returns:
  - error: BadRequest if the form or the file field is missing
*/
func (request *Request) File(field string) (*Upload, error) {
	request.raw.Body = http.MaxBytesReader(nil, request.raw.Body, constants.MaxUploadBytes)

	if err := request.raw.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, tooLarge
		}
		return nil, apperr.BadRequest("Invalid multipart form")
	}

	file, header, err := request.raw.FormFile(field)
	if err != nil {
		return nil, apperr.BadRequest(fmt.Sprintf("Missing form file %q", field))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("operation: read upload: %w", err)
	}

	return &Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

/*
FormValue retrieves a text field of a parsed multipart form.
*/
func (request *Request) FormValue(name string) string {
	return request.raw.FormValue(name)
}
