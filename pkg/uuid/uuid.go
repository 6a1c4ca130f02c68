// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered unique identifiers.

It wraps google/uuid to generate Version 7 values. They are used for request
correlation IDs and for the object names of uploaded pet images, where time
ordering keeps a listing of the image directory in upload order.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// If the time-ordered generator fails, a random v4 value is returned so
// callers never have to handle an error for an identifier.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
