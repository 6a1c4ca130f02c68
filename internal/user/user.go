// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package user contains store customers and their repositories.
//
// Passwords are stored only as bcrypt hashes. The plain-text password field
// exists for input and is never serialized back to a client.
package user

import "errors"

var (
	// ErrNotFound is returned when no user has the requested username.
	ErrNotFound = errors.New("user: not found")

	// ErrDuplicate is returned when the username is already taken.
	ErrDuplicate = errors.New("user: duplicate username")
)

// User is a registered customer.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Password     string `json:"password,omitempty"`
	Phone        string `json:"phone,omitempty"`
	PasswordHash string `json:"-"`
}

// Redacted returns a copy without any credential.
func (u User) Redacted() User {
	u.Password = ""
	u.PasswordHash = ""
	return u
}

// Session is the result of a successful login.
type Session struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}
