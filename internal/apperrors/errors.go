// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apperrors defines the error taxonomy shared by the service and
// HTTP layers. Services classify failures with a Kind; the HTTP boundary
// maps each Kind to a status code and a uniform response envelope.
package apperrors

import "errors"

// Kind classifies an application failure.
type Kind int

const (
	// KindInternal is the zero value: anything unclassified is treated as
	// an unexpected store or infrastructure failure.
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindNotFound
	KindConflict
)

// Error carries a user-facing message, a Kind for status mapping, and an
// optional wrapped cause for logging.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// BadRequest marks malformed or missing input.
func BadRequest(msg string) *Error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

// Unauthorized marks missing/invalid credentials or insufficient role.
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// NotFound marks an absent referenced entity.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Conflict marks a duplicate unique field (slug, username, email).
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Internal wraps an unexpected failure. The cause is kept for logs; the
// message is what clients see.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf extracts the Kind from an error chain. Unclassified errors are
// reported as KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message for an error chain. For
// unclassified errors it returns a generic message so internal details
// never leak to clients.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
