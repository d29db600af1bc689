// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all blog entities.
// Each store struct wraps a *surrealdb.DB and exposes typed query methods.
// Lookups that find nothing return (nil, nil); callers decide whether
// absence is an error.
package store

import (
	"errors"
	"strings"
)

// ErrDuplicate is returned when a write violates a unique index
// (username, email, slug).
var ErrDuplicate = errors.New("duplicate value")

// isDuplicate reports whether err is a unique index violation. The SDK
// surfaces these as plain errors, so the index error message is the only
// signal available.
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "already contains")
}

// isNotFound reports whether err is the SDK's way of saying a select
// matched no record.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Expected a single or multiple results but got 0") ||
		strings.Contains(msg, "cannot unmarshal array into Go value")
}
