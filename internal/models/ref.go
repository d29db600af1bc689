// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"

	"github.com/google/uuid"
	surreal "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Ref builds a record reference for the given table. The id may be a bare
// identifier, an already qualified "table:id" string, or the escaped
// "table:⟨id⟩" form the driver renders for ids with special characters
// (UUIDs among them); all three resolve to the same record.
func Ref(table, id string) *surreal.RecordID {
	if i := strings.IndexByte(id, ':'); i >= 0 {
		id = id[i+1:]
	}
	if strings.HasPrefix(id, "⟨") && strings.HasSuffix(id, "⟩") {
		id = strings.TrimSuffix(strings.TrimPrefix(id, "⟨"), "⟩")
		id = strings.ReplaceAll(id, `\⟩`, "⟩")
	}
	return &surreal.RecordID{Table: table, ID: id}
}

// NewRef mints a reference in the given table with a fresh UUID identifier.
func NewRef(table string) *surreal.RecordID {
	return &surreal.RecordID{Table: table, ID: uuid.NewString()}
}

// RefString renders a reference as "table:id". Returns "" for nil.
func RefString(r *surreal.RecordID) string {
	if r == nil {
		return ""
	}
	return r.String()
}

// RefStrings renders a slice of references as "table:id" strings.
func RefStrings(refs []surreal.RecordID) []string {
	out := make([]string, 0, len(refs))
	for i := range refs {
		out = append(out, refs[i].String())
	}
	return out
}
