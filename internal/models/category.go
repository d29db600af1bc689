// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	surreal "github.com/surrealdb/surrealdb.go/pkg/models"
)

// CategoryTable is the SurrealDB table holding category documents.
const CategoryTable = "category"

// Category represents a content category. Categories form a tree via the
// optional Parent reference; the tree is not cycle-checked. Posts reference
// categories weakly — deleting a category does not cascade.
type Category struct {
	ID          *surreal.RecordID `json:"-" cbor:"id,omitempty"`
	Name        string            `json:"name" cbor:"name"`
	Slug        string            `json:"slug" cbor:"slug"`
	Description string            `json:"description,omitempty" cbor:"description"`
	Parent      *surreal.RecordID `json:"-" cbor:"parent,omitempty"`
	SortOrder   int               `json:"sortOrder" cbor:"sort_order"`
	CreatedAt   time.Time         `json:"createdAt" cbor:"created_at"`
	UpdatedAt   time.Time         `json:"updatedAt" cbor:"updated_at"`
}

// MarshalJSON renders record references as plain "table:<id>" strings.
func (c Category) MarshalJSON() ([]byte, error) {
	type alias Category
	out := struct {
		ID     string `json:"id"`
		Parent string `json:"parent,omitempty"`
		alias
	}{
		ID:    RefString(c.ID),
		alias: alias(c),
	}
	if c.Parent != nil {
		out.Parent = c.Parent.String()
	}
	return json.Marshal(out)
}
