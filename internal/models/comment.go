// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	surreal "github.com/surrealdb/surrealdb.go/pkg/models"
)

// CommentTable is the SurrealDB table holding comment documents.
const CommentTable = "comment"

// CommentStatus represents the moderation state of a comment.
type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "pending"
	CommentStatusApproved CommentStatus = "approved"
	CommentStatusRejected CommentStatus = "rejected"
	CommentStatusSpam     CommentStatus = "spam"
)

// CommentAuthor is the embedded author block of a comment. UserID is set
// when the comment was written by a registered account.
type CommentAuthor struct {
	Name    string            `json:"name" cbor:"name"`
	Email   string            `json:"email" cbor:"email"`
	Website string            `json:"website,omitempty" cbor:"website"`
	UserID  *surreal.RecordID `json:"-" cbor:"user_id,omitempty"`
}

// Comment represents a reader comment on a post. Comments may be nested one
// level deep via the Parent reference.
type Comment struct {
	ID        *surreal.RecordID `json:"-" cbor:"id,omitempty"`
	Post      *surreal.RecordID `json:"-" cbor:"post"`
	Parent    *surreal.RecordID `json:"-" cbor:"parent,omitempty"`
	Author    CommentAuthor     `json:"author" cbor:"author"`
	Content   string            `json:"content" cbor:"content"`
	Status    CommentStatus     `json:"status" cbor:"status"`
	CreatedAt time.Time         `json:"createdAt" cbor:"created_at"`
	UpdatedAt time.Time         `json:"updatedAt" cbor:"updated_at"`
}

// MarshalJSON renders record references as plain "table:<id>" strings.
func (c Comment) MarshalJSON() ([]byte, error) {
	type alias Comment
	out := struct {
		ID     string `json:"id"`
		Post   string `json:"post"`
		Parent string `json:"parent,omitempty"`
		alias
	}{
		ID:    RefString(c.ID),
		Post:  RefString(c.Post),
		alias: alias(c),
	}
	if c.Parent != nil {
		out.Parent = c.Parent.String()
	}
	return json.Marshal(out)
}
