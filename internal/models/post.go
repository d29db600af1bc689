// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	surreal "github.com/surrealdb/surrealdb.go/pkg/models"
)

// PostTable is the SurrealDB table holding post documents.
const PostTable = "post"

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

// SEO holds optional search-engine metadata attached to a post.
type SEO struct {
	Title       string   `json:"title,omitempty" cbor:"title"`
	Description string   `json:"description,omitempty" cbor:"description"`
	Keywords    []string `json:"keywords,omitempty" cbor:"keywords"`
	OGImage     string   `json:"ogImage,omitempty" cbor:"og_image"`
}

// Post represents a blog article. The slug is unique across all posts
// (enforced by a unique index). The author reference is required and
// immutable after creation; category references are weak — they are
// validated at write time but not kept consistent after category deletion.
type Post struct {
	ID             *surreal.RecordID  `json:"-" cbor:"id,omitempty"`
	Title          string             `json:"title" cbor:"title"`
	Slug           string             `json:"slug" cbor:"slug"`
	Content        string             `json:"content" cbor:"content"`
	Excerpt        string             `json:"excerpt,omitempty" cbor:"excerpt"`
	FeaturedImage  string             `json:"featuredImage,omitempty" cbor:"featured_image"`
	Author         *surreal.RecordID  `json:"-" cbor:"author"`
	Categories     []surreal.RecordID `json:"-" cbor:"categories"`
	Tags           []string           `json:"tags" cbor:"tags"`
	Status         PostStatus         `json:"status" cbor:"status"`
	CommentEnabled bool               `json:"commentEnabled" cbor:"comment_enabled"`
	ViewCount      int64              `json:"viewCount" cbor:"view_count"`
	SEO            *SEO               `json:"seo,omitempty" cbor:"seo,omitempty"`
	PublishedAt    *time.Time         `json:"publishedAt,omitempty" cbor:"published_at,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" cbor:"created_at"`
	UpdatedAt      time.Time          `json:"updatedAt" cbor:"updated_at"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// MarshalJSON renders record references as plain "table:<id>" strings.
func (p Post) MarshalJSON() ([]byte, error) {
	type alias Post
	return json.Marshal(struct {
		ID         string   `json:"id"`
		Author     string   `json:"author"`
		Categories []string `json:"categories"`
		alias
	}{
		ID:         RefString(p.ID),
		Author:     RefString(p.Author),
		Categories: RefStrings(p.Categories),
		alias:      alias(p),
	})
}
