// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"

	"blogapi/internal/models"
)

// CommentStore handles all comment-related database operations.
type CommentStore struct {
	db *surrealdb.DB
}

// NewCommentStore creates a new CommentStore with the given database
// connection.
func NewCommentStore(db *surrealdb.DB) *CommentStore {
	return &CommentStore{db: db}
}

// Create inserts a new comment record. New comments always start pending.
func (s *CommentStore) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	if c.ID == nil {
		c.ID = models.NewRef(models.CommentTable)
	}
	if c.Status == "" {
		c.Status = models.CommentStatusPending
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	created, err := surrealdb.Create[models.Comment](ctx, s.db, *c.ID, c)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return created, nil
}

// FindByID retrieves a comment by id. Returns nil if not found.
func (s *CommentStore) FindByID(ctx context.Context, id string) (*models.Comment, error) {
	c, err := surrealdb.Select[models.Comment](ctx, s.db, *models.Ref(models.CommentTable, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find comment by id: %w", err)
	}
	return c, nil
}

// ListApprovedByPost returns the approved comments on a post, oldest first.
func (s *CommentStore) ListApprovedByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	result, err := surrealdb.Query[[]models.Comment](ctx, s.db,
		"SELECT * FROM comment WHERE post = type::thing($tb, $id) AND status = $status ORDER BY created_at ASC",
		map[string]any{
			"tb":     models.PostTable,
			"id":     models.Ref(models.PostTable, postID).ID,
			"status": models.CommentStatusApproved,
		})
	if err != nil {
		return nil, fmt.Errorf("list comments by post: %w", err)
	}
	if result == nil || len(*result) == 0 {
		return nil, nil
	}
	return (*result)[0].Result, nil
}

// UpdateStatus moves a comment through moderation. Returns nil if the
// record no longer exists.
func (s *CommentStore) UpdateStatus(ctx context.Context, id string, status models.CommentStatus) (*models.Comment, error) {
	result, err := surrealdb.Query[[]models.Comment](ctx, s.db,
		"UPDATE type::thing($tb, $id) SET status = $status, updated_at = time::now() RETURN AFTER",
		map[string]any{
			"tb":     models.CommentTable,
			"id":     models.Ref(models.CommentTable, id).ID,
			"status": status,
		})
	if err != nil {
		return nil, fmt.Errorf("update comment status: %w", err)
	}
	if result == nil || len(*result) == 0 || len((*result)[0].Result) == 0 {
		return nil, nil
	}
	return &(*result)[0].Result[0], nil
}

// Delete removes a comment record. Reports whether a record was actually
// removed.
func (s *CommentStore) Delete(ctx context.Context, id string) (bool, error) {
	result, err := surrealdb.Query[[]models.Comment](ctx, s.db,
		"DELETE type::thing($tb, $id) RETURN BEFORE",
		map[string]any{"tb": models.CommentTable, "id": models.Ref(models.CommentTable, id).ID})
	if err != nil {
		return false, fmt.Errorf("delete comment: %w", err)
	}
	return result != nil && len(*result) > 0 && len((*result)[0].Result) > 0, nil
}
