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

// MediaStore handles all media-related database operations. The bytes live
// in object storage; these records only describe them.
type MediaStore struct {
	db *surrealdb.DB
}

// NewMediaStore creates a new MediaStore with the given database connection.
func NewMediaStore(db *surrealdb.DB) *MediaStore {
	return &MediaStore{db: db}
}

// Create inserts a new media record.
func (s *MediaStore) Create(ctx context.Context, m *models.Media) (*models.Media, error) {
	if m.ID == nil {
		m.ID = models.NewRef(models.MediaTable)
	}
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	created, err := surrealdb.Create[models.Media](ctx, s.db, *m.ID, m)
	if err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	return created, nil
}

// FindByID retrieves a media record by id. Returns nil if not found.
func (s *MediaStore) FindByID(ctx context.Context, id string) (*models.Media, error) {
	m, err := surrealdb.Select[models.Media](ctx, s.db, *models.Ref(models.MediaTable, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find media by id: %w", err)
	}
	return m, nil
}

// List returns all media records, newest first.
func (s *MediaStore) List(ctx context.Context) ([]models.Media, error) {
	result, err := surrealdb.Query[[]models.Media](ctx, s.db,
		"SELECT * FROM media ORDER BY created_at DESC", nil)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	if result == nil || len(*result) == 0 {
		return nil, nil
	}
	return (*result)[0].Result, nil
}

// Delete removes a media record and returns the removed record so the
// caller can also delete the stored object. Returns nil if not found.
func (s *MediaStore) Delete(ctx context.Context, id string) (*models.Media, error) {
	result, err := surrealdb.Query[[]models.Media](ctx, s.db,
		"DELETE type::thing($tb, $id) RETURN BEFORE",
		map[string]any{"tb": models.MediaTable, "id": models.Ref(models.MediaTable, id).ID})
	if err != nil {
		return nil, fmt.Errorf("delete media: %w", err)
	}
	if result == nil || len(*result) == 0 || len((*result)[0].Result) == 0 {
		return nil, nil
	}
	return &(*result)[0].Result[0], nil
}
