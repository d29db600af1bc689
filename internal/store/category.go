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

// CategoryStore handles all category-related database operations.
type CategoryStore struct {
	db *surrealdb.DB
}

// NewCategoryStore creates a new CategoryStore with the given database
// connection.
func NewCategoryStore(db *surrealdb.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// Create inserts a new category record. Returns ErrDuplicate when the slug
// is already taken.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	if c.ID == nil {
		c.ID = models.NewRef(models.CategoryTable)
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	created, err := surrealdb.Create[models.Category](ctx, s.db, *c.ID, c)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

// FindByID retrieves a category by id. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id string) (*models.Category, error) {
	c, err := surrealdb.Select[models.Category](ctx, s.db, *models.Ref(models.CategoryTable, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	result, err := surrealdb.Query[[]models.Category](ctx, s.db,
		"SELECT * FROM category WHERE slug = $slug",
		map[string]any{"slug": slug})
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	if result == nil || len(*result) == 0 || len((*result)[0].Result) == 0 {
		return nil, nil
	}
	return &(*result)[0].Result[0], nil
}

// List returns all categories ordered by sort order, then name.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	result, err := surrealdb.Query[[]models.Category](ctx, s.db,
		"SELECT * FROM category ORDER BY sort_order ASC, name ASC", nil)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if result == nil || len(*result) == 0 {
		return nil, nil
	}
	return (*result)[0].Result, nil
}

// MissingIDs reports which of the given category ids do not exist. Used to
// reject posts referencing unknown categories before writing anything.
func (s *CategoryStore) MissingIDs(ctx context.Context, ids []string) ([]string, error) {
	var missing []string
	for _, id := range ids {
		c, err := s.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if c == nil {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// Update overwrites a category record. Returns nil if the record no longer
// exists.
func (s *CategoryStore) Update(ctx context.Context, c *models.Category) (*models.Category, error) {
	c.UpdatedAt = time.Now()
	updated, err := surrealdb.Update[models.Category](ctx, s.db, *c.ID, c)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		if isDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return updated, nil
}

// Delete removes a category record. Reports whether a record was actually
// removed.
func (s *CategoryStore) Delete(ctx context.Context, id string) (bool, error) {
	result, err := surrealdb.Query[[]models.Category](ctx, s.db,
		"DELETE type::thing($tb, $id) RETURN BEFORE",
		map[string]any{"tb": models.CategoryTable, "id": models.Ref(models.CategoryTable, id).ID})
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	return result != nil && len(*result) > 0 && len((*result)[0].Result) > 0, nil
}
