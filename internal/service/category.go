// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"blogapi/internal/apperrors"
	"blogapi/internal/models"
	"blogapi/internal/slug"
	"blogapi/internal/store"
)

// CategoryFullRepo is the slice of the category store the category service
// needs. It is wider than the CategoryRepo the post service uses.
type CategoryFullRepo interface {
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	FindByID(ctx context.Context, id string) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, c *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CreateCategoryInput carries the fields accepted when creating a category.
type CreateCategoryInput struct {
	Name        string
	Slug        string
	Description string
	Parent      string
	SortOrder   int
}

// UpdateCategoryInput carries the fields accepted when updating a category.
// Nil pointers mean "leave unchanged".
type UpdateCategoryInput struct {
	Name        *string
	Slug        *string
	Description *string
	Parent      *string
	SortOrder   *int
}

// CategoryService implements category management. All writes are admin-only;
// that gate lives in the router.
type CategoryService struct {
	categories CategoryFullRepo
	logger     *slog.Logger
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(categories CategoryFullRepo, logger *slog.Logger) *CategoryService {
	return &CategoryService{categories: categories, logger: logger}
}

// Create builds and persists a new category. An empty slug is derived from
// the name; a parent reference, when present, must exist.
func (s *CategoryService) Create(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	catSlug := strings.TrimSpace(in.Slug)
	if catSlug == "" {
		catSlug = slug.Generate(in.Name)
	}
	if catSlug == "" {
		return nil, apperrors.BadRequest("a slug could not be derived from the name")
	}

	c := &models.Category{
		Name:        in.Name,
		Slug:        catSlug,
		Description: in.Description,
		SortOrder:   in.SortOrder,
	}

	if in.Parent != "" {
		parent, err := s.categories.FindByID(ctx, in.Parent)
		if err != nil {
			return nil, apperrors.Internal("could not validate parent category", err)
		}
		if parent == nil {
			return nil, apperrors.BadRequest("unknown parent category: " + in.Parent)
		}
		c.Parent = parent.ID
	}

	created, err := s.categories.Create(ctx, c)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.Conflict("slug already in use")
		}
		return nil, apperrors.Internal("could not create category", err)
	}

	s.logger.Info("category created", "category", models.RefString(created.ID))
	return created, nil
}

// Get returns a category by id.
func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("could not load category", err)
	}
	if c == nil {
		return nil, apperrors.NotFound("category not found")
	}
	return c, nil
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("could not list categories", err)
	}
	return categories, nil
}

// Update applies the given changes to a category.
func (s *CategoryService) Update(ctx context.Context, id string, in UpdateCategoryInput) (*models.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("could not load category", err)
	}
	if c == nil {
		return nil, apperrors.NotFound("category not found")
	}

	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Slug != nil && strings.TrimSpace(*in.Slug) != "" {
		c.Slug = strings.TrimSpace(*in.Slug)
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.SortOrder != nil {
		c.SortOrder = *in.SortOrder
	}
	if in.Parent != nil {
		if *in.Parent == "" {
			c.Parent = nil
		} else {
			parent, err := s.categories.FindByID(ctx, *in.Parent)
			if err != nil {
				return nil, apperrors.Internal("could not validate parent category", err)
			}
			if parent == nil {
				return nil, apperrors.BadRequest("unknown parent category: " + *in.Parent)
			}
			if models.RefString(parent.ID) == models.RefString(c.ID) {
				return nil, apperrors.BadRequest("a category cannot be its own parent")
			}
			c.Parent = parent.ID
		}
	}

	updated, err := s.categories.Update(ctx, c)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.Conflict("slug already in use")
		}
		return nil, apperrors.Internal("could not update category", err)
	}
	if updated == nil {
		return c, nil
	}
	return updated, nil
}

// Delete removes a category. Posts referencing it keep their dangling
// reference; the link is weak by design of the data model.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	removed, err := s.categories.Delete(ctx, id)
	if err != nil {
		return apperrors.Internal("could not delete category", err)
	}
	if !removed {
		return apperrors.NotFound("category not found")
	}
	s.logger.Info("category deleted", "category", id)
	return nil
}
