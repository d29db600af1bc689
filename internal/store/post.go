// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"

	"blogapi/internal/cache"
	"blogapi/internal/models"
)

// listPagePrefix keys cached list pages so any write can drop them all.
const listPagePrefix = "posts:page:"

// PostPage is one page of posts with the total count across all pages.
type PostPage struct {
	Posts []models.Post
	Total int64
}

// PostStore handles all post-related database operations. Reads go through
// an in-process TTL cache; every write invalidates whatever it makes stale.
type PostStore struct {
	db    *surrealdb.DB
	cache *cache.Cache
}

// NewPostStore creates a new PostStore with the given database connection
// and read cache.
func NewPostStore(db *surrealdb.DB, c *cache.Cache) *PostStore {
	return &PostStore{db: db, cache: c}
}

// Create inserts a new post record. A missing ID gets a fresh one; a
// published post without a publication time is stamped now. Returns
// ErrDuplicate when the slug is already taken.
func (s *PostStore) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	if p.ID == nil {
		p.ID = models.NewRef(models.PostTable)
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == models.PostStatusPublished && p.PublishedAt == nil {
		p.PublishedAt = &now
	}

	created, err := surrealdb.Create[models.Post](ctx, s.db, *p.ID, p)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.seed(created)
	s.cache.DeletePrefix(listPagePrefix)
	return created, nil
}

// FindByID retrieves a post by id, serving from cache when possible.
// Returns nil if not found.
func (s *PostStore) FindByID(ctx context.Context, id string) (*models.Post, error) {
	rid := models.Ref(models.PostTable, id)
	if v, ok := s.cache.Get(rid.String()); ok {
		return v.(*models.Post), nil
	}

	p, err := surrealdb.Select[models.Post](ctx, s.db, *rid)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	s.seed(p)
	return p, nil
}

// FindBySlug retrieves a post by slug, serving from cache when possible.
// Returns nil if not found.
func (s *PostStore) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	if v, ok := s.cache.Get(slugKey(slug)); ok {
		return v.(*models.Post), nil
	}

	result, err := surrealdb.Query[[]models.Post](ctx, s.db,
		"SELECT * FROM post WHERE slug = $slug",
		map[string]any{"slug": slug})
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	if result == nil || len(*result) == 0 || len((*result)[0].Result) == 0 {
		return nil, nil
	}
	p := &(*result)[0].Result[0]
	s.seed(p)
	return p, nil
}

// FindPaginated returns the requested page of posts ordered newest first,
// along with the total post count. Callers are responsible for validating
// page and limit; the offset is computed as given.
func (s *PostStore) FindPaginated(ctx context.Context, page, limit int) (*PostPage, error) {
	key := fmt.Sprintf("%s%d:limit:%d", listPagePrefix, page, limit)
	if v, ok := s.cache.Get(key); ok {
		return v.(*PostPage), nil
	}

	start := (page - 1) * limit
	result, err := surrealdb.Query[[]models.Post](ctx, s.db,
		"SELECT * FROM post ORDER BY created_at DESC LIMIT $limit START $start",
		map[string]any{"limit": limit, "start": start})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	pp := &PostPage{}
	if result != nil && len(*result) > 0 {
		pp.Posts = (*result)[0].Result
	}

	pp.Total, err = s.count(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, pp)
	return pp, nil
}

// Update overwrites a post record. Returns nil if the record no longer
// exists; the caller decides whether that is an error. previousSlug, when
// different from the new slug, names the stale cache entry to drop.
func (s *PostStore) Update(ctx context.Context, p *models.Post, previousSlug string) (*models.Post, error) {
	p.UpdatedAt = time.Now()
	if p.Status == models.PostStatusPublished && p.PublishedAt == nil {
		now := p.UpdatedAt
		p.PublishedAt = &now
	}

	updated, err := surrealdb.Update[models.Post](ctx, s.db, *p.ID, p)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		if isDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	if previousSlug != "" && previousSlug != updated.Slug {
		s.cache.Delete(slugKey(previousSlug))
	}
	s.seed(updated)
	s.cache.DeletePrefix(listPagePrefix)
	return updated, nil
}

// Delete removes a post record. Reports whether a record was actually
// removed.
func (s *PostStore) Delete(ctx context.Context, id string) (bool, error) {
	rid := models.Ref(models.PostTable, id)
	result, err := surrealdb.Query[[]models.Post](ctx, s.db,
		"DELETE type::thing($tb, $id) RETURN BEFORE",
		map[string]any{"tb": models.PostTable, "id": rid.ID})
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}

	var removed *models.Post
	if result != nil && len(*result) > 0 && len((*result)[0].Result) > 0 {
		removed = &(*result)[0].Result[0]
	}
	if removed == nil {
		return false, nil
	}

	s.cache.Delete(rid.String())
	s.cache.Delete(slugKey(removed.Slug))
	s.cache.DeletePrefix(listPagePrefix)
	return true, nil
}

// IncrementViews bumps the view counter without touching the cache; a view
// count that lags by one TTL window is acceptable.
func (s *PostStore) IncrementViews(ctx context.Context, id string) error {
	_, err := surrealdb.Query[any](ctx, s.db,
		"UPDATE type::thing($tb, $id) SET view_count += 1",
		map[string]any{"tb": models.PostTable, "id": models.Ref(models.PostTable, id).ID})
	if err != nil {
		return fmt.Errorf("increment post views: %w", err)
	}
	return nil
}

func (s *PostStore) count(ctx context.Context) (int64, error) {
	type row struct {
		Count int64 `json:"count" cbor:"count"`
	}
	result, err := surrealdb.Query[[]row](ctx, s.db, "SELECT count() FROM post GROUP ALL", nil)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	if result == nil || len(*result) == 0 || len((*result)[0].Result) == 0 {
		return 0, nil
	}
	return (*result)[0].Result[0].Count, nil
}

// seed caches a post under both its id and slug keys.
func (s *PostStore) seed(p *models.Post) {
	if p == nil || p.ID == nil {
		return
	}
	s.cache.Set(p.ID.String(), p)
	if p.Slug != "" {
		s.cache.Set(slugKey(p.Slug), p)
	}
}

func slugKey(slug string) string {
	return "post:slug:" + slug
}
