// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	surreal "github.com/surrealdb/surrealdb.go/pkg/models"

	"blogapi/internal/apperrors"
	"blogapi/internal/models"
	"blogapi/internal/slug"
	"blogapi/internal/store"
)

// PostRepo is the slice of the post store the post service needs.
type PostRepo interface {
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	FindByID(ctx context.Context, id string) (*models.Post, error)
	FindBySlug(ctx context.Context, slug string) (*models.Post, error)
	FindPaginated(ctx context.Context, page, limit int) (*store.PostPage, error)
	Update(ctx context.Context, p *models.Post, previousSlug string) (*models.Post, error)
	Delete(ctx context.Context, id string) (bool, error)
	IncrementViews(ctx context.Context, id string) error
}

// CategoryRepo is the slice of the category store the post service needs.
type CategoryRepo interface {
	MissingIDs(ctx context.Context, ids []string) ([]string, error)
}

// AuthorRepo is the slice of the user store the post service needs.
type AuthorRepo interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// CreatePostInput carries the fields accepted when creating a post.
type CreatePostInput struct {
	Title          string
	Content        string
	Slug           string
	Excerpt        string
	FeaturedImage  string
	Tags           []string
	Status         models.PostStatus
	CommentEnabled *bool
	Categories     []string
	SEO            *models.SEO
}

// UpdatePostInput carries the fields accepted when updating a post. Nil
// pointers mean "leave unchanged".
type UpdatePostInput struct {
	Title          *string
	Content        *string
	Slug           *string
	Excerpt        *string
	FeaturedImage  *string
	Tags           []string
	Status         *models.PostStatus
	CommentEnabled *bool
	Categories     []string
	SEO            *models.SEO
}

// PostService implements the post workflows: creation with slug and
// category handling, reads, owner-or-admin updates and deletes, and
// paginated listing.
type PostService struct {
	posts      PostRepo
	categories CategoryRepo
	users      AuthorRepo
	logger     *slog.Logger
}

// NewPostService creates a PostService.
func NewPostService(posts PostRepo, categories CategoryRepo, users AuthorRepo, logger *slog.Logger) *PostService {
	return &PostService{posts: posts, categories: categories, users: users, logger: logger}
}

// Create builds and persists a new post authored by authorID. The author
// must resolve to an existing account; an empty slug is derived from the
// title; every referenced category must exist.
func (s *PostService) Create(ctx context.Context, authorID string, in CreatePostInput) (*models.Post, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, apperrors.Internal("could not validate author", err)
	}
	if author == nil {
		return nil, apperrors.BadRequest("author not found")
	}

	postSlug := strings.TrimSpace(in.Slug)
	if postSlug == "" {
		postSlug = slug.Generate(in.Title)
	}
	if postSlug == "" {
		return nil, apperrors.BadRequest("a slug could not be derived from the title")
	}

	categories, err := s.resolveCategories(ctx, in.Categories)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.PostStatusDraft
	}
	if !validStatus(status) {
		return nil, apperrors.BadRequest(fmt.Sprintf("unknown status %q", status))
	}

	// Comments are opt-in per post.
	commentEnabled := false
	if in.CommentEnabled != nil {
		commentEnabled = *in.CommentEnabled
	}

	p := &models.Post{
		Title:          in.Title,
		Slug:           postSlug,
		Content:        in.Content,
		Excerpt:        in.Excerpt,
		FeaturedImage:  in.FeaturedImage,
		Author:         author.ID,
		Categories:     categories,
		Tags:           in.Tags,
		Status:         status,
		CommentEnabled: commentEnabled,
		SEO:            in.SEO,
	}

	created, err := s.posts.Create(ctx, p)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.Conflict("slug already in use")
		}
		return nil, apperrors.Internal("could not create post", err)
	}

	s.logger.Info("post created", "post", models.RefString(created.ID), "author", authorID)
	return created, nil
}

// GetByID returns a post, bumping its view counter when countView is set.
func (s *PostService) GetByID(ctx context.Context, id string, countView bool) (*models.Post, error) {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("could not load post", err)
	}
	if p == nil {
		return nil, apperrors.NotFound("post not found")
	}
	if countView {
		if err := s.posts.IncrementViews(ctx, id); err != nil {
			s.logger.Warn("increment views", "post", id, "error", err)
		}
	}
	return p, nil
}

// GetBySlug returns a post by slug, bumping its view counter when
// countView is set.
func (s *PostService) GetBySlug(ctx context.Context, postSlug string, countView bool) (*models.Post, error) {
	p, err := s.posts.FindBySlug(ctx, postSlug)
	if err != nil {
		return nil, apperrors.Internal("could not load post", err)
	}
	if p == nil {
		return nil, apperrors.NotFound("post not found")
	}
	if countView {
		if err := s.posts.IncrementViews(ctx, models.RefString(p.ID)); err != nil {
			s.logger.Warn("increment views", "post", models.RefString(p.ID), "error", err)
		}
	}
	return p, nil
}

// List returns a page of posts. Page and limit are assumed validated.
func (s *PostService) List(ctx context.Context, page, limit int) (*store.PostPage, error) {
	pp, err := s.posts.FindPaginated(ctx, page, limit)
	if err != nil {
		return nil, apperrors.Internal("could not list posts", err)
	}
	return pp, nil
}

// Update applies the given changes to a post. Only the author or an admin
// may update. An update that no longer matches a record (for example a
// concurrent delete) is reported as success with the last known state.
func (s *PostService) Update(ctx context.Context, userID string, isAdmin bool, id string, in UpdatePostInput) (*models.Post, error) {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("could not load post", err)
	}
	if p == nil {
		return nil, apperrors.NotFound("post not found")
	}
	if !isAdmin && models.RefString(p.Author) != models.RefString(models.Ref(models.UserTable, userID)) {
		return nil, apperrors.Unauthorized("not allowed to modify this post")
	}

	previousSlug := p.Slug
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.Slug != nil && strings.TrimSpace(*in.Slug) != "" {
		p.Slug = strings.TrimSpace(*in.Slug)
	}
	if in.Excerpt != nil {
		p.Excerpt = *in.Excerpt
	}
	if in.FeaturedImage != nil {
		p.FeaturedImage = *in.FeaturedImage
	}
	if in.Tags != nil {
		p.Tags = in.Tags
	}
	if in.Status != nil {
		if !validStatus(*in.Status) {
			return nil, apperrors.BadRequest(fmt.Sprintf("unknown status %q", *in.Status))
		}
		p.Status = *in.Status
	}
	if in.CommentEnabled != nil {
		p.CommentEnabled = *in.CommentEnabled
	}
	if in.Categories != nil {
		categories, err := s.resolveCategories(ctx, in.Categories)
		if err != nil {
			return nil, err
		}
		p.Categories = categories
	}
	if in.SEO != nil {
		p.SEO = in.SEO
	}

	updated, err := s.posts.Update(ctx, p, previousSlug)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.Conflict("slug already in use")
		}
		return nil, apperrors.Internal("could not update post", err)
	}
	if updated == nil {
		return p, nil
	}
	return updated, nil
}

// Delete removes a post. Only the author or an admin may delete.
func (s *PostService) Delete(ctx context.Context, userID string, isAdmin bool, id string) error {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return apperrors.Internal("could not load post", err)
	}
	if p == nil {
		return apperrors.NotFound("post not found")
	}
	if !isAdmin && models.RefString(p.Author) != models.RefString(models.Ref(models.UserTable, userID)) {
		return apperrors.Unauthorized("not allowed to modify this post")
	}

	removed, err := s.posts.Delete(ctx, id)
	if err != nil {
		return apperrors.Internal("could not delete post", err)
	}
	if !removed {
		return apperrors.NotFound("post not found")
	}

	s.logger.Info("post deleted", "post", id, "by", userID)
	return nil
}

// resolveCategories validates every referenced category before any write
// happens and converts the ids to record references.
func (s *PostService) resolveCategories(ctx context.Context, ids []string) ([]surreal.RecordID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	missing, err := s.categories.MissingIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Internal("could not validate categories", err)
	}
	if len(missing) > 0 {
		return nil, apperrors.BadRequest("unknown category: " + strings.Join(missing, ", "))
	}
	refs := make([]surreal.RecordID, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, *models.Ref(models.CategoryTable, id))
	}
	return refs, nil
}

func validStatus(s models.PostStatus) bool {
	switch s {
	case models.PostStatusDraft, models.PostStatusPublished, models.PostStatusArchived:
		return true
	}
	return false
}
