// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"log/slog"

	"blogapi/internal/apperrors"
	"blogapi/internal/models"
)

// CommentRepo is the slice of the comment store the comment service needs.
type CommentRepo interface {
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
	FindByID(ctx context.Context, id string) (*models.Comment, error)
	ListApprovedByPost(ctx context.Context, postID string) ([]models.Comment, error)
	UpdateStatus(ctx context.Context, id string, status models.CommentStatus) (*models.Comment, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CommentPostRepo is the slice of the post store the comment service needs.
type CommentPostRepo interface {
	FindByID(ctx context.Context, id string) (*models.Post, error)
}

// CreateCommentInput carries the fields accepted when creating a comment.
// Name and Email identify guests; registered users are resolved from the
// request identity instead.
type CreateCommentInput struct {
	Content string
	Parent  string
	Name    string
	Email   string
	Website string
}

// CommentService implements comment submission and moderation. New comments
// start pending and only become publicly visible once approved.
type CommentService struct {
	comments CommentRepo
	posts    CommentPostRepo
	logger   *slog.Logger
}

// NewCommentService creates a CommentService.
func NewCommentService(comments CommentRepo, posts CommentPostRepo, logger *slog.Logger) *CommentService {
	return &CommentService{comments: comments, posts: posts, logger: logger}
}

// Create submits a comment on a post. user may be nil for guest comments;
// guests must supply a name and email. The post must exist and accept
// comments.
func (s *CommentService) Create(ctx context.Context, postID string, user *models.User, in CreateCommentInput) (*models.Comment, error) {
	p, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, apperrors.Internal("could not load post", err)
	}
	if p == nil {
		return nil, apperrors.NotFound("post not found")
	}
	if !p.CommentEnabled {
		return nil, apperrors.BadRequest("comments are disabled on this post")
	}

	author := models.CommentAuthor{
		Name:    in.Name,
		Email:   in.Email,
		Website: in.Website,
	}
	if user != nil {
		author.Name = user.DisplayName
		author.Email = user.Email
		author.UserID = user.ID
	}
	if author.Name == "" || author.Email == "" {
		return nil, apperrors.BadRequest("name and email are required")
	}

	c := &models.Comment{
		Post:    p.ID,
		Author:  author,
		Content: in.Content,
		Status:  models.CommentStatusPending,
	}

	if in.Parent != "" {
		parent, err := s.comments.FindByID(ctx, in.Parent)
		if err != nil {
			return nil, apperrors.Internal("could not validate parent comment", err)
		}
		if parent == nil || models.RefString(parent.Post) != models.RefString(p.ID) {
			return nil, apperrors.BadRequest("unknown parent comment")
		}
		c.Parent = parent.ID
	}

	created, err := s.comments.Create(ctx, c)
	if err != nil {
		return nil, apperrors.Internal("could not create comment", err)
	}

	s.logger.Info("comment created", "comment", models.RefString(created.ID), "post", postID)
	return created, nil
}

// ListByPost returns the approved comments on an existing post.
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	p, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, apperrors.Internal("could not load post", err)
	}
	if p == nil {
		return nil, apperrors.NotFound("post not found")
	}

	comments, err := s.comments.ListApprovedByPost(ctx, postID)
	if err != nil {
		return nil, apperrors.Internal("could not list comments", err)
	}
	return comments, nil
}

// Moderate moves a comment to a new moderation status.
func (s *CommentService) Moderate(ctx context.Context, id string, status models.CommentStatus) (*models.Comment, error) {
	switch status {
	case models.CommentStatusPending, models.CommentStatusApproved,
		models.CommentStatusRejected, models.CommentStatusSpam:
	default:
		return nil, apperrors.BadRequest("unknown comment status")
	}

	updated, err := s.comments.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, apperrors.Internal("could not moderate comment", err)
	}
	if updated == nil {
		return nil, apperrors.NotFound("comment not found")
	}
	return updated, nil
}

// Delete removes a comment.
func (s *CommentService) Delete(ctx context.Context, id string) error {
	removed, err := s.comments.Delete(ctx, id)
	if err != nil {
		return apperrors.Internal("could not delete comment", err)
	}
	if !removed {
		return apperrors.NotFound("comment not found")
	}
	return nil
}
