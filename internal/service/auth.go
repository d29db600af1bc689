// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package service implements the application workflows between the HTTP
// handlers and the stores. Services classify failures with apperrors so
// the HTTP layer can map them to status codes without inspecting causes.
package service

import (
	"context"
	"errors"
	"log/slog"

	"blogapi/internal/apperrors"
	"blogapi/internal/auth"
	"blogapi/internal/models"
	"blogapi/internal/store"
)

// UserRepo is the slice of the user store the auth service needs.
type UserRepo interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id string) error
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

// LoginInput carries the login credentials. Accounts log in by email.
type LoginInput struct {
	Email    string
	Password string
}

// AuthService implements registration, login, and profile lookup.
type AuthService struct {
	users  UserRepo
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(users UserRepo, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Register creates a new account and returns it with a signed session
// token. Duplicate usernames or emails fail with a conflict.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	existing, err := s.users.FindByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, "", apperrors.Internal("could not register", err)
	}
	if existing != nil {
		return nil, "", apperrors.Conflict("username or email already exists")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", apperrors.Internal("could not register", err)
	}

	displayName := in.DisplayName
	if displayName == "" {
		displayName = in.Username
	}

	u := &models.User{
		Username:    in.Username,
		Email:       in.Email,
		Password:    hash,
		DisplayName: displayName,
		Role:        models.RoleUser,
		IsActive:    true,
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		// The pre-check races with concurrent registrations; the unique
		// index is the real guard.
		if errors.Is(err, store.ErrDuplicate) {
			return nil, "", apperrors.Conflict("username or email already exists")
		}
		return nil, "", apperrors.Internal("could not register", err)
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		return nil, "", apperrors.Internal("could not register", err)
	}

	s.logger.Info("user registered", "user", models.RefString(created.ID), "username", created.Username)
	return created, token, nil
}

// Login verifies credentials and returns the account with a signed session
// token. Unknown emails and wrong passwords fail identically so addresses
// cannot be probed.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, string, error) {
	u, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", apperrors.Internal("could not log in", err)
	}
	if u == nil || !auth.VerifyPassword(in.Password, u.Password) {
		return nil, "", apperrors.Unauthorized("invalid credentials")
	}
	if !u.IsActive {
		return nil, "", apperrors.Unauthorized("account is disabled")
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, "", apperrors.Internal("could not log in", err)
	}

	// Best effort: a failed timestamp must not fail the login.
	if err := s.users.UpdateLastLogin(ctx, models.RefString(u.ID)); err != nil {
		s.logger.Warn("update last login", "user", models.RefString(u.ID), "error", err)
	}

	return u, token, nil
}

// Profile returns the account for an authenticated user id.
func (s *AuthService) Profile(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("could not load profile", err)
	}
	if u == nil {
		return nil, apperrors.NotFound("user not found")
	}
	return u, nil
}
