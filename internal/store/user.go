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

// UserStore handles all user-related database operations.
type UserStore struct {
	db *surrealdb.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *surrealdb.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user record. A missing ID gets a fresh one. Returns
// ErrDuplicate when the username or email is already taken.
func (s *UserStore) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if u.ID == nil {
		u.ID = models.NewRef(models.UserTable)
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	created, err := surrealdb.Create[models.User](ctx, s.db, *u.ID, u)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// FindByID retrieves a user by id. Returns nil if not found.
func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, err := surrealdb.Select[models.User](ctx, s.db, *models.Ref(models.UserTable, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// FindByUsername retrieves a user by username. Returns nil if not found.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx, "SELECT * FROM user WHERE username = $username", map[string]any{"username": username})
}

// FindByEmail retrieves a user by email address. Returns nil if not found.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, "SELECT * FROM user WHERE email = $email", map[string]any{"email": email})
}

// FindByUsernameOrEmail retrieves a user matching either field. Used by
// registration to detect an existing account before hashing a password.
func (s *UserStore) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	return s.findOne(ctx,
		"SELECT * FROM user WHERE username = $username OR email = $email",
		map[string]any{"username": username, "email": email})
}

// UpdateLastLogin stamps the user's last login time. Best effort: callers
// log failures but do not fail the login over it.
func (s *UserStore) UpdateLastLogin(ctx context.Context, id string) error {
	_, err := surrealdb.Query[any](ctx, s.db,
		"UPDATE type::thing($tb, $id) SET last_login = time::now(), updated_at = time::now()",
		map[string]any{"tb": models.UserTable, "id": models.Ref(models.UserTable, id).ID})
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// Update overwrites a user record. Returns nil if the record no longer
// exists.
func (s *UserStore) Update(ctx context.Context, u *models.User) (*models.User, error) {
	u.UpdatedAt = time.Now()
	updated, err := surrealdb.Update[models.User](ctx, s.db, *u.ID, u)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		if isDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

func (s *UserStore) findOne(ctx context.Context, query string, params map[string]any) (*models.User, error) {
	result, err := surrealdb.Query[[]models.User](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	if result == nil || len(*result) == 0 || len((*result)[0].Result) == 0 {
		return nil, nil
	}
	return &(*result)[0].Result[0], nil
}
