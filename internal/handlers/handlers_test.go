// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handlers_test.go provides shared fakes and helpers for the handler
// tests. The handlers are exercised through a real router over in-memory
// repositories, so the tests cover routing, middleware, validation, and
// the response envelope together.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"blogapi/internal/auth"
	"blogapi/internal/handlers"
	"blogapi/internal/models"
	"blogapi/internal/router"
	"blogapi/internal/service"
	"blogapi/internal/store"
)

// fakeDB is a single in-memory backing store shared by all fake repos of
// one test app.
type fakeDB struct {
	users      map[string]*models.User
	posts      map[string]*models.Post
	comments   map[string]*models.Comment
	categories map[string]*models.Category
	media      map[string]*models.Media
}

type fakeUsers struct{ db *fakeDB }

func (f *fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	for _, existing := range f.db.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, store.ErrDuplicate
		}
	}
	if u.ID == nil {
		u.ID = models.NewRef(models.UserTable)
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.db.users[u.ID.String()] = u
	return u, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	return f.db.users[models.Ref(models.UserTable, id).String()], nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) FindByUsernameOrEmail(_ context.Context, username, email string) (*models.User, error) {
	for _, u := range f.db.users {
		if u.Username == username || u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) UpdateLastLogin(_ context.Context, _ string) error { return nil }

type fakePosts struct{ db *fakeDB }

func (f *fakePosts) Create(_ context.Context, p *models.Post) (*models.Post, error) {
	for _, existing := range f.db.posts {
		if existing.Slug == p.Slug {
			return nil, store.ErrDuplicate
		}
	}
	if p.ID == nil {
		p.ID = models.NewRef(models.PostTable)
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == models.PostStatusPublished && p.PublishedAt == nil {
		p.PublishedAt = &now
	}
	f.db.posts[p.ID.String()] = p
	return p, nil
}

func (f *fakePosts) FindByID(_ context.Context, id string) (*models.Post, error) {
	return f.db.posts[models.Ref(models.PostTable, id).String()], nil
}

func (f *fakePosts) FindBySlug(_ context.Context, slug string) (*models.Post, error) {
	for _, p := range f.db.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePosts) FindPaginated(_ context.Context, page, limit int) (*store.PostPage, error) {
	all := make([]models.Post, 0, len(f.db.posts))
	for _, p := range f.db.posts {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return &store.PostPage{Posts: all[start:end], Total: int64(len(all))}, nil
}

func (f *fakePosts) Update(_ context.Context, p *models.Post, _ string) (*models.Post, error) {
	f.db.posts[p.ID.String()] = p
	return p, nil
}

func (f *fakePosts) Delete(_ context.Context, id string) (bool, error) {
	key := models.Ref(models.PostTable, id).String()
	if _, ok := f.db.posts[key]; !ok {
		return false, nil
	}
	delete(f.db.posts, key)
	return true, nil
}

func (f *fakePosts) IncrementViews(_ context.Context, _ string) error { return nil }

type fakeCategories struct{ db *fakeDB }

func (f *fakeCategories) MissingIDs(_ context.Context, ids []string) ([]string, error) {
	var missing []string
	for _, id := range ids {
		if _, ok := f.db.categories[models.Ref(models.CategoryTable, id).String()]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (f *fakeCategories) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	for _, existing := range f.db.categories {
		if existing.Slug == c.Slug {
			return nil, store.ErrDuplicate
		}
	}
	if c.ID == nil {
		c.ID = models.NewRef(models.CategoryTable)
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.db.categories[c.ID.String()] = c
	return c, nil
}

func (f *fakeCategories) FindByID(_ context.Context, id string) (*models.Category, error) {
	return f.db.categories[models.Ref(models.CategoryTable, id).String()], nil
}

func (f *fakeCategories) FindBySlug(_ context.Context, slug string) (*models.Category, error) {
	for _, c := range f.db.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategories) List(_ context.Context) ([]models.Category, error) {
	out := make([]models.Category, 0, len(f.db.categories))
	for _, c := range f.db.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategories) Update(_ context.Context, c *models.Category) (*models.Category, error) {
	f.db.categories[c.ID.String()] = c
	return c, nil
}

func (f *fakeCategories) Delete(_ context.Context, id string) (bool, error) {
	key := models.Ref(models.CategoryTable, id).String()
	if _, ok := f.db.categories[key]; !ok {
		return false, nil
	}
	delete(f.db.categories, key)
	return true, nil
}

type fakeComments struct{ db *fakeDB }

func (f *fakeComments) Create(_ context.Context, c *models.Comment) (*models.Comment, error) {
	if c.ID == nil {
		c.ID = models.NewRef(models.CommentTable)
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.db.comments[c.ID.String()] = c
	return c, nil
}

func (f *fakeComments) FindByID(_ context.Context, id string) (*models.Comment, error) {
	return f.db.comments[models.Ref(models.CommentTable, id).String()], nil
}

func (f *fakeComments) ListApprovedByPost(_ context.Context, postID string) ([]models.Comment, error) {
	want := models.Ref(models.PostTable, postID).String()
	var out []models.Comment
	for _, c := range f.db.comments {
		if models.RefString(c.Post) == want && c.Status == models.CommentStatusApproved {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeComments) UpdateStatus(_ context.Context, id string, status models.CommentStatus) (*models.Comment, error) {
	c := f.db.comments[models.Ref(models.CommentTable, id).String()]
	if c == nil {
		return nil, nil
	}
	c.Status = status
	return c, nil
}

func (f *fakeComments) Delete(_ context.Context, id string) (bool, error) {
	key := models.Ref(models.CommentTable, id).String()
	if _, ok := f.db.comments[key]; !ok {
		return false, nil
	}
	delete(f.db.comments, key)
	return true, nil
}

type fakeMedia struct{ db *fakeDB }

func (f *fakeMedia) Create(_ context.Context, m *models.Media) (*models.Media, error) {
	if m.ID == nil {
		m.ID = models.NewRef(models.MediaTable)
	}
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	f.db.media[m.ID.String()] = m
	return m, nil
}

func (f *fakeMedia) FindByID(_ context.Context, id string) (*models.Media, error) {
	return f.db.media[models.Ref(models.MediaTable, id).String()], nil
}

func (f *fakeMedia) List(_ context.Context) ([]models.Media, error) {
	out := make([]models.Media, 0, len(f.db.media))
	for _, m := range f.db.media {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMedia) Delete(_ context.Context, id string) (*models.Media, error) {
	key := models.Ref(models.MediaTable, id).String()
	m, ok := f.db.media[key]
	if !ok {
		return nil, nil
	}
	delete(f.db.media, key)
	return m, nil
}

// testApp is a fully wired router over in-memory repositories.
type testApp struct {
	router chi.Router
	db     *fakeDB
	tokens *auth.TokenService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := &fakeDB{
		users:      make(map[string]*models.User),
		posts:      make(map[string]*models.Post),
		comments:   make(map[string]*models.Comment),
		categories: make(map[string]*models.Category),
		media:      make(map[string]*models.Media),
	}
	tokens := auth.NewTokenService("test-secret", time.Hour)

	authSvc := service.NewAuthService(&fakeUsers{db}, tokens, logger)
	postSvc := service.NewPostService(&fakePosts{db}, &fakeCategories{db}, &fakeUsers{db}, logger)
	categorySvc := service.NewCategoryService(&fakeCategories{db}, logger)
	commentSvc := service.NewCommentService(&fakeComments{db}, &fakePosts{db}, logger)
	mediaSvc := service.NewMediaService(&fakeMedia{db}, nil, logger)

	r := router.New(tokens, router.Handlers{
		Auth:       handlers.NewAuthHandler(authSvc),
		Posts:      handlers.NewPostHandler(postSvc),
		Categories: handlers.NewCategoryHandler(categorySvc),
		Comments:   handlers.NewCommentHandler(commentSvc, authSvc),
		Media:      handlers.NewMediaHandler(mediaSvc),
	})

	return &testApp{router: r, db: db, tokens: tokens}
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var resp apiResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, resp
}

// register creates an account through the API and returns its token.
func (a *testApp) register(t *testing.T, username string) string {
	t.Helper()
	rec, resp := a.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %s", username, rec.Code, rec.Body.String())
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode register data: %v", err)
	}
	return data.Token
}

// adminToken mints a token carrying the admin role for an existing user.
func (a *testApp) adminToken(t *testing.T) string {
	t.Helper()
	token, err := a.tokens.Issue(&models.User{
		ID:       models.Ref(models.UserTable, "root"),
		Username: "root",
		Email:    "root@example.com",
		Role:     models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("issue admin token: %v", err)
	}
	return token
}
