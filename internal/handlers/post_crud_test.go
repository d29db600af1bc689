// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

// createPost posts a minimal valid article and returns its id.
func createPost(t *testing.T, app *testApp, token, title string) string {
	t.Helper()
	rec, resp := app.do(t, http.MethodPost, "/api/posts/create", token, map[string]any{
		"title":   title,
		"content": "some content",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create post: status %d, body %s", rec.Code, rec.Body.String())
	}
	var data struct {
		Post struct {
			ID string `json:"id"`
		} `json:"post"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	return data.Post.ID
}

func TestPostCreate(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		app := newTestApp(t)
		rec, _ := app.do(t, http.MethodPost, "/api/posts/create", "", map[string]any{
			"title": "T", "content": "c",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rec.Code)
		}
	})

	t.Run("requires title and content", func(t *testing.T) {
		app := newTestApp(t)
		token := app.register(t, "alice")

		rec, _ := app.do(t, http.MethodPost, "/api/posts/create", token, map[string]any{
			"content": "c",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("missing title: status %d, want 400", rec.Code)
		}
		rec, _ = app.do(t, http.MethodPost, "/api/posts/create", token, map[string]any{
			"title": "T",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("missing content: status %d, want 400", rec.Code)
		}
	})

	t.Run("creates and is readable", func(t *testing.T) {
		app := newTestApp(t)
		token := app.register(t, "alice")
		id := createPost(t, app, token, "My First Post")

		rec, resp := app.do(t, http.MethodGet, "/api/posts/"+id, "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("get: status %d, body %s", rec.Code, rec.Body.String())
		}
		var data struct {
			Post struct {
				Title string `json:"title"`
				Slug  string `json:"slug"`
			} `json:"post"`
		}
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if data.Post.Title != "My First Post" {
			t.Errorf("title: got %q", data.Post.Title)
		}
		if data.Post.Slug != "my-first-post" {
			t.Errorf("slug: got %q", data.Post.Slug)
		}

		// Same post by slug.
		rec, _ = app.do(t, http.MethodGet, "/api/posts/slug/my-first-post", "", nil)
		if rec.Code != http.StatusOK {
			t.Errorf("get by slug: status %d", rec.Code)
		}
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		app := newTestApp(t)
		token := app.register(t, "alice")
		rec, _ := app.do(t, http.MethodPost, "/api/posts/create", token, map[string]any{
			"title": "T", "content": "c", "categories": []string{"ghost"},
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rec.Code)
		}
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		app := newTestApp(t)
		token := app.register(t, "alice")
		createPost(t, app, token, "Same Title")
		rec, _ := app.do(t, http.MethodPost, "/api/posts/create", token, map[string]any{
			"title": "Same Title", "content": "c",
		})
		if rec.Code != http.StatusConflict {
			t.Errorf("status: got %d, want 409", rec.Code)
		}
	})
}

func TestPostList(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "alice")
	for i := 0; i < 5; i++ {
		createPost(t, app, token, fmt.Sprintf("Post %d", i))
	}

	type listData struct {
		Posts      []json.RawMessage `json:"posts"`
		Total      int64             `json:"total"`
		Page       int               `json:"page"`
		TotalPages int64             `json:"totalPages"`
	}
	list := func(t *testing.T, query string) listData {
		t.Helper()
		rec, resp := app.do(t, http.MethodGet, "/api/posts/"+query, "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("list %q: status %d, body %s", query, rec.Code, rec.Body.String())
		}
		var data listData
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		return data
	}

	t.Run("defaults", func(t *testing.T) {
		data := list(t, "")
		if len(data.Posts) != 5 {
			t.Errorf("posts: got %d, want 5", len(data.Posts))
		}
		if data.Total != 5 || data.Page != 1 || data.TotalPages != 1 {
			t.Errorf("got total=%d page=%d totalPages=%d", data.Total, data.Page, data.TotalPages)
		}
	})

	t.Run("explicit page and limit", func(t *testing.T) {
		data := list(t, "?page=2&limit=2")
		if len(data.Posts) != 2 {
			t.Errorf("posts: got %d, want 2", len(data.Posts))
		}
		if data.TotalPages != 3 {
			t.Errorf("totalPages: got %d, want 3", data.TotalPages)
		}
	})

	t.Run("out-of-range values are clamped", func(t *testing.T) {
		data := list(t, "?page=0&limit=-3")
		if data.Page != 1 {
			t.Errorf("page: got %d, want clamped to 1", data.Page)
		}
		if len(data.Posts) != 1 {
			t.Errorf("posts: got %d, want 1 (limit clamped to 1)", len(data.Posts))
		}

		data = list(t, "?limit=100000")
		if len(data.Posts) != 5 {
			t.Errorf("posts: got %d, want all 5 (limit clamped to 100)", len(data.Posts))
		}
	})

	t.Run("malformed values fall back to defaults", func(t *testing.T) {
		data := list(t, "?page=abc&limit=xyz")
		if data.Page != 1 || len(data.Posts) != 5 {
			t.Errorf("got page=%d posts=%d", data.Page, len(data.Posts))
		}
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		data := list(t, "?page=99")
		if len(data.Posts) != 0 {
			t.Errorf("posts: got %d, want 0", len(data.Posts))
		}
		if data.Posts == nil {
			t.Error("posts should encode as [] not null")
		}
	})
}

func TestPostUpdate(t *testing.T) {
	t.Run("author updates own post", func(t *testing.T) {
		app := newTestApp(t)
		token := app.register(t, "alice")
		id := createPost(t, app, token, "Original")

		rec, resp := app.do(t, http.MethodPut, "/api/posts/"+id, token, map[string]any{
			"title": "Edited",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
		}
		var data struct {
			Post struct {
				Title   string `json:"title"`
				Content string `json:"content"`
			} `json:"post"`
		}
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if data.Post.Title != "Edited" {
			t.Errorf("title: got %q", data.Post.Title)
		}
		if data.Post.Content != "some content" {
			t.Errorf("content changed unexpectedly: %q", data.Post.Content)
		}
	})

	t.Run("other user cannot update", func(t *testing.T) {
		app := newTestApp(t)
		alice := app.register(t, "alice")
		bob := app.register(t, "bob")
		id := createPost(t, app, alice, "Alice's Post")

		rec, _ := app.do(t, http.MethodPut, "/api/posts/"+id, bob, map[string]any{
			"title": "Hijacked",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rec.Code)
		}
	})

	t.Run("admin can update any post", func(t *testing.T) {
		app := newTestApp(t)
		alice := app.register(t, "alice")
		id := createPost(t, app, alice, "Alice's Post")

		rec, _ := app.do(t, http.MethodPut, "/api/posts/"+id, app.adminToken(t), map[string]any{
			"status": "archived",
		})
		if rec.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rec.Code)
		}
	})

	t.Run("missing post is 404", func(t *testing.T) {
		app := newTestApp(t)
		token := app.register(t, "alice")
		rec, _ := app.do(t, http.MethodPut, "/api/posts/ghost", token, map[string]any{
			"title": "X",
		})
		if rec.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rec.Code)
		}
	})
}

func TestPostDelete(t *testing.T) {
	t.Run("author deletes own post", func(t *testing.T) {
		app := newTestApp(t)
		token := app.register(t, "alice")
		id := createPost(t, app, token, "Doomed")

		rec, _ := app.do(t, http.MethodDelete, "/api/posts/"+id, token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
		}

		rec, _ = app.do(t, http.MethodGet, "/api/posts/"+id, "", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("after delete: status %d, want 404", rec.Code)
		}
	})

	t.Run("other user cannot delete", func(t *testing.T) {
		app := newTestApp(t)
		alice := app.register(t, "alice")
		bob := app.register(t, "bob")
		id := createPost(t, app, alice, "Protected")

		rec, _ := app.do(t, http.MethodDelete, "/api/posts/"+id, bob, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rec.Code)
		}
	})

	t.Run("deleting twice is 404", func(t *testing.T) {
		app := newTestApp(t)
		token := app.register(t, "alice")
		id := createPost(t, app, token, "Doomed")

		app.do(t, http.MethodDelete, "/api/posts/"+id, token, nil)
		rec, _ := app.do(t, http.MethodDelete, "/api/posts/"+id, token, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rec.Code)
		}
	})
}

func TestCategoryAdminGate(t *testing.T) {
	app := newTestApp(t)
	userToken := app.register(t, "alice")

	t.Run("regular user is rejected", func(t *testing.T) {
		rec, resp := app.do(t, http.MethodPost, "/api/categories/", userToken, map[string]any{
			"name": "Tech",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rec.Code)
		}
		if resp.Message != "insufficient permissions" {
			t.Errorf("message: got %q", resp.Message)
		}
	})

	t.Run("admin can create, everyone can read", func(t *testing.T) {
		rec, _ := app.do(t, http.MethodPost, "/api/categories/", app.adminToken(t), map[string]any{
			"name": "Tech",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create: status %d, body %s", rec.Code, rec.Body.String())
		}

		rec, resp := app.do(t, http.MethodGet, "/api/categories/", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("list: status %d", rec.Code)
		}
		var data struct {
			Categories []struct {
				Name string `json:"name"`
				Slug string `json:"slug"`
			} `json:"categories"`
		}
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if len(data.Categories) != 1 || data.Categories[0].Slug != "tech" {
			t.Errorf("categories: got %+v", data.Categories)
		}
	})
}

// createOpenPost posts an article with comments switched on and returns
// its id. Comments are off unless the author asks for them.
func createOpenPost(t *testing.T, app *testApp, token, title string) string {
	t.Helper()
	rec, resp := app.do(t, http.MethodPost, "/api/posts/create", token, map[string]any{
		"title":          title,
		"content":        "some content",
		"commentEnabled": true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create post: status %d, body %s", rec.Code, rec.Body.String())
	}
	var data struct {
		Post struct {
			ID string `json:"id"`
		} `json:"post"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	return data.Post.ID
}

func TestCommentFlow(t *testing.T) {
	app := newTestApp(t)
	author := app.register(t, "alice")
	postID := createOpenPost(t, app, author, "Discussed Post")

	t.Run("guest comment needs name and email", func(t *testing.T) {
		rec, _ := app.do(t, http.MethodPost, "/api/posts/"+postID+"/comments", "", map[string]any{
			"content": "anonymous drive-by",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rec.Code)
		}
	})

	var commentID string
	t.Run("guest comment is accepted as pending", func(t *testing.T) {
		rec, resp := app.do(t, http.MethodPost, "/api/posts/"+postID+"/comments", "", map[string]any{
			"content": "nice post",
			"name":    "Guest",
			"email":   "guest@example.com",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
		}
		var data struct {
			Comment struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"comment"`
		}
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if data.Comment.Status != "pending" {
			t.Errorf("status: got %q, want pending", data.Comment.Status)
		}
		commentID = data.Comment.ID
	})

	t.Run("pending comments are not listed", func(t *testing.T) {
		_, resp := app.do(t, http.MethodGet, "/api/posts/"+postID+"/comments", "", nil)
		var data struct {
			Comments []json.RawMessage `json:"comments"`
		}
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if len(data.Comments) != 0 {
			t.Errorf("comments: got %d, want 0", len(data.Comments))
		}
	})

	t.Run("moderation is admin only", func(t *testing.T) {
		rec, _ := app.do(t, http.MethodPut, "/api/comments/"+commentID+"/status", author, map[string]any{
			"status": "approved",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rec.Code)
		}
	})

	t.Run("approved comment becomes visible", func(t *testing.T) {
		rec, _ := app.do(t, http.MethodPut, "/api/comments/"+commentID+"/status", app.adminToken(t), map[string]any{
			"status": "approved",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("moderate: status %d, body %s", rec.Code, rec.Body.String())
		}

		_, resp := app.do(t, http.MethodGet, "/api/posts/"+postID+"/comments", "", nil)
		var data struct {
			Comments []struct {
				Content string `json:"content"`
			} `json:"comments"`
		}
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if len(data.Comments) != 1 || data.Comments[0].Content != "nice post" {
			t.Errorf("comments: got %+v", data.Comments)
		}
	})

	t.Run("logged-in comment is attributed", func(t *testing.T) {
		rec, resp := app.do(t, http.MethodPost, "/api/posts/"+postID+"/comments", author, map[string]any{
			"content": "thanks everyone",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
		}
		var data struct {
			Comment struct {
				Author struct {
					Name  string `json:"name"`
					Email string `json:"email"`
				} `json:"author"`
			} `json:"comment"`
		}
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if data.Comment.Author.Email != "alice@example.com" {
			t.Errorf("author email: got %q", data.Comment.Author.Email)
		}
	})

	t.Run("comments are off unless enabled at creation", func(t *testing.T) {
		closedID := createPost(t, app, author, "Closed Post")

		rec, resp := app.do(t, http.MethodPost, "/api/posts/"+closedID+"/comments", "", map[string]any{
			"content": "too late",
			"name":    "Guest",
			"email":   "guest@example.com",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rec.Code)
		}
		if resp.Message != "comments are disabled on this post" {
			t.Errorf("message: got %q", resp.Message)
		}
	})

	t.Run("comments can be switched off", func(t *testing.T) {
		toggledID := createOpenPost(t, app, author, "Toggled Post")
		rec, _ := app.do(t, http.MethodPut, "/api/posts/"+toggledID, author, map[string]any{
			"commentEnabled": false,
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("disable comments: status %d", rec.Code)
		}

		rec, _ = app.do(t, http.MethodPost, "/api/posts/"+toggledID+"/comments", "", map[string]any{
			"content": "late",
			"name":    "Guest",
			"email":   "guest@example.com",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rec.Code)
		}
	})
}
