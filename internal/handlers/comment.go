// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/service"
)

// CommentHandler serves the comment endpoints. Submission is open to
// guests; moderation is admin-gated in the router.
type CommentHandler struct {
	comments *service.CommentService
	auth     *service.AuthService
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(comments *service.CommentService, auth *service.AuthService) *CommentHandler {
	return &CommentHandler{comments: comments, auth: auth}
}

// Create handles POST /api/posts/{id}/comments. A valid bearer token is
// optional; when present the comment is attributed to the account.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
		Parent  string `json:"parent"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Website string `json:"website"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respondBadRequest(w, r, "content is required")
		return
	}

	var user *models.User
	if identity := middleware.IdentityFromCtx(r.Context()); identity != nil {
		u, err := h.auth.Profile(r.Context(), identity.ID)
		if err != nil {
			respondError(w, r, err)
			return
		}
		user = u
	} else if !validEmail(req.Email) {
		respondBadRequest(w, r, "a valid email is required")
		return
	}

	comment, err := h.comments.Create(r.Context(), chi.URLParam(r, "id"), user, service.CreateCommentInput{
		Content: req.Content,
		Parent:  req.Parent,
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Website: strings.TrimSpace(req.Website),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusCreated, "comment submitted for moderation", map[string]any{"comment": comment})
}

// ListByPost handles GET /api/posts/{id}/comments. Only approved comments
// are returned.
func (h *CommentHandler) ListByPost(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListByPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	respond(w, http.StatusOK, "", map[string]any{"comments": comments})
}

// Moderate handles PUT /api/comments/{id}/status. Admin only.
func (h *CommentHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status models.CommentStatus `json:"status"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	comment, err := h.comments.Moderate(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "comment updated", map[string]any{"comment": comment})
}

// Delete handles DELETE /api/comments/{id}. Admin only.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.comments.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "comment deleted", nil)
}
