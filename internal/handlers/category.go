// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"blogapi/internal/models"
	"blogapi/internal/service"
)

// CategoryHandler serves the category endpoints. Reads are public; writes
// are admin-gated in the router.
type CategoryHandler struct {
	categories *service.CategoryService
}

// NewCategoryHandler creates a CategoryHandler.
func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	respond(w, http.StatusOK, "", map[string]any{"categories": categories})
}

// Get handles GET /api/categories/{id}.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "", map[string]any{"category": category})
}

// Create handles POST /api/categories. Admin only.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
		Parent      string `json:"parent"`
		SortOrder   int    `json:"sortOrder"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondBadRequest(w, r, "name is required")
		return
	}

	category, err := h.categories.Create(r.Context(), service.CreateCategoryInput{
		Name:        strings.TrimSpace(req.Name),
		Slug:        req.Slug,
		Description: req.Description,
		Parent:      req.Parent,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusCreated, "category created", map[string]any{"category": category})
}

// Update handles PUT /api/categories/{id}. Admin only.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        *string `json:"name"`
		Slug        *string `json:"slug"`
		Description *string `json:"description"`
		Parent      *string `json:"parent"`
		SortOrder   *int    `json:"sortOrder"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	category, err := h.categories.Update(r.Context(), chi.URLParam(r, "id"), service.UpdateCategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Parent:      req.Parent,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, "category updated", map[string]any{"category": category})
}

// Delete handles DELETE /api/categories/{id}. Admin only.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "category deleted", nil)
}
