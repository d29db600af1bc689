// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/service"
)

// MediaHandler serves the media upload and management endpoints. All of
// them require authentication; deletion is admin-gated in the router.
type MediaHandler struct {
	media *service.MediaService
}

// NewMediaHandler creates a MediaHandler.
func NewMediaHandler(media *service.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// Upload handles POST /api/media. Expects a multipart form with the file
// under "file" and optional "altText" and "caption" fields.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxUploadSize+maxBodySize)
	if err := r.ParseMultipartForm(service.MaxUploadSize); err != nil {
		respondBadRequest(w, r, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondBadRequest(w, r, "a file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	identity := middleware.IdentityFromCtx(r.Context())
	media, err := h.media.Upload(r.Context(), identity.ID, service.UploadInput{
		OriginalName: header.Filename,
		ContentType:  contentType,
		Size:         header.Size,
		Body:         file,
		AltText:      r.FormValue("altText"),
		Caption:      r.FormValue("caption"),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusCreated, "file uploaded", map[string]any{"media": media})
}

// List handles GET /api/media.
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	media, err := h.media.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if media == nil {
		media = []models.Media{}
	}
	respond(w, http.StatusOK, "", map[string]any{"media": media})
}

// Get handles GET /api/media/{id}.
func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	media, err := h.media.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "", map[string]any{"media": media})
}

// Delete handles DELETE /api/media/{id}. Admin only.
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.media.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "media deleted", nil)
}
