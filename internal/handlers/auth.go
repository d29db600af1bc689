// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"blogapi/internal/apperrors"
	"blogapi/internal/middleware"
	"blogapi/internal/service"
)

// AuthHandler serves registration, login, and profile endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" {
		respondBadRequest(w, r, "username is required")
		return
	}
	if !validEmail(req.Email) {
		respondBadRequest(w, r, "a valid email is required")
		return
	}
	if len(req.Password) < minPasswordLen {
		respondBadRequest(w, r, fmt.Sprintf("password must be at least %d characters", minPasswordLen))
		return
	}

	user, token, err := h.auth.Register(r.Context(), service.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: strings.TrimSpace(req.DisplayName),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusCreated, "registered", map[string]any{
		"user":  user,
		"token": token,
	})
}

// Login handles POST /api/auth/login. Absent credentials are treated like
// wrong ones, so probing requests learn nothing from the status code.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, r, apperrors.Unauthorized("invalid credentials"))
		return
	}

	user, token, err := h.auth.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, "logged in", map[string]any{
		"user":  user,
		"token": token,
	})
}

// Profile handles GET /api/auth/profile. Requires authentication.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())

	user, err := h.auth.Profile(r.Context(), identity.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, "", map[string]any{"user": user})
}
