// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON HTTP API. Every response uses the
// same envelope: {"success": bool, "message": string, "code": int,
// "data": ...}, with code carrying the HTTP status on failure and 0 on
// success.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"blogapi/internal/apperrors"
)

// maxBodySize caps JSON request bodies at 1 MiB.
const maxBodySize = 1 << 20

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// respond writes a success envelope.
func respond(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Message: message, Data: data}); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// respondError classifies err and writes a failure envelope. Internal
// causes are logged but never sent to the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(apperrors.KindOf(err))
	if status == http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{
		Success: false,
		Message: apperrors.MessageOf(err),
		Code:    status,
	})
}

// respondBadRequest is a shortcut for handler-level validation failures.
func respondBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	respondError(w, r, apperrors.BadRequest(msg))
}

func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindBadRequest:
		return http.StatusBadRequest
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a JSON request body into dst with a size cap.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperrors.BadRequest("request body too large")
		}
		return apperrors.BadRequest("invalid request body")
	}
	return nil
}
