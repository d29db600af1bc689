// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"blogapi/internal/apperrors"
	"blogapi/internal/models"
)

// MaxUploadSize caps media uploads at 10 MiB.
const MaxUploadSize = 10 << 20

// MediaRepo is the slice of the media store the media service needs.
type MediaRepo interface {
	Create(ctx context.Context, m *models.Media) (*models.Media, error)
	FindByID(ctx context.Context, id string) (*models.Media, error)
	List(ctx context.Context) ([]models.Media, error)
	Delete(ctx context.Context, id string) (*models.Media, error)
}

// ObjectStore is the object storage surface the media service needs.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
}

// UploadInput describes an incoming file.
type UploadInput struct {
	OriginalName string
	ContentType  string
	Size         int64
	Body         io.Reader
	AltText      string
	Caption      string
}

// MediaService stores uploaded files in object storage and tracks them as
// media records. A nil ObjectStore disables uploads.
type MediaService struct {
	media   MediaRepo
	objects ObjectStore
	logger  *slog.Logger
}

// NewMediaService creates a MediaService. objects may be nil when no
// storage is configured.
func NewMediaService(media MediaRepo, objects ObjectStore, logger *slog.Logger) *MediaService {
	return &MediaService{media: media, objects: objects, logger: logger}
}

// Upload streams a file to object storage and records it. The stored key
// is date-partitioned with a fresh UUID so original names never collide.
func (s *MediaService) Upload(ctx context.Context, uploaderID string, in UploadInput) (*models.Media, error) {
	if s.objects == nil {
		return nil, apperrors.BadRequest("media storage is not configured")
	}
	if in.Size <= 0 || in.Size > MaxUploadSize {
		return nil, apperrors.BadRequest(fmt.Sprintf("file size must be between 1 byte and %d bytes", MaxUploadSize))
	}

	ext := strings.ToLower(path.Ext(in.OriginalName))
	filename := uuid.NewString() + ext
	key := fmt.Sprintf("media/%s/%s", time.Now().Format("2006/01"), filename)

	url, err := s.objects.Upload(ctx, key, in.ContentType, in.Body, in.Size)
	if err != nil {
		return nil, apperrors.Internal("could not store file", err)
	}

	m := &models.Media{
		Filename:     filename,
		OriginalName: in.OriginalName,
		MimeType:     in.ContentType,
		Type:         models.MediaTypeFromMIME(in.ContentType),
		Size:         in.Size,
		URL:          url,
		Key:          key,
		AltText:      in.AltText,
		Caption:      in.Caption,
		UploadedBy:   models.Ref(models.UserTable, uploaderID),
	}

	created, err := s.media.Create(ctx, m)
	if err != nil {
		// The object is already stored; try not to leak it.
		if delErr := s.objects.Delete(ctx, key); delErr != nil {
			s.logger.Warn("remove orphaned object", "key", key, "error", delErr)
		}
		return nil, apperrors.Internal("could not record upload", err)
	}

	s.logger.Info("media uploaded", "media", models.RefString(created.ID), "key", key, "size", in.Size)
	return created, nil
}

// Get returns a media record by id.
func (s *MediaService) Get(ctx context.Context, id string) (*models.Media, error) {
	m, err := s.media.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("could not load media", err)
	}
	if m == nil {
		return nil, apperrors.NotFound("media not found")
	}
	return m, nil
}

// List returns all media records.
func (s *MediaService) List(ctx context.Context) ([]models.Media, error) {
	media, err := s.media.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("could not list media", err)
	}
	return media, nil
}

// Delete removes a media record and its stored object.
func (s *MediaService) Delete(ctx context.Context, id string) error {
	removed, err := s.media.Delete(ctx, id)
	if err != nil {
		return apperrors.Internal("could not delete media", err)
	}
	if removed == nil {
		return apperrors.NotFound("media not found")
	}

	if s.objects != nil && removed.Key != "" {
		if err := s.objects.Delete(ctx, removed.Key); err != nil {
			s.logger.Warn("remove stored object", "key", removed.Key, "error", err)
		}
	}
	return nil
}
