// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"strings"
	"time"

	surreal "github.com/surrealdb/surrealdb.go/pkg/models"
)

// MediaTable is the SurrealDB table holding media documents.
const MediaTable = "media"

// MediaType is the broad category of an uploaded file.
type MediaType string

const (
	MediaTypeImage    MediaType = "image"
	MediaTypeVideo    MediaType = "video"
	MediaTypeAudio    MediaType = "audio"
	MediaTypeDocument MediaType = "document"
	MediaTypeOther    MediaType = "other"
)

// MediaTypeFromMIME maps a MIME type to the broad media category.
func MediaTypeFromMIME(mime string) MediaType {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return MediaTypeImage
	case strings.HasPrefix(mime, "video/"):
		return MediaTypeVideo
	case strings.HasPrefix(mime, "audio/"):
		return MediaTypeAudio
	case mime == "application/pdf", strings.HasPrefix(mime, "text/"):
		return MediaTypeDocument
	default:
		return MediaTypeOther
	}
}

// Media represents an uploaded file stored in S3-compatible object storage.
// Key is the object key inside the bucket; URL is the public address the
// file is served from.
type Media struct {
	ID           *surreal.RecordID `json:"-" cbor:"id,omitempty"`
	Filename     string            `json:"filename" cbor:"filename"`
	OriginalName string            `json:"originalName" cbor:"original_name"`
	MimeType     string            `json:"mimeType" cbor:"mime_type"`
	Type         MediaType         `json:"type" cbor:"type"`
	Size         int64             `json:"size" cbor:"size"`
	URL          string            `json:"url" cbor:"url"`
	Key          string            `json:"-" cbor:"key"`
	AltText      string            `json:"altText,omitempty" cbor:"alt_text"`
	Caption      string            `json:"caption,omitempty" cbor:"caption"`
	UploadedBy   *surreal.RecordID `json:"-" cbor:"uploaded_by"`
	CreatedAt    time.Time         `json:"createdAt" cbor:"created_at"`
	UpdatedAt    time.Time         `json:"updatedAt" cbor:"updated_at"`
}

// MarshalJSON renders record references as plain "table:<id>" strings.
func (m Media) MarshalJSON() ([]byte, error) {
	type alias Media
	return json.Marshal(struct {
		ID         string `json:"id"`
		UploadedBy string `json:"uploadedBy"`
		alias
	}{
		ID:         RefString(m.ID),
		UploadedBy: RefString(m.UploadedBy),
		alias:      alias(m),
	})
}
