// Package models defines the document structures persisted to SurrealDB
// and provides the core types used throughout the application.
package models

import (
	"encoding/json"
	"time"

	surreal "github.com/surrealdb/surrealdb.go/pkg/models"
)

// UserTable is the SurrealDB table holding user documents.
const UserTable = "user"

// Role represents a user's permission level in the system.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// User represents a registered account. Username and email are globally
// unique (enforced by unique indexes). Password holds the argon2id hash,
// never the plaintext, and is never serialized to clients.
type User struct {
	ID          *surreal.RecordID `json:"-" cbor:"id,omitempty"`
	Username    string            `json:"username" cbor:"username"`
	Email       string            `json:"email" cbor:"email"`
	Password    string            `json:"-" cbor:"password"`
	DisplayName string            `json:"displayName" cbor:"display_name"`
	Avatar      string            `json:"avatar,omitempty" cbor:"avatar"`
	Bio         string            `json:"bio,omitempty" cbor:"bio"`
	Role        Role              `json:"role" cbor:"role"`
	IsActive    bool              `json:"isActive" cbor:"is_active"`
	LastLogin   *time.Time        `json:"lastLogin,omitempty" cbor:"last_login,omitempty"`
	CreatedAt   time.Time         `json:"createdAt" cbor:"created_at"`
	UpdatedAt   time.Time         `json:"updatedAt" cbor:"updated_at"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// MarshalJSON renders the record reference as a plain "user:<id>" string.
// The password hash stays excluded via its field tag.
func (u User) MarshalJSON() ([]byte, error) {
	type alias User
	return json.Marshal(struct {
		ID string `json:"id"`
		alias
	}{
		ID:    RefString(u.ID),
		alias: alias(u),
	})
}
