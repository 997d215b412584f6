// Package model defines domain entities and the wire-level event protocol.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// UserStatus is the presence state advertised for a user.
type UserStatus string

const (
	StatusOffline      UserStatus = "offline"
	StatusOnline       UserStatus = "online"
	StatusIdle         UserStatus = "idle"
	StatusDoNotDisturb UserStatus = "do_not_disturb"
	StatusInvisible    UserStatus = "invisible"
)

// User represents an account stored on the server. The password hash is
// a self-contained argon2id string and never leaves the server.
type User struct {
	ID            uuid.UUID  `json:"id"`
	Username      string     `json:"username"`
	Discriminator string     `json:"discriminator"`
	DisplayName   *string    `json:"display_name"`
	AvatarURL     *string    `json:"avatar_url"`
	Email         *string    `json:"email"`
	PasswordHash  string     `json:"-"`
	Status        UserStatus `json:"status"`
	Flags         int32      `json:"flags"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// PartialUser is the trimmed user shape carried inside gateway events.
type PartialUser struct {
	ID            uuid.UUID  `json:"id"`
	Username      string     `json:"username"`
	Discriminator string     `json:"discriminator"`
	DisplayName   *string    `json:"display_name"`
	AvatarURL     *string    `json:"avatar_url"`
	Status        UserStatus `json:"status"`
}

// Session is the audit record minted on every successful login or
// registration. Write-only: token validation never reads it back.
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	TokenHash string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
