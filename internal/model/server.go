package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Server is a named community owning channels and members.
type Server struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	OwnerID     uuid.UUID `json:"owner_id"`
	IconURL     *string   `json:"icon_url"`
	BannerURL   *string   `json:"banner_url"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Member links a user to a server.
type Member struct {
	ServerID uuid.UUID `json:"server_id"`
	UserID   uuid.UUID `json:"user_id"`
	Nickname *string   `json:"nickname"`
	JoinedAt time.Time `json:"joined_at"`
}

// Invite is a redeemable code granting membership in a server.
type Invite struct {
	Code      string     `json:"code"`
	ServerID  uuid.UUID  `json:"server_id"`
	ChannelID *uuid.UUID `json:"channel_id"`
	CreatorID uuid.UUID  `json:"creator_id"`
	MaxUses   *int32     `json:"max_uses"`
	Uses      int32      `json:"uses"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}
