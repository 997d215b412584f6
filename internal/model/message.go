package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Message is a single chat message in a channel.
type Message struct {
	ID          uuid.UUID    `json:"id"`
	ChannelID   uuid.UUID    `json:"channel_id"`
	AuthorID    uuid.UUID    `json:"author_id"`
	Content     *string      `json:"content"`
	Attachments []Attachment `json:"attachments"`
	Embeds      []Embed      `json:"embeds"`
	Mentions    []uuid.UUID  `json:"mentions"`
	RepliesTo   *uuid.UUID   `json:"replies_to"`
	Pinned      bool         `json:"pinned"`
	EditedAt    *time.Time   `json:"edited_at"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Attachment is an uploaded file referenced by a message.
type Attachment struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        uint64    `json:"size"`
	URL         string    `json:"url"`
}

// Embed is rich inline content rendered with a message.
type Embed struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
	Color       *uint32 `json:"color"`
	ImageURL    *string `json:"image_url"`
}
