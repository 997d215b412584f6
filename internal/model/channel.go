package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// ChannelType distinguishes text, voice and direct-message channels.
type ChannelType string

const (
	ChannelText          ChannelType = "text"
	ChannelVoice         ChannelType = "voice"
	ChannelDirectMessage ChannelType = "direct_message"
	ChannelGroupDM       ChannelType = "group_dm"
)

// Channel is a single conversation stream, usually inside a server.
// ServerID is nil for direct-message channels.
type Channel struct {
	ID        uuid.UUID   `json:"id"`
	ServerID  *uuid.UUID  `json:"server_id"`
	Name      string      `json:"name"`
	Type      ChannelType `json:"channel_type"`
	Topic     *string     `json:"topic"`
	Position  int32       `json:"position"`
	CreatedAt time.Time   `json:"created_at"`
}
