package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/emberchat/ember/internal/model"
)

// ChannelRepository stores channels within servers.
type ChannelRepository interface {
	// Create inserts a new channel.
	Create(ctx context.Context, c *model.Channel) error
	// ListForServer returns a server's channels ordered by position.
	ListForServer(ctx context.Context, serverID uuid.UUID) ([]model.Channel, error)
}
