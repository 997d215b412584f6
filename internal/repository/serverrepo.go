package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/emberchat/ember/internal/model"
)

// ServerRepository stores chat servers (guilds).
type ServerRepository interface {
	// Create inserts the server and, in the same transaction, the owner's
	// membership and a default #general text channel.
	Create(ctx context.Context, s *model.Server) error
	// ListForUser returns servers the user is a member of, oldest first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Server, error)
}
