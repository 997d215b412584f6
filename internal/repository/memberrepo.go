package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/emberchat/ember/internal/model"
)

// MembershipRepository answers access questions for servers and channels.
type MembershipRepository interface {
	// IsMember reports whether the user belongs to the server.
	IsMember(ctx context.Context, serverID, userID uuid.UUID) (bool, error)
	// AddMember inserts a membership row; errs.ErrAlreadyExists if present.
	AddMember(ctx context.Context, serverID, userID uuid.UUID) (*model.Member, error)
	// UserChannelIDs returns every channel the user can access through
	// server memberships.
	UserChannelIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	// ChannelServerID resolves the owning server of a channel.
	// errs.ErrNotFound for unknown channels and for channels without a
	// server (direct messages).
	ChannelServerID(ctx context.Context, channelID uuid.UUID) (uuid.UUID, error)
}
