package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/emberchat/ember/internal/model"
)

// MessageRepository stores chat messages.
type MessageRepository interface {
	// Create inserts a new message.
	Create(ctx context.Context, m *model.Message) error
	// ListForChannel returns newest-first history, optionally only
	// messages with an ID before the cursor.
	ListForChannel(ctx context.Context, channelID uuid.UUID, before *uuid.UUID, limit int) ([]model.Message, error)
	// Delete removes a message; errs.ErrNotFound if no row matched.
	Delete(ctx context.Context, id, channelID uuid.UUID) error
}
