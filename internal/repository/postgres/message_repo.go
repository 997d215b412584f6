package postgres

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/emberchat/ember/internal/errs"
	"github.com/emberchat/ember/internal/model"
)

// MessageRepo implements MessageRepository using PostgreSQL.
type MessageRepo struct{ db *DB }

// NewMessageRepo constructs a message repository.
func NewMessageRepo(db *DB) *MessageRepo { return &MessageRepo{db: db} }

// Create inserts a new message row.
func (r *MessageRepo) Create(ctx context.Context, m *model.Message) error {
	const q = `
INSERT INTO messages (id, channel_id, author_id, content, replies_to)
VALUES ($1, $2, $3, $4, $5)
RETURNING pinned, created_at`
	err := r.db.Pool.QueryRow(ctx, q, m.ID, m.ChannelID, m.AuthorID, m.Content, m.RepliesTo).
		Scan(&m.Pinned, &m.CreatedAt)
	if err != nil {
		return storeErr(err)
	}
	return nil
}

// ListForChannel selects newest-first history with an optional ID cursor.
// UUIDv7 message IDs sort by creation time.
func (r *MessageRepo) ListForChannel(ctx context.Context, channelID uuid.UUID, before *uuid.UUID, limit int) ([]model.Message, error) {
	const base = `
SELECT id, channel_id, author_id, content, replies_to, pinned, edited_at, created_at
FROM messages WHERE channel_id = $1`

	var (
		q    string
		args []any
	)
	if before != nil {
		q = base + ` AND id < $2 ORDER BY id DESC LIMIT $3`
		args = []any{channelID, *before, limit}
	} else {
		q = base + ` ORDER BY id DESC LIMIT $2`
		args = []any{channelID, limit}
	}

	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	out := []model.Message{}
	for rows.Next() {
		m := model.Message{
			Attachments: []model.Attachment{},
			Embeds:      []model.Embed{},
			Mentions:    []uuid.UUID{},
		}
		if err := rows.Scan(&m.ID, &m.ChannelID, &m.AuthorID, &m.Content, &m.RepliesTo, &m.Pinned, &m.EditedAt, &m.CreatedAt); err != nil {
			return nil, storeErr(err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// Delete removes a message.
func (r *MessageRepo) Delete(ctx context.Context, id, channelID uuid.UUID) error {
	const q = `DELETE FROM messages WHERE id = $1 AND channel_id = $2`
	tag, err := r.db.Pool.Exec(ctx, q, id, channelID)
	if err != nil {
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
