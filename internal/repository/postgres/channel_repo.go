package postgres

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/emberchat/ember/internal/model"
)

// ChannelRepo implements ChannelRepository using PostgreSQL.
type ChannelRepo struct{ db *DB }

// NewChannelRepo constructs a channel repository.
func NewChannelRepo(db *DB) *ChannelRepo { return &ChannelRepo{db: db} }

// Create inserts a new channel row.
func (r *ChannelRepo) Create(ctx context.Context, c *model.Channel) error {
	const q = `
INSERT INTO channels (id, server_id, name, channel_type, topic, position)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at`
	err := r.db.Pool.QueryRow(ctx, q, c.ID, c.ServerID, c.Name, c.Type, c.Topic, c.Position).
		Scan(&c.CreatedAt)
	if err != nil {
		return storeErr(err)
	}
	return nil
}

// ListForServer selects a server's channels ordered by position.
func (r *ChannelRepo) ListForServer(ctx context.Context, serverID uuid.UUID) ([]model.Channel, error) {
	const q = `
SELECT id, server_id, name, channel_type, topic, position, created_at
FROM channels WHERE server_id = $1 ORDER BY position`
	rows, err := r.db.Pool.Query(ctx, q, serverID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	out := []model.Channel{}
	for rows.Next() {
		var c model.Channel
		if err := rows.Scan(&c.ID, &c.ServerID, &c.Name, &c.Type, &c.Topic, &c.Position, &c.CreatedAt); err != nil {
			return nil, storeErr(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}
