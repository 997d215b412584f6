package postgres

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/emberchat/ember/internal/model"
)

// ServerRepo implements ServerRepository using PostgreSQL.
type ServerRepo struct{ db *DB }

// NewServerRepo constructs a server repository.
func NewServerRepo(db *DB) *ServerRepo { return &ServerRepo{db: db} }

// Create inserts the server, the owner's membership and a default
// #general text channel in one transaction.
func (r *ServerRepo) Create(ctx context.Context, s *model.Server) error {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return storeErr(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const insServer = `
INSERT INTO servers (id, name, owner_id)
VALUES ($1, $2, $3)
RETURNING created_at`
	if err := tx.QueryRow(ctx, insServer, s.ID, s.Name, s.OwnerID).Scan(&s.CreatedAt); err != nil {
		return storeErr(err)
	}

	const insMember = `INSERT INTO members (server_id, user_id) VALUES ($1, $2)`
	if _, err := tx.Exec(ctx, insMember, s.ID, s.OwnerID); err != nil {
		return storeErr(err)
	}

	generalID, err := uuid.NewV7()
	if err != nil {
		return err
	}
	const insChannel = `
INSERT INTO channels (id, server_id, name, channel_type) VALUES ($1, $2, 'general', 'text')`
	if _, err := tx.Exec(ctx, insChannel, generalID, s.ID); err != nil {
		return storeErr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return storeErr(err)
	}
	return nil
}

// ListForUser selects servers joined through the members table, oldest first.
func (r *ServerRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Server, error) {
	const q = `
SELECT s.id, s.name, s.owner_id, s.icon_url, s.banner_url, s.description, s.created_at
FROM servers s
INNER JOIN members m ON m.server_id = s.id
WHERE m.user_id = $1
ORDER BY s.created_at`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	out := []model.Server{}
	for rows.Next() {
		var s model.Server
		if err := rows.Scan(&s.ID, &s.Name, &s.OwnerID, &s.IconURL, &s.BannerURL, &s.Description, &s.CreatedAt); err != nil {
			return nil, storeErr(err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}
