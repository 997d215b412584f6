package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/emberchat/ember/internal/errs"
	"github.com/emberchat/ember/internal/model"
)

// MemberRepo implements MembershipRepository using PostgreSQL.
type MemberRepo struct{ db *DB }

// NewMemberRepo constructs a membership repository.
func NewMemberRepo(db *DB) *MemberRepo { return &MemberRepo{db: db} }

// IsMember checks membership with a point query.
func (r *MemberRepo) IsMember(ctx context.Context, serverID, userID uuid.UUID) (bool, error) {
	const q = `SELECT 1 FROM members WHERE server_id = $1 AND user_id = $2`
	var one int
	err := r.db.Pool.QueryRow(ctx, q, serverID, userID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, storeErr(err)
	}
	return true, nil
}

// AddMember inserts a membership row.
func (r *MemberRepo) AddMember(ctx context.Context, serverID, userID uuid.UUID) (*model.Member, error) {
	const q = `
INSERT INTO members (server_id, user_id) VALUES ($1, $2)
ON CONFLICT DO NOTHING
RETURNING server_id, user_id, nickname, joined_at`
	var m model.Member
	err := r.db.Pool.QueryRow(ctx, q, serverID, userID).
		Scan(&m.ServerID, &m.UserID, &m.Nickname, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// conflict swallowed the insert: membership already present
			return nil, errs.ErrAlreadyExists
		}
		return nil, storeErr(err)
	}
	return &m, nil
}

// UserChannelIDs returns every channel reachable through the user's
// server memberships.
func (r *MemberRepo) UserChannelIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	const q = `
SELECT c.id
FROM channels c
INNER JOIN members m ON m.server_id = c.server_id
WHERE m.user_id = $1`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	out := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, storeErr(err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// ChannelServerID resolves the owning server of a channel. Channels with
// no server (direct messages) report ErrNotFound, matching the access
// checks that call this.
func (r *MemberRepo) ChannelServerID(ctx context.Context, channelID uuid.UUID) (uuid.UUID, error) {
	const q = `SELECT server_id FROM channels WHERE id = $1`
	var serverID *uuid.UUID
	err := r.db.Pool.QueryRow(ctx, q, channelID).Scan(&serverID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, errs.ErrNotFound
		}
		return uuid.Nil, storeErr(err)
	}
	if serverID == nil {
		return uuid.Nil, errs.ErrNotFound
	}
	return *serverID, nil
}
