package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/emberchat/ember/internal/errs"
	"github.com/emberchat/ember/internal/model"
)

// InviteRepo implements InviteRepository using PostgreSQL.
type InviteRepo struct{ db *DB }

// NewInviteRepo constructs an invite repository.
func NewInviteRepo(db *DB) *InviteRepo { return &InviteRepo{db: db} }

// Create inserts a new invite row.
func (r *InviteRepo) Create(ctx context.Context, inv *model.Invite) error {
	const q = `
INSERT INTO invites (code, server_id, creator_id)
VALUES ($1, $2, $3)
RETURNING uses, created_at`
	err := r.db.Pool.QueryRow(ctx, q, inv.Code, inv.ServerID, inv.CreatorID).
		Scan(&inv.Uses, &inv.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.ErrAlreadyExists
		}
		return storeErr(err)
	}
	return nil
}

// Use consumes one use of the code, enforcing max_uses and expiry in the
// same statement so concurrent redemptions cannot overshoot.
func (r *InviteRepo) Use(ctx context.Context, code string) (*model.Invite, error) {
	const q = `
UPDATE invites SET uses = uses + 1
WHERE code = $1
  AND (max_uses IS NULL OR uses < max_uses)
  AND (expires_at IS NULL OR expires_at > now())
RETURNING code, server_id, channel_id, creator_id, max_uses, uses, expires_at, created_at`
	var inv model.Invite
	err := r.db.Pool.QueryRow(ctx, q, code).
		Scan(&inv.Code, &inv.ServerID, &inv.ChannelID, &inv.CreatorID, &inv.MaxUses, &inv.Uses, &inv.ExpiresAt, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, storeErr(err)
	}
	return &inv, nil
}
