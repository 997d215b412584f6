package postgres

import (
	"context"

	"github.com/emberchat/ember/internal/model"
)

// SessionRepo implements SessionRepository using PostgreSQL.
type SessionRepo struct{ db *DB }

// NewSessionRepo constructs a session repository.
func NewSessionRepo(db *DB) *SessionRepo { return &SessionRepo{db: db} }

// Create inserts a session audit row. Nothing in this repository reads
// sessions back; validation is stateless.
func (r *SessionRepo) Create(ctx context.Context, s *model.Session) error {
	const q = `INSERT INTO sessions (id, user_id, token_hash) VALUES ($1, $2, $3)`
	if _, err := r.db.Pool.Exec(ctx, q, s.ID, s.UserID, s.TokenHash); err != nil {
		return storeErr(err)
	}
	return nil
}
