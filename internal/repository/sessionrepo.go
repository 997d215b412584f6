package repository

import (
	"context"

	"github.com/emberchat/ember/internal/model"
)

// SessionRepository persists session audit records. Deliberately
// write-only: token validation is stateless and never reads these rows.
type SessionRepository interface {
	// Create inserts a session record keyed by a digest of the issued token.
	Create(ctx context.Context, s *model.Session) error
}
