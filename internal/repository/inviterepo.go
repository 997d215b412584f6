package repository

import (
	"context"

	"github.com/emberchat/ember/internal/model"
)

// InviteRepository stores redeemable invite codes.
type InviteRepository interface {
	// Create inserts a new invite.
	Create(ctx context.Context, inv *model.Invite) error
	// Use atomically consumes one use of the code, honoring max_uses and
	// expiry; errs.ErrNotFound when the code is unknown or exhausted.
	Use(ctx context.Context, code string) (*model.Invite, error)
}
