package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/emberchat/ember/internal/errs"
	"github.com/emberchat/ember/internal/model"
)

func TestInviteRepo_Create(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewInviteRepo(db)
	inv := &model.Invite{
		Code:      "abc12345",
		ServerID:  uuid.Must(uuid.NewV7()),
		CreatorID: uuid.Must(uuid.NewV7()),
	}

	mock.ExpectQuery(`INSERT INTO invites`).
		WithArgs(inv.Code, inv.ServerID, inv.CreatorID).
		WillReturnRows(pgxmock.NewRows([]string{"uses", "created_at"}).AddRow(int32(0), time.Now()))
	require.NoError(t, r.Create(context.Background(), inv))

	mock.ExpectQuery(`INSERT INTO invites`).
		WithArgs(inv.Code, inv.ServerID, inv.CreatorID).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	require.ErrorIs(t, r.Create(context.Background(), inv), errs.ErrAlreadyExists)
}

func TestInviteRepo_Use(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewInviteRepo(db)
	ctx := context.Background()
	serverID := uuid.Must(uuid.NewV7())
	creatorID := uuid.Must(uuid.NewV7())

	mock.ExpectQuery(`UPDATE invites SET uses = uses \+ 1`).
		WithArgs("good-code").
		WillReturnRows(pgxmock.NewRows([]string{
			"code", "server_id", "channel_id", "creator_id", "max_uses", "uses", "expires_at", "created_at",
		}).AddRow("good-code", serverID, (*uuid.UUID)(nil), creatorID, (*int32)(nil), int32(1), (*time.Time)(nil), time.Now()))
	inv, err := r.Use(ctx, "good-code")
	require.NoError(t, err)
	require.Equal(t, serverID, inv.ServerID)
	require.Equal(t, int32(1), inv.Uses)

	// Exhausted or expired codes match no row.
	mock.ExpectQuery(`UPDATE invites SET uses = uses \+ 1`).
		WithArgs("dead-code").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.Use(ctx, "dead-code")
	require.ErrorIs(t, err, errs.ErrNotFound)
}
