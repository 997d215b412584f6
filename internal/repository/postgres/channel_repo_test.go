package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/emberchat/ember/internal/model"
)

func TestChannelRepo_CreateAndList(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewChannelRepo(db)
	ctx := context.Background()
	serverID := uuid.Must(uuid.NewV7())
	c := &model.Channel{
		ID:       uuid.Must(uuid.NewV7()),
		ServerID: &serverID,
		Name:     "random",
		Type:     model.ChannelText,
	}

	mock.ExpectQuery(`INSERT INTO channels`).
		WithArgs(c.ID, c.ServerID, c.Name, c.Type, c.Topic, c.Position).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	require.NoError(t, r.Create(ctx, c))

	mock.ExpectQuery(`FROM channels WHERE server_id = \$1 ORDER BY position`).
		WithArgs(serverID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "server_id", "name", "channel_type", "topic", "position", "created_at",
		}).AddRow(c.ID, &serverID, c.Name, c.Type, (*string)(nil), int32(0), time.Now()))
	out, err := r.ListForServer(ctx, serverID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, c.ID, out[0].ID)
	require.Equal(t, serverID, *out[0].ServerID)
}
