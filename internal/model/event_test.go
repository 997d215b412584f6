package model

import (
	"encoding/json"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
)

func TestClientEvent_Decode(t *testing.T) {
	channelID := uuid.Must(uuid.NewV7())

	t.Run("authenticate", func(t *testing.T) {
		ev, err := DecodeClientEvent([]byte(`{"type":"Authenticate","token":"abc"}`))
		require.NoError(t, err)
		require.Equal(t, Authenticate{Token: "abc"}, ev)
	})

	t.Run("ping", func(t *testing.T) {
		ev, err := DecodeClientEvent([]byte(`{"type":"Ping","ts":123}`))
		require.NoError(t, err)
		require.Equal(t, Ping{TS: 123}, ev)
	})

	t.Run("typing start maps to the request variant", func(t *testing.T) {
		raw := []byte(`{"type":"TypingStart","channel_id":"` + channelID.String() + `"}`)
		ev, err := DecodeClientEvent(raw)
		require.NoError(t, err)
		require.Equal(t, TypingStartRequest{ChannelID: channelID}, ev)
	})

	t.Run("subscribe", func(t *testing.T) {
		raw := []byte(`{"type":"Subscribe","channel_id":"` + channelID.String() + `"}`)
		ev, err := DecodeClientEvent(raw)
		require.NoError(t, err)
		require.Equal(t, Subscribe{ChannelID: channelID}, ev)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := DecodeClientEvent([]byte(`{"type":"Nope"}`))
		require.Error(t, err)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := DecodeClientEvent([]byte(`{broken`))
		require.Error(t, err)
	})
}

func TestClientEvent_RoundTrip(t *testing.T) {
	events := []ClientEvent{
		Authenticate{Token: "tok"},
		Ping{TS: 9},
		TypingStartRequest{ChannelID: uuid.Must(uuid.NewV7())},
		Subscribe{ChannelID: uuid.Must(uuid.NewV7())},
	}
	for _, ev := range events {
		data, err := json.Marshal(ev)
		require.NoError(t, err)
		got, err := DecodeClientEvent(data)
		require.NoError(t, err)
		require.Equal(t, ev, got)
	}
}

func TestServerEvent_DiscriminatorIsInline(t *testing.T) {
	content := "hello"
	msg := Message{
		ID:          uuid.Must(uuid.NewV7()),
		ChannelID:   uuid.Must(uuid.NewV7()),
		AuthorID:    uuid.Must(uuid.NewV7()),
		Content:     &content,
		Attachments: []Attachment{},
		Embeds:      []Embed{},
		Mentions:    []uuid.UUID{},
	}

	data, err := json.Marshal(MessageCreate{Message: msg})
	require.NoError(t, err)

	// Variant fields sit next to the tag, not under a nested key.
	var flat map[string]any
	require.NoError(t, json.Unmarshal(data, &flat))
	require.Equal(t, "MessageCreate", flat["type"])
	require.Equal(t, msg.ID.String(), flat["id"])
	require.Equal(t, content, flat["content"])
	require.NotContains(t, flat, "message")

	got, err := DecodeServerEvent(data)
	require.NoError(t, err)
	mc, ok := got.(MessageCreate)
	require.True(t, ok)
	require.Equal(t, msg.ID, mc.ID)
}

func TestServerEvent_RoundTrip(t *testing.T) {
	userID := uuid.Must(uuid.NewV7())
	channelID := uuid.Must(uuid.NewV7())

	events := []ServerEvent{
		Ready{
			User:     PartialUser{ID: userID, Status: StatusOnline},
			Servers:  []Server{},
			Channels: []Channel{},
			Members:  []Member{},
		},
		Pong{TS: 4},
		MessageDelete{ID: uuid.Must(uuid.NewV7()), ChannelID: channelID},
		ChannelDelete{ID: channelID},
		PresenceUpdate{UserID: userID, Status: StatusIdle},
		VoiceJoin{ChannelID: channelID, UserID: userID},
		VoiceLeave{ChannelID: channelID, UserID: userID},
		TypingStart{ChannelID: channelID, UserID: userID},
	}
	for _, ev := range events {
		data, err := json.Marshal(ev)
		require.NoError(t, err)
		got, err := DecodeServerEvent(data)
		require.NoError(t, err, "%s", data)
		require.Equal(t, ev, got)
	}
}

func TestServerEvent_TypingStartDecodesToBroadcast(t *testing.T) {
	channelID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())
	raw := []byte(`{"type":"TypingStart","channel_id":"` + channelID.String() + `","user_id":"` + userID.String() + `"}`)

	got, err := DecodeServerEvent(raw)
	require.NoError(t, err)
	require.Equal(t, TypingStart{ChannelID: channelID, UserID: userID}, got)
}
