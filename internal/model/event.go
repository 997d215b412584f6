package model

import (
	"encoding/json"
	"fmt"

	"github.com/gofrs/uuid/v5"
)

// Events cross the gateway as one JSON object per frame, tagged by a
// "type" discriminator with the variant's fields inline. Each variant
// carries its own serializer; decoding dispatches on the discriminator.

// ClientEvent is an event sent from client to server.
type ClientEvent interface{ clientEvent() }

// ServerEvent is an event sent from server to client.
type ServerEvent interface{ serverEvent() }

// --- Client -> Server ---

// Authenticate presents a session token during the handshake.
type Authenticate struct {
	Token string `json:"token"`
}

// Ping requests an echo of ts; answered in any connection state.
type Ping struct {
	TS uint64 `json:"ts"`
}

// TypingStartRequest asks the gateway to broadcast a typing indicator.
// Wire tag "TypingStart", same as the server-side broadcast.
type TypingStartRequest struct {
	ChannelID uuid.UUID `json:"channel_id"`
}

// Subscribe adds a channel topic to the connection's subscription set.
type Subscribe struct {
	ChannelID uuid.UUID `json:"channel_id"`
}

func (Authenticate) clientEvent()       {}
func (Ping) clientEvent()               {}
func (TypingStartRequest) clientEvent() {}
func (Subscribe) clientEvent()          {}

func (e Authenticate) MarshalJSON() ([]byte, error) {
	type alias Authenticate
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"Authenticate", alias(e)})
}

func (e Ping) MarshalJSON() ([]byte, error) {
	type alias Ping
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"Ping", alias(e)})
}

func (e TypingStartRequest) MarshalJSON() ([]byte, error) {
	type alias TypingStartRequest
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"TypingStart", alias(e)})
}

func (e Subscribe) MarshalJSON() ([]byte, error) {
	type alias Subscribe
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"Subscribe", alias(e)})
}

// --- Server -> Client ---

// Ready is sent once after a successful handshake. Channels and members
// are intentionally empty; clients fetch per-server detail over REST.
type Ready struct {
	User     PartialUser `json:"user"`
	Servers  []Server    `json:"servers"`
	Channels []Channel   `json:"channels"`
	Members  []Member    `json:"members"`
}

// Pong echoes the ts of a Ping.
type Pong struct {
	TS uint64 `json:"ts"`
}

// MessageCreate announces a newly persisted message; the message fields
// are inlined next to the discriminator.
type MessageCreate struct {
	Message
}

// MessageUpdate announces an edit.
type MessageUpdate struct {
	ID        uuid.UUID `json:"id"`
	ChannelID uuid.UUID `json:"channel_id"`
	Content   *string   `json:"content"`
}

// MessageDelete announces a deletion.
type MessageDelete struct {
	ID        uuid.UUID `json:"id"`
	ChannelID uuid.UUID `json:"channel_id"`
}

// ChannelCreate announces a new channel, fields inlined.
type ChannelCreate struct {
	Channel
}

// ChannelUpdate announces renames and topic changes.
type ChannelUpdate struct {
	ID    uuid.UUID `json:"id"`
	Name  *string   `json:"name"`
	Topic *string   `json:"topic"`
}

// ChannelDelete announces channel removal.
type ChannelDelete struct {
	ID uuid.UUID `json:"id"`
}

// PresenceUpdate announces a user's presence change.
type PresenceUpdate struct {
	UserID uuid.UUID  `json:"user_id"`
	Status UserStatus `json:"status"`
}

// VoiceJoin announces a user joining a voice channel.
type VoiceJoin struct {
	ChannelID uuid.UUID `json:"channel_id"`
	UserID    uuid.UUID `json:"user_id"`
}

// VoiceLeave announces a user leaving a voice channel.
type VoiceLeave struct {
	ChannelID uuid.UUID `json:"channel_id"`
	UserID    uuid.UUID `json:"user_id"`
}

// TypingStart broadcasts a typing indicator to a channel's subscribers.
type TypingStart struct {
	ChannelID uuid.UUID `json:"channel_id"`
	UserID    uuid.UUID `json:"user_id"`
}

func (Ready) serverEvent()          {}
func (Pong) serverEvent()           {}
func (MessageCreate) serverEvent()  {}
func (MessageUpdate) serverEvent()  {}
func (MessageDelete) serverEvent()  {}
func (ChannelCreate) serverEvent()  {}
func (ChannelUpdate) serverEvent()  {}
func (ChannelDelete) serverEvent()  {}
func (PresenceUpdate) serverEvent() {}
func (VoiceJoin) serverEvent()      {}
func (VoiceLeave) serverEvent()     {}
func (TypingStart) serverEvent()    {}

func (e Ready) MarshalJSON() ([]byte, error) {
	type alias Ready
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"Ready", alias(e)})
}

func (e Pong) MarshalJSON() ([]byte, error) {
	type alias Pong
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"Pong", alias(e)})
}

func (e MessageCreate) MarshalJSON() ([]byte, error) {
	type alias MessageCreate
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"MessageCreate", alias(e)})
}

func (e MessageUpdate) MarshalJSON() ([]byte, error) {
	type alias MessageUpdate
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"MessageUpdate", alias(e)})
}

func (e MessageDelete) MarshalJSON() ([]byte, error) {
	type alias MessageDelete
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"MessageDelete", alias(e)})
}

func (e ChannelCreate) MarshalJSON() ([]byte, error) {
	type alias ChannelCreate
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"ChannelCreate", alias(e)})
}

func (e ChannelUpdate) MarshalJSON() ([]byte, error) {
	type alias ChannelUpdate
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"ChannelUpdate", alias(e)})
}

func (e ChannelDelete) MarshalJSON() ([]byte, error) {
	type alias ChannelDelete
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"ChannelDelete", alias(e)})
}

func (e PresenceUpdate) MarshalJSON() ([]byte, error) {
	type alias PresenceUpdate
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"PresenceUpdate", alias(e)})
}

func (e VoiceJoin) MarshalJSON() ([]byte, error) {
	type alias VoiceJoin
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"VoiceJoin", alias(e)})
}

func (e VoiceLeave) MarshalJSON() ([]byte, error) {
	type alias VoiceLeave
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"VoiceLeave", alias(e)})
}

func (e TypingStart) MarshalJSON() ([]byte, error) {
	type alias TypingStart
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"TypingStart", alias(e)})
}

// --- Decoding ---

type probe struct {
	Type string `json:"type"`
}

// DecodeClientEvent parses one inbound frame. Unknown or malformed
// frames return an error; callers drop them silently.
func DecodeClientEvent(data []byte) (ClientEvent, error) {
	var p probe
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	switch p.Type {
	case "Authenticate":
		var e Authenticate
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case "Ping":
		var e Ping
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case "TypingStart":
		var e TypingStartRequest
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case "Subscribe":
		var e Subscribe
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, fmt.Errorf("unknown client event type %q", p.Type)
	}
}

// DecodeServerEvent parses one outbound frame (used by clients and tests;
// the gateway forwards bus payloads verbatim and never re-decodes them).
func DecodeServerEvent(data []byte) (ServerEvent, error) {
	var p probe
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	switch p.Type {
	case "Ready":
		var e Ready
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case "Pong":
		var e Pong
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case "MessageCreate":
		var e MessageCreate
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case "MessageUpdate":
		var e MessageUpdate
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case "MessageDelete":
		var e MessageDelete
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case "ChannelCreate":
		var e ChannelCreate
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case "ChannelUpdate":
		var e ChannelUpdate
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case "ChannelDelete":
		var e ChannelDelete
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case "PresenceUpdate":
		var e PresenceUpdate
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case "VoiceJoin":
		var e VoiceJoin
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case "VoiceLeave":
		var e VoiceLeave
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case "TypingStart":
		var e TypingStart
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, fmt.Errorf("unknown server event type %q", p.Type)
	}
}
