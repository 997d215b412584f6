package gateway

import (
	"context"
	"encoding/json"

	"github.com/gofrs/uuid/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/emberchat/ember/internal/bus"
	"github.com/emberchat/ember/internal/model"
	"github.com/emberchat/ember/internal/token"
)

const (
	// relayBuffer bounds pending bus messages per connection. When full,
	// the bridge blocks: a slow consumer delays its own delivery instead
	// of dropping frames or affecting other connections.
	relayBuffer = 256

	// maxMessageSize caps inbound frames from the peer.
	maxMessageSize = 8192
)

// conn is the per-socket actor. It moves through
// Unauthenticated -> Authenticated -> Closed and is owned exclusively by
// the goroutine servicing the socket; no other component mutates it.
type conn struct {
	ws      *websocket.Conn
	bus     bus.Bus
	pub     *bus.Publisher
	servers serverLister
	members membershipSource
	secret  []byte
	log     *zap.Logger

	userID uuid.UUID
	router *subscriptionRouter
}

// run drives the connection through its states. It returns when the
// connection is Closed; all teardown happens here.
func (c *conn) run(ctx context.Context) {
	defer func() { _ = c.ws.Close() }()
	c.ws.SetReadLimit(maxMessageSize)

	if !c.handshake() {
		return
	}
	if !c.enterAuthenticated(ctx) {
		return
	}
	defer func() { _ = c.router.Close() }()

	c.relayLoop(ctx)
	c.log.Info("gateway disconnect", zap.String("user_id", c.userID.String()))
}

// handshake reads frames in the Unauthenticated state. Only Authenticate
// and Ping are honored; everything else is ignored. A bad token closes
// the socket with no reply frame, so probing clients learn nothing
// beyond the disconnect.
func (c *conn) handshake() bool {
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return false
		}
		ev, err := model.DecodeClientEvent(data)
		if err != nil {
			continue
		}
		switch e := ev.(type) {
		case model.Ping:
			if err := c.writeEvent(model.Pong{TS: e.TS}); err != nil {
				return false
			}
		case model.Authenticate:
			claims, err := token.Validate(e.Token, c.secret)
			if err != nil {
				return false
			}
			c.userID = claims.UserID
			return true
		default:
			// ignore until authenticated
		}
	}
}

// enterAuthenticated performs the transition work: membership lookup,
// initial topic set, bus subscription, and the single Ready frame.
// Membership lookup failures degrade to empty results so a transient
// store error cannot kill the connection.
func (c *conn) enterAuthenticated(ctx context.Context) bool {
	servers, err := c.servers.ListForUser(ctx, c.userID)
	if err != nil {
		c.log.Warn("server lookup failed, proceeding with none",
			zap.String("user_id", c.userID.String()), zap.Error(err))
		servers = []model.Server{}
	}
	channelIDs, err := c.members.UserChannelIDs(ctx, c.userID)
	if err != nil {
		c.log.Warn("channel lookup failed, proceeding with none",
			zap.String("user_id", c.userID.String()), zap.Error(err))
		channelIDs = nil
	}

	topics := make([]string, 0, len(channelIDs)+1)
	topics = append(topics, bus.UserTopic(c.userID))
	for _, id := range channelIDs {
		topics = append(topics, bus.ChannelTopic(id))
	}

	sub, err := c.bus.Subscribe(ctx, topics...)
	if err != nil {
		c.log.Error("bus subscribe failed", zap.String("user_id", c.userID.String()), zap.Error(err))
		return false
	}
	c.router = newSubscriptionRouter(sub, topics)

	ready := model.Ready{
		User:     model.PartialUser{ID: c.userID, Status: model.StatusOnline},
		Servers:  servers,
		Channels: []model.Channel{}, // clients fetch per-server detail over REST
		Members:  []model.Member{},
	}
	if err := c.writeEvent(ready); err != nil {
		_ = c.router.Close()
		return false
	}

	c.log.Info("gateway authenticated",
		zap.String("user_id", c.userID.String()),
		zap.Int("channels", len(channelIDs)),
	)
	return true
}

// relayLoop services the Authenticated state: it races the relay channel
// against inbound frames and ends on socket close, read error or
// end-of-stream. Per-source ordering is preserved; ordering between the
// two sources is not.
func (c *conn) relayLoop(ctx context.Context) {
	done := make(chan struct{})
	defer close(done)

	// Inbound pump: socket frames into a channel so the main loop can
	// select over both sources.
	inbound := make(chan []byte)
	go func() {
		defer close(inbound)
		for {
			_, data, err := c.ws.ReadMessage()
			if err != nil {
				return
			}
			select {
			case inbound <- data:
			case <-done:
				return
			}
		}
	}()

	// Bridge pump: bus subscriber into the bounded relay channel. The
	// send blocks when the relay is full; teardown is an explicit signal,
	// not an implicit drop.
	relay := make(chan []byte, relayBuffer)
	go func() {
		for {
			select {
			case m, ok := <-c.router.Messages():
				if !ok {
					return
				}
				select {
				case relay <- m.Payload:
				case <-done:
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case payload := <-relay:
			if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case data, ok := <-inbound:
			if !ok {
				return
			}
			ev, err := model.DecodeClientEvent(data)
			if err != nil {
				continue // leniency: malformed frames are dropped
			}
			if !c.handleInbound(ctx, ev) {
				return
			}
		}
	}
}

// handleInbound services one authenticated client event. Returns false
// when the connection should close.
func (c *conn) handleInbound(ctx context.Context, ev model.ClientEvent) bool {
	switch e := ev.(type) {
	case model.Ping:
		if err := c.writeEvent(model.Pong{TS: e.TS}); err != nil {
			return false
		}
	case model.TypingStartRequest:
		c.pub.Publish(ctx, bus.ChannelTopic(e.ChannelID), model.TypingStart{
			ChannelID: e.ChannelID,
			UserID:    c.userID,
		})
	case model.Subscribe:
		if err := c.router.Subscribe(ctx, bus.ChannelTopic(e.ChannelID)); err != nil {
			c.log.Warn("topic subscribe failed",
				zap.String("user_id", c.userID.String()),
				zap.String("channel_id", e.ChannelID.String()),
				zap.Error(err))
		}
	default:
		// Authenticate after auth and anything unknown: ignored.
	}
	return true
}

func (c *conn) writeEvent(ev model.ServerEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}
