package gateway

import (
	"context"
	"net/http"

	"github.com/gofrs/uuid/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/emberchat/ember/internal/bus"
	"github.com/emberchat/ember/internal/model"
)

// serverLister is the slice of the server repository the gateway needs.
type serverLister interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Server, error)
}

// membershipSource resolves the channels a user may initially hear.
type membershipSource interface {
	UserChannelIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// Server upgrades HTTP requests to websocket connections and runs one
// conn actor per socket.
type Server struct {
	bus     bus.Bus
	pub     *bus.Publisher
	servers serverLister
	members membershipSource
	secret  []byte
	log     *zap.Logger

	upgrader websocket.Upgrader
}

func New(b bus.Bus, servers serverLister, members membershipSource, secret []byte, log *zap.Logger) *Server {
	return &Server{
		bus:     b,
		pub:     bus.NewPublisher(b, log),
		servers: servers,
		members: members,
		secret:  secret,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect from arbitrary origins; auth is the
			// in-band Authenticate frame, not the Origin header.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &conn{
		ws:      ws,
		bus:     s.bus,
		pub:     s.pub,
		servers: s.servers,
		members: s.members,
		secret:  s.secret,
		log:     s.log,
	}
	c.run(r.Context())
}
