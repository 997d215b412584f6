// Package rest exposes the HTTP API in front of the session and chat
// services. The gateway socket is served by a separate binary.
package rest

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/emberchat/ember/internal/service"
)

// Server routes HTTP requests to the application services.
type Server struct {
	sessions service.SessionService
	chat     service.ChatService
	secret   []byte
	log      *zap.Logger

	handler http.Handler
}

func New(sessions service.SessionService, chat service.ChatService, secret []byte, log *zap.Logger) *Server {
	s := &Server{
		sessions: sessions,
		chat:     chat,
		secret:   secret,
		log:      log,
	}

	r := httprouter.New()
	r.GET("/", s.index)
	r.POST("/auth/register", s.register)
	r.POST("/auth/login", s.login)

	r.GET("/servers", s.auth(s.listServers))
	r.POST("/servers", s.auth(s.createServer))
	r.GET("/servers/:server_id/channels", s.auth(s.listChannels))
	r.POST("/servers/:server_id/channels", s.auth(s.createChannel))
	r.POST("/servers/:server_id/invites", s.auth(s.createInvite))
	r.GET("/channels/:channel_id/messages", s.auth(s.listMessages))
	r.POST("/channels/:channel_id/messages", s.auth(s.sendMessage))
	r.POST("/invites/:code/join", s.auth(s.joinInvite))

	s.handler = s.withRecovery(s.withLogging(r))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
