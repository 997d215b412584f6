package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gofrs/uuid/v5"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/emberchat/ember/internal/errs"
	"github.com/emberchat/ember/internal/model"
	"github.com/emberchat/ember/internal/service"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("response encode failed", zap.Error(err))
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps the service error taxonomy onto HTTP statuses. The
// body carries only the mapped class, never wrapped detail.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrInvalidCredentials),
		errors.Is(err, errs.ErrAccountNotFound),
		errors.Is(err, errs.ErrTokenExpired),
		errors.Is(err, errs.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrAlreadyExists):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
		s.writeJSON(w, status, errorBody{Error: "internal error"})
		return
	}
	s.writeJSON(w, status, errorBody{Error: err.Error()})
}

func (s *Server) index(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	s.writeJSON(w, http.StatusOK, map[string]string{"name": "ember", "status": "ok"})
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	SessionID uuid.UUID `json:"session_id"`
	Token     string    `json:"token"`
}

func toAuthResponse(res service.AuthResult) authResponse {
	return authResponse{UserID: res.UserID, SessionID: res.SessionID, Token: res.Token}
}

func (s *Server) register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed body"})
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "username, email and password are required"})
		return
	}
	res, err := s.sessions.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toAuthResponse(res))
}

func (s *Server) login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed body"})
		return
	}
	res, err := s.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toAuthResponse(res))
}

type createServerRequest struct {
	Name string `json:"name"`
}

func (s *Server) createServer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createServerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "server name is required"})
		return
	}
	srv, err := s.chat.CreateServer(r.Context(), userID(r.Context()), req.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, srv)
}

func (s *Server) listServers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	servers, err := s.chat.ListServers(r.Context(), userID(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if servers == nil {
		servers = []model.Server{}
	}
	s.writeJSON(w, http.StatusOK, servers)
}

type createChannelRequest struct {
	Name string            `json:"name"`
	Type model.ChannelType `json:"channel_type"`
}

func (s *Server) createChannel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	serverID, err := uuid.FromString(ps.ByName("server_id"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed server id"})
		return
	}
	var req createChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "channel name is required"})
		return
	}
	if req.Type == "" {
		req.Type = model.ChannelText
	}
	ch, err := s.chat.CreateChannel(r.Context(), userID(r.Context()), serverID, req.Name, req.Type)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, ch)
}

func (s *Server) listChannels(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	serverID, err := uuid.FromString(ps.ByName("server_id"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed server id"})
		return
	}
	channels, err := s.chat.ListChannels(r.Context(), userID(r.Context()), serverID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if channels == nil {
		channels = []model.Channel{}
	}
	s.writeJSON(w, http.StatusOK, channels)
}

type sendMessageRequest struct {
	Content   *string    `json:"content"`
	RepliesTo *uuid.UUID `json:"replies_to"`
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	channelID, err := uuid.FromString(ps.ByName("channel_id"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed channel id"})
		return
	}
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed body"})
		return
	}
	if req.Content == nil || *req.Content == "" {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "message content is required"})
		return
	}
	msg, err := s.chat.SendMessage(r.Context(), userID(r.Context()), channelID, req.Content, req.RepliesTo)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, msg)
}

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	channelID, err := uuid.FromString(ps.ByName("channel_id"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed channel id"})
		return
	}

	var before *uuid.UUID
	if raw := r.URL.Query().Get("before"); raw != "" {
		id, err := uuid.FromString(raw)
		if err != nil {
			s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed before cursor"})
			return
		}
		before = &id
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		// Non-numeric limits fall back to the default rather than erroring.
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	msgs, err := s.chat.ListMessages(r.Context(), userID(r.Context()), channelID, before, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if msgs == nil {
		msgs = []model.Message{}
	}
	s.writeJSON(w, http.StatusOK, msgs)
}

func (s *Server) createInvite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	serverID, err := uuid.FromString(ps.ByName("server_id"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed server id"})
		return
	}
	inv, err := s.chat.CreateInvite(r.Context(), userID(r.Context()), serverID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, inv)
}

func (s *Server) joinInvite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	m, err := s.chat.JoinInvite(r.Context(), userID(r.Context()), ps.ByName("code"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, m)
}
