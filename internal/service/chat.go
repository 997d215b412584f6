package service

import (
	"context"
	"errors"
	"math/rand"

	"github.com/gofrs/uuid/v5"

	"github.com/emberchat/ember/internal/bus"
	"github.com/emberchat/ember/internal/errs"
	"github.com/emberchat/ember/internal/model"
	"github.com/emberchat/ember/internal/repository"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 100
	inviteCodeLen       = 8
)

// ChatService orchestrates chat writes: access checks, persistence and
// event publication.
type ChatService interface {
	// CreateServer creates a server owned by the user, with the owner as
	// first member and a default #general channel.
	CreateServer(ctx context.Context, ownerID uuid.UUID, name string) (*model.Server, error)
	// ListServers returns the user's servers.
	ListServers(ctx context.Context, userID uuid.UUID) ([]model.Server, error)
	// CreateChannel adds a channel to a server the user is a member of.
	CreateChannel(ctx context.Context, userID, serverID uuid.UUID, name string, chType model.ChannelType) (*model.Channel, error)
	// ListChannels returns a server's channels to a member.
	ListChannels(ctx context.Context, userID, serverID uuid.UUID) ([]model.Channel, error)
	// SendMessage persists a message and broadcasts MessageCreate to the
	// channel's topic.
	SendMessage(ctx context.Context, userID, channelID uuid.UUID, content *string, repliesTo *uuid.UUID) (*model.Message, error)
	// ListMessages returns newest-first history for a channel member.
	ListMessages(ctx context.Context, userID, channelID uuid.UUID, before *uuid.UUID, limit int) ([]model.Message, error)
	// CreateInvite mints a redeemable invite code for a server member.
	CreateInvite(ctx context.Context, userID, serverID uuid.UUID) (*model.Invite, error)
	// JoinInvite redeems a code and adds the user to its server.
	JoinInvite(ctx context.Context, userID uuid.UUID, code string) (*model.Member, error)
}

type ChatServiceImpl struct {
	servers  repository.ServerRepository
	channels repository.ChannelRepository
	members  repository.MembershipRepository
	messages repository.MessageRepository
	invites  repository.InviteRepository
	pub      *bus.Publisher
}

// NewChatService constructs ChatService with required dependencies.
func NewChatService(
	servers repository.ServerRepository,
	channels repository.ChannelRepository,
	members repository.MembershipRepository,
	messages repository.MessageRepository,
	invites repository.InviteRepository,
	pub *bus.Publisher,
) *ChatServiceImpl {
	return &ChatServiceImpl{
		servers:  servers,
		channels: channels,
		members:  members,
		messages: messages,
		invites:  invites,
		pub:      pub,
	}
}

// verifyChannelAccess resolves the channel's server and checks
// membership. Unknown channel -> ErrNotFound; non-member -> ErrForbidden.
func (s *ChatServiceImpl) verifyChannelAccess(ctx context.Context, userID, channelID uuid.UUID) error {
	serverID, err := s.members.ChannelServerID(ctx, channelID)
	if err != nil {
		return err
	}
	ok, err := s.members.IsMember(ctx, serverID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrForbidden
	}
	return nil
}

func (s *ChatServiceImpl) CreateServer(ctx context.Context, ownerID uuid.UUID, name string) (*model.Server, error) {
	if name == "" {
		return nil, errors.New("empty server name")
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	srv := &model.Server{ID: id, Name: name, OwnerID: ownerID}
	if err := s.servers.Create(ctx, srv); err != nil {
		return nil, err
	}
	return srv, nil
}

func (s *ChatServiceImpl) ListServers(ctx context.Context, userID uuid.UUID) ([]model.Server, error) {
	return s.servers.ListForUser(ctx, userID)
}

func (s *ChatServiceImpl) CreateChannel(ctx context.Context, userID, serverID uuid.UUID, name string, chType model.ChannelType) (*model.Channel, error) {
	if name == "" {
		return nil, errors.New("empty channel name")
	}
	ok, err := s.members.IsMember(ctx, serverID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrForbidden
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	ch := &model.Channel{ID: id, ServerID: &serverID, Name: name, Type: chType}
	if err := s.channels.Create(ctx, ch); err != nil {
		return nil, err
	}
	return ch, nil
}

func (s *ChatServiceImpl) ListChannels(ctx context.Context, userID, serverID uuid.UUID) ([]model.Channel, error) {
	ok, err := s.members.IsMember(ctx, serverID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrForbidden
	}
	return s.channels.ListForServer(ctx, serverID)
}

func (s *ChatServiceImpl) SendMessage(ctx context.Context, userID, channelID uuid.UUID, content *string, repliesTo *uuid.UUID) (*model.Message, error) {
	if err := s.verifyChannelAccess(ctx, userID, channelID); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	msg := &model.Message{
		ID:          id,
		ChannelID:   channelID,
		AuthorID:    userID,
		Content:     content,
		Attachments: []model.Attachment{},
		Embeds:      []model.Embed{},
		Mentions:    []uuid.UUID{},
		RepliesTo:   repliesTo,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	// Best-effort fan-out; the write has already succeeded.
	s.pub.Publish(ctx, bus.ChannelTopic(channelID), model.MessageCreate{Message: *msg})

	return msg, nil
}

func (s *ChatServiceImpl) ListMessages(ctx context.Context, userID, channelID uuid.UUID, before *uuid.UUID, limit int) ([]model.Message, error) {
	if err := s.verifyChannelAccess(ctx, userID, channelID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.messages.ListForChannel(ctx, channelID, before, limit)
}

func (s *ChatServiceImpl) CreateInvite(ctx context.Context, userID, serverID uuid.UUID) (*model.Invite, error) {
	ok, err := s.members.IsMember(ctx, serverID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrForbidden
	}

	inv := &model.Invite{
		Code:      generateInviteCode(),
		ServerID:  serverID,
		CreatorID: userID,
	}
	if err := s.invites.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *ChatServiceImpl) JoinInvite(ctx context.Context, userID uuid.UUID, code string) (*model.Member, error) {
	inv, err := s.invites.Use(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.members.AddMember(ctx, inv.ServerID, userID)
}

func generateInviteCode() string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, inviteCodeLen)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}
