package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/emberchat/ember/internal/errs"
	"github.com/emberchat/ember/internal/model"
	"github.com/emberchat/ember/internal/repository"
)

type fakeUsers struct {
	byEmail map[string]*model.User

	createErr error
	getErr    error
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.byEmail == nil {
		f.byEmail = map[string]*model.User{}
	}
	if u.Email == nil {
		return errs.ErrBackingStore
	}
	if _, exists := f.byEmail[*u.Email]; exists {
		return errs.ErrAlreadyExists
	}
	cpy := *u
	f.byEmail[*u.Email] = &cpy
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

type fakeSessions struct {
	created   []model.Session
	createErr error
}

var _ repository.SessionRepository = (*fakeSessions)(nil)

func (f *fakeSessions) Create(_ context.Context, s *model.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *s)
	return nil
}

type fakeServers struct {
	created []model.Server
	forUser map[uuid.UUID][]model.Server
}

var _ repository.ServerRepository = (*fakeServers)(nil)

func (f *fakeServers) Create(_ context.Context, s *model.Server) error {
	f.created = append(f.created, *s)
	return nil
}

func (f *fakeServers) ListForUser(_ context.Context, userID uuid.UUID) ([]model.Server, error) {
	return f.forUser[userID], nil
}

type fakeChannels struct {
	created []model.Channel
}

var _ repository.ChannelRepository = (*fakeChannels)(nil)

func (f *fakeChannels) Create(_ context.Context, c *model.Channel) error {
	f.created = append(f.created, *c)
	return nil
}

func (f *fakeChannels) ListForServer(_ context.Context, serverID uuid.UUID) ([]model.Channel, error) {
	out := []model.Channel{}
	for _, c := range f.created {
		if c.ServerID != nil && *c.ServerID == serverID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeMembers struct {
	// membership[serverID][userID]
	membership map[uuid.UUID]map[uuid.UUID]bool
	// channelServer[channelID] = serverID
	channelServer map[uuid.UUID]uuid.UUID

	lookupErr error
}

var _ repository.MembershipRepository = (*fakeMembers)(nil)

func (f *fakeMembers) IsMember(_ context.Context, serverID, userID uuid.UUID) (bool, error) {
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	return f.membership[serverID][userID], nil
}

func (f *fakeMembers) AddMember(_ context.Context, serverID, userID uuid.UUID) (*model.Member, error) {
	if f.membership == nil {
		f.membership = map[uuid.UUID]map[uuid.UUID]bool{}
	}
	if f.membership[serverID] == nil {
		f.membership[serverID] = map[uuid.UUID]bool{}
	}
	if f.membership[serverID][userID] {
		return nil, errs.ErrAlreadyExists
	}
	f.membership[serverID][userID] = true
	return &model.Member{ServerID: serverID, UserID: userID}, nil
}

func (f *fakeMembers) UserChannelIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	out := []uuid.UUID{}
	for chID, srvID := range f.channelServer {
		if f.membership[srvID][userID] {
			out = append(out, chID)
		}
	}
	return out, nil
}

func (f *fakeMembers) ChannelServerID(_ context.Context, channelID uuid.UUID) (uuid.UUID, error) {
	if f.lookupErr != nil {
		return uuid.Nil, f.lookupErr
	}
	srvID, ok := f.channelServer[channelID]
	if !ok {
		return uuid.Nil, errs.ErrNotFound
	}
	return srvID, nil
}

type fakeMessages struct {
	created   []model.Message
	lastLimit int
	createErr error
}

var _ repository.MessageRepository = (*fakeMessages)(nil)

func (f *fakeMessages) Create(_ context.Context, m *model.Message) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *m)
	return nil
}

func (f *fakeMessages) ListForChannel(_ context.Context, channelID uuid.UUID, _ *uuid.UUID, limit int) ([]model.Message, error) {
	f.lastLimit = limit
	out := []model.Message{}
	for _, m := range f.created {
		if m.ChannelID == channelID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessages) Delete(_ context.Context, id, channelID uuid.UUID) error {
	for i, m := range f.created {
		if m.ID == id && m.ChannelID == channelID {
			f.created = append(f.created[:i], f.created[i+1:]...)
			return nil
		}
	}
	return errs.ErrNotFound
}

type fakeInvites struct {
	byCode map[string]*model.Invite
}

var _ repository.InviteRepository = (*fakeInvites)(nil)

func (f *fakeInvites) Create(_ context.Context, inv *model.Invite) error {
	if f.byCode == nil {
		f.byCode = map[string]*model.Invite{}
	}
	if _, exists := f.byCode[inv.Code]; exists {
		return errs.ErrAlreadyExists
	}
	cpy := *inv
	f.byCode[inv.Code] = &cpy
	return nil
}

func (f *fakeInvites) Use(_ context.Context, code string) (*model.Invite, error) {
	inv, ok := f.byCode[code]
	if !ok {
		return nil, errs.ErrNotFound
	}
	if inv.MaxUses != nil && inv.Uses >= *inv.MaxUses {
		return nil, errs.ErrNotFound
	}
	inv.Uses++
	c := *inv
	return &c, nil
}
