// Package service contains application services for sessions and chat writes.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "github.com/emberchat/ember/internal/crypto"
	"github.com/emberchat/ember/internal/errs"
	"github.com/emberchat/ember/internal/model"
	"github.com/emberchat/ember/internal/repository"
	"github.com/emberchat/ember/internal/token"
)

// AuthResult is the outcome of a successful registration or login.
type AuthResult struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
	Token     string
}

// SessionService mints sessions for new and returning users.
type SessionService interface {
	// Register creates the account and an initial session.
	Register(ctx context.Context, username, email, password string) (AuthResult, error)
	// Login verifies credentials and mints a fresh, independent session.
	Login(ctx context.Context, email, password string) (AuthResult, error)
}

type SessionServiceImpl struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	secret   []byte
}

// NewSessionService constructs SessionService with required dependencies.
func NewSessionService(users repository.UserRepository, sessions repository.SessionRepository, secret []byte) *SessionServiceImpl {
	return &SessionServiceImpl{users: users, sessions: sessions, secret: secret}
}

// Register hashes the password, creates the user record and mints the
// first session. If the session insert fails after the user row exists,
// the user is not rolled back; the caller simply retries with login.
func (s *SessionServiceImpl) Register(ctx context.Context, username, email, password string) (AuthResult, error) {
	if username == "" || email == "" || password == "" {
		return AuthResult{}, errors.New("empty username/email/password")
	}

	hash, err := pkgcrypto.HashPassword(password)
	if err != nil {
		return AuthResult{}, err
	}

	uid, err := uuid.NewV7()
	if err != nil {
		return AuthResult{}, err
	}
	u := &model.User{
		ID:            uid,
		Username:      username,
		Discriminator: fmt.Sprintf("%04d", rand.Intn(10000)),
		Email:         &email,
		PasswordHash:  hash,
		Status:        model.StatusOffline,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return AuthResult{}, err
	}

	return s.mintSession(ctx, uid)
}

// Login authenticates by email and password and mints a session. Prior
// sessions for the same user stay valid until their own expiry.
func (s *SessionServiceImpl) Login(ctx context.Context, email, password string) (AuthResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return AuthResult{}, errs.ErrAccountNotFound
		}
		return AuthResult{}, err
	}
	if err := pkgcrypto.VerifyPassword(password, u.PasswordHash); err != nil {
		return AuthResult{}, err
	}

	return s.mintSession(ctx, u.ID)
}

// mintSession issues a token and persists the audit record keyed by a
// fast digest of it. The digest is never read back by validation; it
// exists so a future revocation check could invalidate by hash without
// storing the raw token.
func (s *SessionServiceImpl) mintSession(ctx context.Context, userID uuid.UUID) (AuthResult, error) {
	sessionID, err := uuid.NewV7()
	if err != nil {
		return AuthResult{}, err
	}
	signed, err := token.Issue(userID, sessionID, s.secret)
	if err != nil {
		return AuthResult{}, err
	}

	rec := &model.Session{
		ID:        sessionID,
		UserID:    userID,
		TokenHash: sha256Hex(signed),
	}
	if err := s.sessions.Create(ctx, rec); err != nil {
		return AuthResult{}, err
	}

	return AuthResult{UserID: userID, SessionID: sessionID, Token: signed}, nil
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
