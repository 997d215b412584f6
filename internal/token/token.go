// Package token issues and validates signed session tokens.
package token

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/emberchat/ember/internal/errs"
)

// Lifetime is the fixed validity window set at issuance.
const Lifetime = 30 * 24 * time.Hour

// Claims identify the user and session a token was minted for.
type Claims struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type jwtClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Issue signs a token carrying {sub, sid, iat, exp} with HS256.
func Issue(userID, sessionID uuid.UUID, secret []byte) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		SessionID: sessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(Lifetime)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(secret)
	if err != nil {
		return "", errs.ErrInvalidToken
	}
	return signed, nil
}

// Validate verifies the signature and decodes the claims. An expired
// token maps to ErrTokenExpired; every other verification failure maps
// to ErrInvalidToken. No clock-skew leeway is applied.
func Validate(tokenStr string, secret []byte) (Claims, error) {
	var raw jwtClaims
	parsed, err := jwt.ParseWithClaims(tokenStr, &raw, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, errs.ErrTokenExpired
		}
		return Claims{}, errs.ErrInvalidToken
	}
	if !parsed.Valid {
		return Claims{}, errs.ErrInvalidToken
	}

	userID, err := uuid.FromString(raw.Subject)
	if err != nil {
		return Claims{}, errs.ErrInvalidToken
	}
	sessionID, err := uuid.FromString(raw.SessionID)
	if err != nil {
		return Claims{}, errs.ErrInvalidToken
	}
	if raw.IssuedAt == nil || raw.ExpiresAt == nil {
		return Claims{}, errs.ErrInvalidToken
	}

	return Claims{
		UserID:    userID,
		SessionID: sessionID,
		IssuedAt:  raw.IssuedAt.Time,
		ExpiresAt: raw.ExpiresAt.Time,
	}, nil
}
