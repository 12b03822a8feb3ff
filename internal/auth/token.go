package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

// Session identifies an authenticated caller. It is extracted from a token
// by the middleware and passed explicitly to whoever needs it; there is no
// package-level current user.
type Session struct {
	UserID int64
	Role   string
}

// TokenTTL is how long an admin console session stays valid. The session
// cookie uses the same lifetime as the token it carries.
const TokenTTL = 8 * time.Hour

// TokenService signs and verifies session tokens (HS256). The role travels
// inside the token as an explicit claim so authorization never needs a user
// lookup per request.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService. The secret should be at least 32
// random bytes in production.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: token secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Generate signs a token for the given user and role.
func (s *TokenService) Generate(userID int64, role string) (string, error) {
	now := time.Now()

	c := claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        xid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			Issuer:    "personal-site",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token and returns the session it carries.
func (s *TokenService) Validate(tokenString string) (Session, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method %v", t.Header["alg"])
			}
			return s.secret, nil
		},
	)
	if err != nil {
		return Session{}, fmt.Errorf("auth: parsing token: %w", err)
	}
	if !token.Valid {
		return Session{}, errors.New("auth: invalid token")
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return Session{}, fmt.Errorf("auth: invalid subject claim %q: %w", c.Subject, err)
	}
	return Session{UserID: userID, Role: c.Role}, nil
}
