package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/lvsiyuan/personal-site/internal/apperror"
	"github.com/lvsiyuan/personal-site/internal/auth"
	"github.com/lvsiyuan/personal-site/internal/model"
	"github.com/lvsiyuan/personal-site/internal/repository"
)

// AuthService verifies credentials. Community login returns only the public
// profile; admin login additionally issues a session token carrying the
// role claim that the policy middleware checks.
type AuthService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	tokens    *auth.TokenService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	tokens *auth.TokenService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		logger:    logger,
	}
}

// Login verifies a username/password pair and returns the public profile.
// An unknown username and a wrong password produce the same Unauthorized
// error so the response does not reveal which part was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.Profile, error) {
	username = strings.TrimSpace(username)

	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("invalid username or password")
		}
		return nil, err
	}

	if !s.passwords.Verify(user.PasswordHash, password) {
		s.logger.Info("login rejected", slog.String("username", username))
		return nil, apperror.Unauthorized("invalid username or password")
	}

	s.logger.Info("login succeeded",
		slog.Int64("user_id", user.ID),
		slog.String("username", username),
	)
	return user.Profile(), nil
}

// AdminLogin verifies credentials, requires the admin role, and returns the
// profile together with a signed session token.
func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (*model.Profile, string, error) {
	profile, err := s.Login(ctx, username, password)
	if err != nil {
		return nil, "", err
	}
	if profile.Role != model.RoleAdmin {
		return nil, "", apperror.Forbidden("administrator role required")
	}

	token, err := s.tokens.Generate(profile.ID, profile.Role)
	if err != nil {
		return nil, "", err
	}
	return profile, token, nil
}
