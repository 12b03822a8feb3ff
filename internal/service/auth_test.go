package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/lvsiyuan/personal-site/internal/apperror"
	"github.com/lvsiyuan/personal-site/internal/auth"
	"github.com/lvsiyuan/personal-site/internal/model"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) (*AuthService, *mockUserRepo) {
	t.Helper()
	users := newMockUserRepo()
	tokens, err := auth.NewTokenService("test-secret-0123456789abcdef")
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	passwords := auth.NewPasswordService()
	return NewAuthService(users, passwords, tokens, testLogger()), users
}

func seedUser(t *testing.T, users *mockUserRepo, username, password, role string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error = %v", err)
	}
	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		Avatar:       "images/user1.jpg",
		Role:         role,
	}
	if err := users.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	return user
}

func TestLogin_Success(t *testing.T) {
	svc, users := newTestAuthService(t)
	seedUser(t, users, "test", "123456", model.RoleAdmin)

	profile, err := svc.Login(context.Background(), "test", "123456")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if profile.Username != "test" {
		t.Errorf("Username = %q, want test", profile.Username)
	}

	// The serialized profile must not contain any password field.
	b, err := json.Marshal(profile)
	if err != nil {
		t.Fatalf("marshal error = %v", err)
	}
	if strings.Contains(strings.ToLower(string(b)), "password") {
		t.Errorf("profile JSON leaks a password field: %s", b)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, users := newTestAuthService(t)
	seedUser(t, users, "test", "123456", model.RoleAdmin)

	_, err := svc.Login(context.Background(), "test", "wrong")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), "nobody", "secret")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "", "pw"); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("missing username: error = %v, want ErrValidation", err)
	}
	if _, err := svc.Login(ctx, "test", ""); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("missing password: error = %v, want ErrValidation", err)
	}
}

func TestAdminLogin_IssuesTokenWithRole(t *testing.T) {
	svc, users := newTestAuthService(t)
	seedUser(t, users, "test", "123456", model.RoleAdmin)

	profile, token, err := svc.AdminLogin(context.Background(), "test", "123456")
	if err != nil {
		t.Fatalf("AdminLogin() error = %v", err)
	}
	if token == "" {
		t.Fatal("AdminLogin() returned an empty token")
	}
	if profile.Role != model.RoleAdmin {
		t.Errorf("Role = %q, want admin", profile.Role)
	}
}

func TestAdminLogin_MemberForbidden(t *testing.T) {
	svc, users := newTestAuthService(t)
	seedUser(t, users, "reader", "pw123456", model.RoleMember)

	_, _, err := svc.AdminLogin(context.Background(), "reader", "pw123456")
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}
}
