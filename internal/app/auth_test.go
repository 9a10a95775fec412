package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/atharibank/backoffice-service/internal/domain"
	"github.com/atharibank/backoffice-service/pkg/session"
)

type adminRepoStub struct {
	users map[string]*domain.AdminUser
}

func (s *adminRepoStub) FindAdminByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (s *adminRepoStub) FindAdminByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	return s.users[id], nil
}

type sessionStoreStub struct {
	sessions map[string]string
}

func newSessionStoreStub() *sessionStoreStub {
	return &sessionStoreStub{sessions: map[string]string{}}
}

func (s *sessionStoreStub) Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	s.sessions[sessionID] = userID
	return nil
}

func (s *sessionStoreStub) UserID(ctx context.Context, sessionID string) (string, error) {
	userID, ok := s.sessions[sessionID]
	if !ok {
		return "", session.ErrNotFound
	}
	return userID, nil
}

func (s *sessionStoreStub) Revoke(ctx context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func newTestAuthService(t *testing.T) (*AuthService, *sessionStoreStub) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	users := &adminRepoStub{users: map[string]*domain.AdminUser{
		"u1": {ID: "u1", Email: "agent@atharibank.cm", PasswordHash: string(hash), RoleID: "r1"},
	}}
	roles := newRoleRepoStub(&domain.Role{
		ID:          "r1",
		Name:        "Admin",
		Permissions: []domain.Permission{domain.PermAccountsRead, domain.PermRolesManage},
	})
	sessions := newSessionStoreStub()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAuthService(users, roles, sessions, "test-secret", time.Hour, logger), sessions
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	auth, _ := newTestAuthService(t)

	result, err := auth.Login(context.Background(), "agent@atharibank.cm", "s3cret!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}
	if result.Role == nil || result.Role.ID != "r1" {
		t.Fatal("expected the agent's role to be attached")
	}

	claims, err := auth.VerifyToken(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("token did not verify: %v", err)
	}
	if claims.UserID != "u1" {
		t.Fatalf("expected u1, got %s", claims.UserID)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.Login(context.Background(), "agent@atharibank.cm", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginRejectsUnknownAgent(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.Login(context.Background(), "ghost@atharibank.cm", "s3cret!")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutRevokesTheSession(t *testing.T) {
	auth, _ := newTestAuthService(t)

	result, err := auth.Login(context.Background(), "agent@atharibank.cm", "s3cret!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := auth.VerifyToken(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("token did not verify: %v", err)
	}

	if err := auth.Logout(context.Background(), claims.SessionID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if _, err := auth.VerifyToken(context.Background(), result.Token); !errors.Is(err, ErrSessionRevoked) {
		t.Fatalf("expected ErrSessionRevoked after logout, got %v", err)
	}
}

func TestVerifyTokenRejectsTamperedToken(t *testing.T) {
	auth, _ := newTestAuthService(t)

	result, err := auth.Login(context.Background(), "agent@atharibank.cm", "s3cret!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tampered := result.Token[:len(result.Token)-2] + "xx"
	if _, err := auth.VerifyToken(context.Background(), tampered); err == nil {
		t.Fatal("expected a verification error for a tampered token")
	}
}
