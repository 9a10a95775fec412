/**
 * @description
 * Authentication logic for back-office agents. Login verifies the bcrypt
 * password hash, issues a signed HS256 token and records the session in the
 * session store; logout revokes the session so a stolen token dies with it.
 *
 * @dependencies
 * - github.com/golang-jwt/jwt/v5: Token issuance.
 * - golang.org/x/crypto/bcrypt: Password verification.
 * - The service's session package for the revocable session record.
 */
package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/atharibank/backoffice-service/internal/domain"
	"github.com/atharibank/backoffice-service/pkg/session"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionRevoked     = errors.New("session revoked")
)

// AdminUserRepository defines the persistence operations authentication needs.
type AdminUserRepository interface {
	FindAdminByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	FindAdminByID(ctx context.Context, id string) (*domain.AdminUser, error)
}

// SessionStore persists issued sessions so they can be revoked before expiry.
type SessionStore interface {
	Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	UserID(ctx context.Context, sessionID string) (string, error)
	Revoke(ctx context.Context, sessionID string) error
}

// AuthService provides login, logout and session verification.
type AuthService struct {
	users     AdminUserRepository
	roles     RoleRepository
	sessions  SessionStore
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users AdminUserRepository, roles RoleRepository, sessions SessionStore, jwtSecret string, tokenTTL time.Duration, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		roles:     roles,
		sessions:  sessions,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// LoginResult carries the issued token and the signed-in agent's profile.
type LoginResult struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	User      *domain.AdminUser `json:"user"`
	Role      *domain.Role      `json:"role,omitempty"`
}

// Login verifies credentials and issues a session-backed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindAdminByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	expiresAt := time.Now().Add(s.tokenTTL)

	claims := jwt.MapClaims{
		"sub": user.ID,
		"sid": sessionID,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, sessionID, user.ID, s.tokenTTL); err != nil {
		return nil, err
	}

	result := &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}
	if user.RoleID != "" {
		role, err := s.roles.GetRoleByID(ctx, user.RoleID)
		if err != nil {
			s.logger.Warn("could not load role for agent", "user_id", user.ID, "role_id", user.RoleID, "error", err)
		} else {
			result.Role = role
		}
	}
	return result, nil
}

// SessionClaims is what a verified token resolves to.
type SessionClaims struct {
	UserID    string
	SessionID string
}

// VerifyToken parses and validates a token and checks the session is live.
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (*SessionClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}), jwt.WithLeeway(30*time.Second))
	claims := jwt.MapClaims{}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.jwtSecret, nil
	}); err != nil {
		return nil, err
	}

	userID, _ := claims["sub"].(string)
	sessionID, _ := claims["sid"].(string)
	if userID == "" || sessionID == "" {
		return nil, ErrInvalidCredentials
	}

	sessionUser, err := s.sessions.UserID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrSessionRevoked
		}
		return nil, err
	}
	if sessionUser != userID {
		return nil, ErrSessionRevoked
	}

	return &SessionClaims{UserID: userID, SessionID: sessionID}, nil
}

// Logout revokes the session behind the token.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Revoke(ctx, sessionID)
}

// Profile returns the signed-in agent's profile and role.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.AdminUser, *domain.Role, error) {
	user, err := s.users.FindAdminByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}

	var role *domain.Role
	if user.RoleID != "" {
		role, err = s.roles.GetRoleByID(ctx, user.RoleID)
		if err != nil {
			s.logger.Warn("could not load role for agent", "user_id", user.ID, "role_id", user.RoleID, "error", err)
			role = nil
		}
	}
	return user, role, nil
}
