package services

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jadeniji/ideaboard-backend/internal/auth"
	"github.com/jadeniji/ideaboard-backend/internal/models"
	"github.com/jadeniji/ideaboard-backend/internal/repository"
	"github.com/jadeniji/ideaboard-backend/internal/session"
)

// ErrInvalidCredentials is deliberately generic: a wrong employee id and
// a wrong password are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

type LoginResult struct {
	User         models.User `json:"user"`
	SessionID    string      `json:"session_id"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresAt    time.Time   `json:"expires_at"`
}

type UserService struct {
	users    repository.Users
	sessions session.Store
	tm       *auth.TokenManager
	log      *slog.Logger
	now      func() time.Time
}

func NewUserService(users repository.Users, sessions session.Store, tm *auth.TokenManager, log *slog.Logger) *UserService {
	return &UserService{users: users, sessions: sessions, tm: tm, log: log, now: time.Now}
}

// Login checks the employee id (case-insensitively) and password and
// opens a session.
func (s *UserService) Login(ctx context.Context, employeeID, password string) (LoginResult, error) {
	u, err := s.users.GetByEmployeeID(strings.ToUpper(employeeID))
	if err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return LoginResult{}, ErrInvalidCredentials
	}

	now := s.now()
	sess := session.Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Role:      string(u.Role),
		Name:      u.Name,
		CreatedAt: now,
		LastSeen:  now,
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return LoginResult{}, fmt.Errorf("save session: %w", err)
	}

	access, refresh, exp, err := s.tm.GeneratePair(u.ID, string(u.Role), sess.ID)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue tokens: %w", err)
	}

	s.log.Info("login", "employee_id", employeeID, "role", u.Role)
	return LoginResult{
		User:         u,
		SessionID:    sess.ID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    exp,
	}, nil
}

// Refresh exchanges a valid refresh token for a new pair, provided the
// session it belongs to is still alive and not stale.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (LoginResult, error) {
	claims, isRefresh, err := s.tm.ParseAny(refreshToken)
	if err != nil || !isRefresh {
		return LoginResult{}, ErrInvalidCredentials
	}

	sess, err := session.Restore(ctx, s.sessions, claims.SessionID, s.now())
	if err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByID(sess.UserID)
	if err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	access, refresh, exp, err := s.tm.GeneratePair(u.ID, string(u.Role), sess.ID)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue tokens: %w", err)
	}
	return LoginResult{
		User:         u,
		SessionID:    sess.ID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    exp,
	}, nil
}

// Restore revalidates a session at client boot, applying the staleness rule.
func (s *UserService) Restore(ctx context.Context, sessionID string) (session.Session, error) {
	return session.Restore(ctx, s.sessions, sessionID, s.now())
}

// Heartbeat keeps the session fresh while the client is active.
func (s *UserService) Heartbeat(ctx context.Context, sessionID string) error {
	return s.sessions.Touch(ctx, sessionID, s.now())
}

func (s *UserService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *UserService) GetByID(id string) (models.User, error) {
	return s.users.GetByID(id)
}

// DisplayNameFor renders an author for a given viewer. Admins see the
// employee id; everyone else sees a stable pseudonym so a thread stays
// readable without exposing who wrote what.
func (s *UserService) DisplayNameFor(viewerRole models.Role, authorRef string) string {
	if authorRef == "" {
		return "Anonymous User"
	}
	if viewerRole == models.RoleAdmin {
		if u, err := s.users.GetByID(authorRef); err == nil {
			return "Employee " + u.EmployeeID
		}
		return "Employee " + authorRef
	}
	return fmt.Sprintf("Anonymous User %d", pseudonym(authorRef))
}

// pseudonym derives a stable 4-digit alias from the author reference.
func pseudonym(authorRef string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(authorRef))
	return 1000 + int(h.Sum32()%9000)
}
