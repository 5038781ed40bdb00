package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jadeniji/ideaboard-backend/internal/auth"
	"github.com/jadeniji/ideaboard-backend/internal/models"
	"github.com/jadeniji/ideaboard-backend/internal/repository/memory"
	"github.com/jadeniji/ideaboard-backend/internal/session"
)

func newTestUserService(t *testing.T) (*UserService, *memory.UserRepo) {
	t.Helper()
	users := memory.NewUserRepo()

	hash, err := auth.HashPassword("userpass")
	require.NoError(t, err)
	_, err = users.Create(models.User{
		ID: "1", EmployeeID: "EMP1001", Name: "Temitayo",
		Email: "t@example.com", PasswordHash: hash, Role: models.RoleUser,
	})
	require.NoError(t, err)

	tm := auth.NewTokenManager("test-secret", "test", 15*time.Minute, time.Hour)
	svc := NewUserService(users, session.NewMemoryStore(), tm, discardLogger())
	return svc, users
}

func TestLogin(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "EMP1001", "userpass")
	require.NoError(t, err)
	assert.Equal(t, "Temitayo", res.User.Name)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.NotEmpty(t, res.SessionID)

	// employee id matching is case-insensitive
	_, err = svc.Login(ctx, "emp1001", "userpass")
	assert.NoError(t, err)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	_, errWrongPassword := svc.Login(ctx, "EMP1001", "nope")
	_, errUnknownUser := svc.Login(ctx, "EMP9999", "userpass")

	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownUser, ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword.Error(), errUnknownUser.Error())
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "EMP1001", "userpass")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, res.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, res.SessionID, refreshed.SessionID)
	assert.NotEmpty(t, refreshed.AccessToken)

	// an access token is not accepted as a refresh token
	_, err = svc.Refresh(ctx, res.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshAfterLogout(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "EMP1001", "userpass")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, res.SessionID))

	_, err = svc.Refresh(ctx, res.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRestoreStaleSession(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "EMP1001", "userpass")
	require.NoError(t, err)

	// simulate a client coming back after the staleness window
	svc.now = func() time.Time { return time.Now().Add(session.StaleAfter + time.Second) }
	_, err = svc.Restore(ctx, res.SessionID)
	assert.ErrorIs(t, err, session.ErrStale)
}

func TestHeartbeatKeepsSessionAlive(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "EMP1001", "userpass")
	require.NoError(t, err)

	// heartbeat at +1.5s, restore at +3s: gap from last beat is 1.5s
	base := time.Now()
	svc.now = func() time.Time { return base.Add(1500 * time.Millisecond) }
	require.NoError(t, svc.Heartbeat(ctx, res.SessionID))

	svc.now = func() time.Time { return base.Add(3 * time.Second) }
	_, err = svc.Restore(ctx, res.SessionID)
	assert.NoError(t, err)
}

func TestDisplayNameFor(t *testing.T) {
	svc, _ := newTestUserService(t)

	// admins see the employee id
	assert.Equal(t, "Employee EMP1001", svc.DisplayNameFor(models.RoleAdmin, "1"))
	// a reference the user store does not know still shows as-is to admins
	assert.Equal(t, "Employee EMP3008", svc.DisplayNameFor(models.RoleAdmin, "EMP3008"))

	// non-admins get a stable pseudonym
	a := svc.DisplayNameFor(models.RoleUser, "1")
	b := svc.DisplayNameFor(models.RoleUser, "1")
	other := svc.DisplayNameFor(models.RoleUser, "EMP3008")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
	assert.Regexp(t, `^Anonymous User \d{4}$`, a)

	assert.Equal(t, "Anonymous User", svc.DisplayNameFor(models.RoleUser, ""))
}
