package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskcore/task-tracker-api/internal/repo"
)

func newAuthService() *AuthService {
	return NewAuthService(repo.NewMemoryUserRepo(), "test-secret", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	t.Run("success with default role", func(t *testing.T) {
		u, err := svc.Register(ctx, "alice", "hunter22", "")
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "alice", u.Username)
		assert.Equal(t, DefaultRole, u.Role)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice", "another6", "")
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := svc.Register(ctx, "bob", "short", "")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("blank username", func(t *testing.T) {
		_, err := svc.Register(ctx, "   ", "hunter22", "")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestAuthService_Login(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "hunter22", "")
	require.NoError(t, err)

	t.Run("valid credentials yield a verifiable token", func(t *testing.T) {
		token, user, err := svc.Login(ctx, "alice", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)

		sub, err := svc.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, sub)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice", "wrong-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user indistinguishable from wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody", "hunter22")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_VerifyToken(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "hunter22", "")
	require.NoError(t, err)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.VerifyToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := NewAuthService(svc.users, "other-secret", time.Hour)
		token, _, err := other.Login(ctx, "alice", "hunter22")
		require.NoError(t, err)

		_, err = svc.VerifyToken(token)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewAuthService(svc.users, "test-secret", time.Hour)
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

		token, _, err := expired.Login(ctx, "alice", "hunter22")
		require.NoError(t, err)

		_, err = svc.VerifyToken(token)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
