package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primeauto/showroom-api/internal/admins"
	"github.com/primeauto/showroom-api/internal/admins/repository"
	"github.com/primeauto/showroom-api/internal/config"
	"github.com/primeauto/showroom-api/internal/tokens"
)

func newTestService() *Service {
	cfg := &config.Config{}
	cfg.JWT.Secret = "admins-test-secret-32-bytes-xxxxxx"
	cfg.JWT.AccessTokenTTL = 24 * time.Hour
	return NewService(cfg, repository.NewMemoryRepo())
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	a, err := svc.Register(ctx, "boss@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, admins.RoleAdmin, a.Role)
	assert.NotEqual(t, "s3cret", a.PasswordHash, "plaintext must never be stored")
	assert.False(t, a.ID.IsZero())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Register(ctx, "boss@example.com", "s3cret")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "boss@example.com", "other")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginIssuesAdminToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	reg, err := svc.Register(ctx, "boss@example.com", "s3cret")
	require.NoError(t, err)

	tok, a, err := svc.Login(ctx, "boss@example.com", "s3cret")
	require.NoError(t, err)
	require.Equal(t, reg.ID, a.ID)

	claims, err := tokens.ParseAccessToken(svc.cfg, tok)
	require.NoError(t, err)
	assert.Equal(t, reg.ID.Hex(), claims.ID)
	assert.Equal(t, "boss@example.com", claims.Email)
	assert.Equal(t, admins.RoleAdmin, claims.Role)
}

// Wrong password and unknown email must be indistinguishable.
func TestLoginUniformFailure(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Register(ctx, "boss@example.com", "s3cret")
	require.NoError(t, err)

	_, _, errWrongPass := svc.Login(ctx, "boss@example.com", "nope")
	_, _, errNoUser := svc.Login(ctx, "ghost@example.com", "nope")
	require.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	require.ErrorIs(t, errNoUser, ErrInvalidCredentials)
	assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
}
