package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megamounds/sitetrack-api/internal/services"
)

func TestTokenService_Integration_Rotate(t *testing.T) {
	tdb, fixtures := setupTest(t)
	svc := services.NewTokenService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)
	oldHash := services.HashToken("first-refresh-token")
	newHash := services.HashToken("second-refresh-token")
	require.NoError(t, svc.StoreRefreshToken(ctx, user.ID, oldHash, time.Now().Add(time.Hour)))

	userID, err := svc.RotateRefreshToken(ctx, oldHash, newHash, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	_, err = svc.RotateRefreshToken(ctx, oldHash, services.HashToken("third"), time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, services.ErrRefreshTokenInvalid)
}

func TestTokenService_Integration_ExpiredTokenCannotRotate(t *testing.T) {
	tdb, fixtures := setupTest(t)
	svc := services.NewTokenService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)
	hash := services.HashToken("expired-token")
	fixtures.CreateRefreshToken(t, user.ID, hash, time.Now().Add(-time.Hour))

	_, err := svc.RotateRefreshToken(ctx, hash, services.HashToken("next"), time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, services.ErrRefreshTokenInvalid)

	removed, err := svc.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func TestTokenService_Integration_RevokeAll(t *testing.T) {
	tdb, fixtures := setupTest(t)
	svc := services.NewTokenService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)
	for _, token := range []string{"phone", "laptop"} {
		require.NoError(t, svc.StoreRefreshToken(ctx, user.ID, services.HashToken(token), time.Now().Add(time.Hour)))
	}

	require.NoError(t, svc.RevokeAllUserTokens(ctx, user.ID))

	_, err := svc.RotateRefreshToken(ctx, services.HashToken("phone"), services.HashToken("x"), time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, services.ErrRefreshTokenInvalid)
}
