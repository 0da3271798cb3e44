package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rotaworks/rota-backend-go/internal/domain/auth"
	"github.com/rotaworks/rota-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRepository_CreateAndCheckRefreshToken(t *testing.T) {
	ctx := context.Background()
	db := repoTestDB(t)
	truncateAll(t, ctx, db)

	seeded := seedUser(t, ctx, db, "Dana Whitfield", "dana@example.com")
	jwtRepo := postgresql.NewJWTRepository(db)

	expiresAt := time.Now().Add(24 * time.Hour).Unix()
	err := jwtRepo.CreateRefreshToken(ctx, seeded.ID, "refresh-token-value", expiresAt, auth.SessionTrackingRequest{
		UserAgent: "go-test",
		IPAddress: "127.0.0.1",
	})
	require.NoError(t, err)

	userID, revoked, err := jwtRepo.IsRefreshTokenRevoked(ctx, "refresh-token-value")
	assert.NoError(t, err)
	assert.Equal(t, seeded.ID, userID)
	assert.False(t, revoked)
}

func TestJWTRepository_RevokeRefreshToken(t *testing.T) {
	ctx := context.Background()
	db := repoTestDB(t)
	truncateAll(t, ctx, db)

	seeded := seedUser(t, ctx, db, "Dana Whitfield", "dana@example.com")
	jwtRepo := postgresql.NewJWTRepository(db)

	expiresAt := time.Now().Add(24 * time.Hour).Unix()
	require.NoError(t, jwtRepo.CreateRefreshToken(ctx, seeded.ID, "refresh-token-value", expiresAt, auth.SessionTrackingRequest{}))

	err := jwtRepo.RevokeRefreshToken(ctx, "refresh-token-value")
	require.NoError(t, err)

	_, revoked, err := jwtRepo.IsRefreshTokenRevoked(ctx, "refresh-token-value")
	assert.NoError(t, err)
	assert.True(t, revoked)
}

func TestJWTRepository_IsRefreshTokenRevoked_Unknown(t *testing.T) {
	ctx := context.Background()
	db := repoTestDB(t)
	truncateAll(t, ctx, db)

	jwtRepo := postgresql.NewJWTRepository(db)

	_, _, err := jwtRepo.IsRefreshTokenRevoked(ctx, "never-issued")

	assert.True(t, errors.Is(err, pgx.ErrNoRows))
}

func TestJWTRepository_IsRefreshTokenRevoked_Expired(t *testing.T) {
	ctx := context.Background()
	db := repoTestDB(t)
	truncateAll(t, ctx, db)

	seeded := seedUser(t, ctx, db, "Dana Whitfield", "dana@example.com")
	jwtRepo := postgresql.NewJWTRepository(db)

	// Expired an hour ago but never explicitly revoked
	expiresAt := time.Now().Add(-time.Hour).Unix()
	require.NoError(t, jwtRepo.CreateRefreshToken(ctx, seeded.ID, "stale-token", expiresAt, auth.SessionTrackingRequest{}))

	_, revoked, err := jwtRepo.IsRefreshTokenRevoked(ctx, "stale-token")

	assert.NoError(t, err)
	assert.True(t, revoked)
}

func TestJWTRepository_DeleteExpiredRefreshTokens(t *testing.T) {
	ctx := context.Background()
	db := repoTestDB(t)
	truncateAll(t, ctx, db)

	seeded := seedUser(t, ctx, db, "Dana Whitfield", "dana@example.com")
	jwtRepo := postgresql.NewJWTRepository(db)

	longGone := time.Now().Add(-48 * time.Hour).Unix()
	justExpired := time.Now().Add(-time.Hour).Unix()
	live := time.Now().Add(24 * time.Hour).Unix()
	require.NoError(t, jwtRepo.CreateRefreshToken(ctx, seeded.ID, "long-gone", longGone, auth.SessionTrackingRequest{}))
	require.NoError(t, jwtRepo.CreateRefreshToken(ctx, seeded.ID, "just-expired", justExpired, auth.SessionTrackingRequest{}))
	require.NoError(t, jwtRepo.CreateRefreshToken(ctx, seeded.ID, "live", live, auth.SessionTrackingRequest{}))

	deleted, err := jwtRepo.DeleteExpiredRefreshTokens(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	// Within the grace day the expired row still answers as revoked
	// rather than unknown.
	_, revoked, err := jwtRepo.IsRefreshTokenRevoked(ctx, "just-expired")
	assert.NoError(t, err)
	assert.True(t, revoked)

	_, revoked, err = jwtRepo.IsRefreshTokenRevoked(ctx, "live")
	assert.NoError(t, err)
	assert.False(t, revoked)

	_, _, err = jwtRepo.IsRefreshTokenRevoked(ctx, "long-gone")
	assert.True(t, errors.Is(err, pgx.ErrNoRows))
}
