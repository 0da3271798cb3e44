package postgresql_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rotaworks/rota-backend-go/internal/domain/location"
	"github.com/rotaworks/rota-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationRepository_Create_Success(t *testing.T) {
	ctx := context.Background()
	db := repoTestDB(t)
	truncateAll(t, ctx, db)

	locationRepo := postgresql.NewLocationRepository(db)

	created, err := locationRepo.Create(ctx, location.Location{
		Name:      "Riverside House",
		Address:   "1 River Lane",
		PostCode:  "AB1 2CD",
		Longitude: -0.1276,
		Latitude:  51.5072,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Riverside House", created.Name)
	assert.Equal(t, "1 River Lane", created.Address)
	assert.Equal(t, "AB1 2CD", created.PostCode)
	assert.InDelta(t, -0.1276, created.Longitude, 0.0001)
	assert.InDelta(t, 51.5072, created.Latitude, 0.0001)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestLocationRepository_Create_DuplicateName(t *testing.T) {
	ctx := context.Background()
	db := repoTestDB(t)
	truncateAll(t, ctx, db)

	seedLocation(t, ctx, db, "Riverside House")
	locationRepo := postgresql.NewLocationRepository(db)

	// The unique violation surfaces untouched so the service can fall
	// back to fetching the winning row.
	_, err := locationRepo.Create(ctx, location.Location{Name: "Riverside House"})

	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "23505", pgErr.Code)
}

func TestLocationRepository_GetByName(t *testing.T) {
	ctx := context.Background()
	db := repoTestDB(t)
	truncateAll(t, ctx, db)

	seeded := seedLocation(t, ctx, db, "Riverside House")
	locationRepo := postgresql.NewLocationRepository(db)

	found, err := locationRepo.GetByName(ctx, "Riverside House")
	assert.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)
	assert.Equal(t, "1 River Lane", found.Address)

	_, err = locationRepo.GetByName(ctx, "Nowhere Hall")
	assert.ErrorIs(t, err, location.ErrLocationNotFound)
}

func TestLocationRepository_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	db := repoTestDB(t)
	truncateAll(t, ctx, db)

	locationRepo := postgresql.NewLocationRepository(db)

	_, err := locationRepo.GetByID(ctx, uuid.NewString())

	assert.ErrorIs(t, err, location.ErrLocationNotFound)
}
