package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/rotaworks/rota-backend-go/internal/domain/location"
	"github.com/rotaworks/rota-backend-go/internal/domain/shift"
	"github.com/rotaworks/rota-backend-go/internal/domain/user"
	"github.com/rotaworks/rota-backend-go/internal/pkg/database"
	"github.com/rotaworks/rota-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

var (
	repoDB     *database.DB
	repoDBOnce sync.Once
)

// repoTestDB connects to the integration database named by
// TEST_DATABASE_URL and applies the migrations once. Tests are skipped
// when the variable is unset.
func repoTestDB(t *testing.T) *database.DB {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database integration tests")
	}

	repoDBOnce.Do(func() {
		var err error
		repoDB, err = database.NewPostgreSQLDB(dsn, 5, 1)
		if err != nil {
			panic("Failed to connect to test database: " + err.Error())
		}
		if err := database.Migrate(context.Background(), repoDB, "../../../../migrations"); err != nil {
			panic("Failed to migrate test database: " + err.Error())
		}
	})

	return repoDB
}

func truncateAll(t *testing.T, ctx context.Context, db *database.DB) {
	for _, table := range []string{"refresh_tokens", "shifts", "locations", "users"} {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func seedUser(t *testing.T, ctx context.Context, db *database.DB, name, email string) user.User {
	repo := postgresql.NewUserRepository(db)
	hash := "$2a$10$seeded-hash-not-checked-here"
	created, err := repo.Create(ctx, user.User{
		Name:         name,
		Email:        email,
		PasswordHash: &hash,
		Role:         user.RoleStaff,
	})
	require.NoError(t, err)
	return created
}

func seedLocation(t *testing.T, ctx context.Context, db *database.DB, name string) location.Location {
	repo := postgresql.NewLocationRepository(db)
	created, err := repo.Create(ctx, location.Location{
		Name:      name,
		Address:   "1 River Lane",
		PostCode:  "AB1 2CD",
		Longitude: -0.1276,
		Latitude:  51.5072,
	})
	require.NoError(t, err)
	return created
}

func seedShift(t *testing.T, ctx context.Context, db *database.DB, userID, locationID string, status shift.ShiftStatus) shift.Shift {
	repo := postgresql.NewShiftRepository(db)
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, shift.Shift{
		Title:             "Morning support",
		Role:              "Support Worker",
		TypeOfShift:       []shift.ShiftType{shift.TypeMorning, shift.TypeWeekday},
		UserID:            userID,
		LocationID:        locationID,
		Date:              date,
		StartTime:         date.Add(9 * time.Hour),
		FinishTime:        date.Add(17 * time.Hour),
		NumOfShiftsPerDay: 1,
		Status:            status,
	})
	require.NoError(t, err)
	return created
}
