package location

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rotaworks/rota-backend-go/internal/domain/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLocationRepo is an in-memory LocationRepository. Create can be
// rigged to fail and afterMiss lets a test slip a concurrent insert in
// behind a failed lookup.
type fakeLocationRepo struct {
	seq       int
	byName    map[string]location.Location
	createErr error
	afterMiss func()

	getByNameCalls int
	createCalls    int
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{byName: make(map[string]location.Location)}
}

func (r *fakeLocationRepo) Create(ctx context.Context, loc location.Location) (location.Location, error) {
	r.createCalls++
	if r.createErr != nil {
		return location.Location{}, r.createErr
	}
	r.seq++
	loc.ID = fmt.Sprintf("location-%d", r.seq)
	r.byName[loc.Name] = loc
	return loc, nil
}

func (r *fakeLocationRepo) GetByID(ctx context.Context, id string) (location.Location, error) {
	for _, loc := range r.byName {
		if loc.ID == id {
			return loc, nil
		}
	}
	return location.Location{}, location.ErrLocationNotFound
}

func (r *fakeLocationRepo) GetByName(ctx context.Context, name string) (location.Location, error) {
	r.getByNameCalls++
	loc, ok := r.byName[name]
	if !ok {
		if r.afterMiss != nil {
			r.afterMiss()
		}
		return location.Location{}, location.ErrLocationNotFound
	}
	return loc, nil
}

func payloadFor(name string) location.Payload {
	return location.Payload{
		Name:     name,
		Address:  "1 River Lane",
		PostCode: "AB1 2CD",
		Coordinates: location.CoordinatesPayload{
			Longitude: -0.1276,
			Latitude:  51.5072,
		},
	}
}

func TestLocationService_Resolve_CreatesWhenMissing(t *testing.T) {
	ctx := context.Background()
	repo := newFakeLocationRepo()
	svc := NewLocationService(repo)

	resolved, err := svc.Resolve(ctx, payloadFor("Riverside House"))

	require.NoError(t, err)
	assert.NotEmpty(t, resolved.ID)
	assert.Equal(t, "Riverside House", resolved.Name)
	assert.Equal(t, "1 River Lane", resolved.Address)
	assert.Equal(t, 1, repo.createCalls)

	stored, ok := repo.byName["Riverside House"]
	require.True(t, ok)
	assert.Equal(t, resolved.ID, stored.ID)
}

func TestLocationService_Resolve_StoredDetailsWin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeLocationRepo()
	svc := NewLocationService(repo)

	first, err := svc.Resolve(ctx, payloadFor("Riverside House"))
	require.NoError(t, err)

	// A later payload reuses the name but disagrees on every detail.
	// The stored record is returned unchanged.
	conflicting := location.Payload{
		Name:     "Riverside House",
		Address:  "99 Other Street",
		PostCode: "ZZ9 9ZZ",
		Coordinates: location.CoordinatesPayload{
			Longitude: 10,
			Latitude:  20,
		},
	}
	second, err := svc.Resolve(ctx, conflicting)

	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "1 River Lane", second.Address)
	assert.Equal(t, "AB1 2CD", second.PostCode)
	assert.Equal(t, -0.1276, second.Longitude)
	assert.Equal(t, 1, repo.createCalls)
}

func TestLocationService_Resolve_RetriesOnUniqueViolation(t *testing.T) {
	ctx := context.Background()
	repo := newFakeLocationRepo()
	svc := NewLocationService(repo)

	// A concurrent request inserts the same name between our lookup and
	// our insert: Create hits the unique index and the row is fetched
	// again instead of failing the request.
	winner := location.Location{ID: "location-9", Name: "Riverside House", Address: "1 River Lane"}
	repo.createErr = &pgconn.PgError{Code: "23505"}
	repo.afterMiss = func() {
		repo.byName[winner.Name] = winner
	}

	resolved, err := svc.Resolve(ctx, payloadFor("Riverside House"))

	require.NoError(t, err)
	assert.Equal(t, "location-9", resolved.ID)
	assert.Equal(t, 2, repo.getByNameCalls)
	assert.Equal(t, 1, repo.createCalls)
}

func TestLocationService_Resolve_CreateFailurePropagates(t *testing.T) {
	ctx := context.Background()
	repo := newFakeLocationRepo()
	svc := NewLocationService(repo)

	repo.createErr = errors.New("connection reset")

	_, err := svc.Resolve(ctx, payloadFor("Riverside House"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create location")
}

func TestLocationService_GetByID(t *testing.T) {
	ctx := context.Background()
	repo := newFakeLocationRepo()
	svc := NewLocationService(repo)

	created, err := svc.Resolve(ctx, payloadFor("Riverside House"))
	require.NoError(t, err)

	found, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Riverside House", found.Name)

	_, err = svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, location.ErrLocationNotFound)
}
