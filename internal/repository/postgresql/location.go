package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rotaworks/rota-backend-go/internal/domain/location"
	"github.com/rotaworks/rota-backend-go/internal/pkg/database"
)

type locationRepositoryImpl struct {
	db *database.DB
}

func NewLocationRepository(db *database.DB) location.LocationRepository {
	return &locationRepositoryImpl{db: db}
}

// Create implements location.LocationRepository.
func (r *locationRepositoryImpl) Create(ctx context.Context, newLocation location.Location) (location.Location, error) {
	q := GetQuerier(ctx, r.db)

	if newLocation.ID == "" {
		newLocation.ID = uuid.New().String()
	}

	query := `
		INSERT INTO locations (
			id, name, address, post_code, distance, constituency, admin_district,
			longitude, latitude, approximate
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newLocation.ID,
		newLocation.Name,
		newLocation.Address,
		newLocation.PostCode,
		newLocation.Distance,
		newLocation.Constituency,
		newLocation.AdminDistrict,
		newLocation.Longitude,
		newLocation.Latitude,
		newLocation.Approximate,
	).Scan(&newLocation.CreatedAt, &newLocation.UpdatedAt)
	if err != nil {
		return location.Location{}, err
	}

	return newLocation, nil
}

// GetByID implements location.LocationRepository.
func (r *locationRepositoryImpl) GetByID(ctx context.Context, id string) (location.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, address, post_code, distance, constituency, admin_district,
			   longitude, latitude, approximate, created_at, updated_at
		FROM locations
		WHERE id = $1
	`

	var found location.Location
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.Name,
		&found.Address,
		&found.PostCode,
		&found.Distance,
		&found.Constituency,
		&found.AdminDistrict,
		&found.Longitude,
		&found.Latitude,
		&found.Approximate,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return location.Location{}, location.ErrLocationNotFound
		}
		return location.Location{}, fmt.Errorf("failed to get location by id: %w", err)
	}

	return found, nil
}

// GetByName implements location.LocationRepository.
func (r *locationRepositoryImpl) GetByName(ctx context.Context, name string) (location.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, address, post_code, distance, constituency, admin_district,
			   longitude, latitude, approximate, created_at, updated_at
		FROM locations
		WHERE name = $1
	`

	var found location.Location
	err := q.QueryRow(ctx, query, name).Scan(
		&found.ID,
		&found.Name,
		&found.Address,
		&found.PostCode,
		&found.Distance,
		&found.Constituency,
		&found.AdminDistrict,
		&found.Longitude,
		&found.Latitude,
		&found.Approximate,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return location.Location{}, location.ErrLocationNotFound
		}
		return location.Location{}, fmt.Errorf("failed to get location by name: %w", err)
	}

	return found, nil
}
