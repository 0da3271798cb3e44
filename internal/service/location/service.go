package location

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rotaworks/rota-backend-go/internal/domain/location"
)

type LocationServiceImpl struct {
	location.LocationRepository
}

func NewLocationService(locationRepository location.LocationRepository) location.LocationService {
	return &LocationServiceImpl{
		LocationRepository: locationRepository,
	}
}

// Resolve implements location.LocationService. Locations are shared
// across shifts and keyed by name: the first payload to mention a name
// creates the row, later payloads reuse it as stored.
func (s *LocationServiceImpl) Resolve(ctx context.Context, payload location.Payload) (location.Location, error) {
	found, err := s.LocationRepository.GetByName(ctx, payload.Name)
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, location.ErrLocationNotFound) {
		return location.Location{}, fmt.Errorf("failed to get location by name: %w", err)
	}

	created, err := s.LocationRepository.Create(ctx, location.Location{
		Name:          payload.Name,
		Address:       payload.Address,
		PostCode:      payload.PostCode,
		Distance:      payload.Distance,
		Constituency:  payload.Constituency,
		AdminDistrict: payload.AdminDistrict,
		Longitude:     payload.Coordinates.Longitude,
		Latitude:      payload.Coordinates.Latitude,
		Approximate:   payload.Coordinates.Approximate,
	})
	if err != nil {
		// Check for duplicate name (unique constraint violation)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				// A concurrent request created the row first, reuse it
				return s.LocationRepository.GetByName(ctx, payload.Name)
			}
		}
		return location.Location{}, fmt.Errorf("failed to create location: %w", err)
	}

	return created, nil
}

// GetByID implements location.LocationService.
func (s *LocationServiceImpl) GetByID(ctx context.Context, id string) (location.Location, error) {
	return s.LocationRepository.GetByID(ctx, id)
}
