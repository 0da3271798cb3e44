package location

import "context"

type LocationRepository interface {
	Create(ctx context.Context, loc Location) (Location, error)
	GetByID(ctx context.Context, id string) (Location, error)
	GetByName(ctx context.Context, name string) (Location, error)
}
