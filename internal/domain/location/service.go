package location

import "context"

type LocationService interface {
	// Resolve returns the stored location matching the payload's name,
	// creating it first if no such location exists. When the name is
	// already taken the stored details win over the payload's.
	Resolve(ctx context.Context, payload Payload) (Location, error)
	GetByID(ctx context.Context, id string) (Location, error)
}
