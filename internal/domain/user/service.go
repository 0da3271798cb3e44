package user

import "context"

type UserService interface {
	// ListUsers returns the worker directory ordered by name.
	ListUsers(ctx context.Context) ([]UserResponse, error)
	GetUser(ctx context.Context, id string) (UserResponse, error)
}
