package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rotaworks/rota-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users   []user.User
	listErr error
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	f.users = append(f.users, newUser)
	return newUser, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.users, nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	return user.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) LinkPasswordAccount(ctx context.Context, id string, password string) (user.User, error) {
	return user.User{}, pgx.ErrNoRows
}

func testUser(id, name, email string) user.User {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return user.User{
		ID:        id,
		Name:      name,
		Email:     email,
		Role:      user.RoleStaff,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestUserService_ListUsers_Success(t *testing.T) {
	repo := &fakeUserRepo{users: []user.User{
		testUser("user-1", "Dana Whitfield", "dana@example.com"),
		testUser("user-2", "Priya Nair", "priya@example.com"),
	}}
	svc := NewUserService(repo)

	result, err := svc.ListUsers(context.Background())

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Dana Whitfield", result[0].Name)
	assert.Equal(t, "staff", result[0].Role)
	assert.Equal(t, "2026-08-01T12:00:00Z", result[0].CreatedAt)
}

func TestUserService_ListUsers_Empty(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{})

	result, err := svc.ListUsers(context.Background())

	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NotNil(t, result, "an empty list serializes as [], not null")
}

func TestUserService_ListUsers_RepoFailure(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{listErr: errors.New("connection reset")})

	_, err := svc.ListUsers(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list users")
}

func TestUserService_GetUser_Success(t *testing.T) {
	repo := &fakeUserRepo{users: []user.User{
		testUser("user-1", "Dana Whitfield", "dana@example.com"),
	}}
	svc := NewUserService(repo)

	result, err := svc.GetUser(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "user-1", result.ID)
	assert.Equal(t, "dana@example.com", result.Email)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{})

	_, err := svc.GetUser(context.Background(), "missing")

	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
