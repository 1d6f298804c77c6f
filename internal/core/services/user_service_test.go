package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bhhaskin/workspaces_app/internal/apperrors"
	"github.com/bhhaskin/workspaces_app/internal/core/domain"
	"github.com/bhhaskin/workspaces_app/internal/core/services"
	"github.com/bhhaskin/workspaces_app/internal/dto"
	"github.com/bhhaskin/workspaces_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	repo := &MockUserRepository{}
	svc := services.NewUserService(repo)

	var saved *domain.User
	repo.SaveUserFn = func(ctx context.Context, user domain.User) error {
		saved = &user
		return nil
	}

	user, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "jane",
		Name:     "Jane Doe",
		Email:    "  Jane@Example.COM ",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, domain.ProviderLocal, user.AuthProvider)
	require.NotNil(t, user.PasswordHash)
	assert.NotEqual(t, "s3cret-pass", *user.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("s3cret-pass", *user.PasswordHash))
}

func TestCreateUserDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := &MockUserRepository{
		SaveUserFn: func(ctx context.Context, user domain.User) error {
			return apperrors.ErrDuplicate
		},
	}
	svc := services.NewUserService(repo)

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "jane",
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestCreateOAuthUser(t *testing.T) {
	ctx := context.Background()
	info := &domain.GoogleUserInfo{
		Sub:           "google-sub-1",
		Email:         "Jane@Example.com",
		EmailVerified: true,
		Name:          "Jane Doe",
	}

	t.Run("existing email returns existing user", func(t *testing.T) {
		existing := testUser("user-jane")
		repo := &MockUserRepository{
			FindUserByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
				assert.Equal(t, "jane@example.com", email)
				return existing, nil
			},
		}
		svc := services.NewUserService(repo)

		user, err := svc.CreateOAuthUser(ctx, info)
		require.NoError(t, err)
		assert.Same(t, existing, user)
	})

	t.Run("new identity gets a passwordless account", func(t *testing.T) {
		repo := &MockUserRepository{
			FindUserByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
				return nil, apperrors.ErrNotFound
			},
			SaveUserFn: func(ctx context.Context, user domain.User) error {
				return nil
			},
		}
		svc := services.NewUserService(repo)

		user, err := svc.CreateOAuthUser(ctx, info)
		require.NoError(t, err)
		assert.Equal(t, domain.ProviderGoogle, user.AuthProvider)
		assert.Nil(t, user.PasswordHash)
		assert.True(t, user.IsVerified)
		assert.Equal(t, "jane@example.com", user.Username)
	})
}

func TestAuthenticateUser(t *testing.T) {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	require.NoError(t, err)

	newRepo := func(user *domain.User) *MockUserRepository {
		return &MockUserRepository{
			FindUserByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
				if user == nil {
					return nil, apperrors.ErrNotFound
				}
				return user, nil
			},
		}
	}

	t.Run("valid credentials", func(t *testing.T) {
		account := testUser("user-1")
		account.PasswordHash = &hash
		svc := services.NewUserService(newRepo(account))

		user, err := svc.AuthenticateUser(ctx, "user-1", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		account := testUser("user-1")
		account.PasswordHash = &hash
		svc := services.NewUserService(newRepo(account))

		_, err := svc.AuthenticateUser(ctx, "user-1", "wrong")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("unknown username", func(t *testing.T) {
		svc := services.NewUserService(newRepo(nil))
		_, err := svc.AuthenticateUser(ctx, "ghost", "whatever")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("oauth account has no local password", func(t *testing.T) {
		account := testUser("user-1")
		account.AuthProvider = domain.ProviderGoogle
		svc := services.NewUserService(newRepo(account))

		_, err := svc.AuthenticateUser(ctx, "user-1", "anything")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestUpdateUserSelfOnly(t *testing.T) {
	ctx := context.Background()
	repo := &MockUserRepository{
		FindUserByIDFn: func(ctx context.Context, userID string) (*domain.User, error) {
			return testUser(userID), nil
		},
		UpdateUserFn: func(ctx context.Context, user domain.User) error {
			return nil
		},
	}
	svc := services.NewUserService(repo)

	name := "New Name"
	user, err := svc.UpdateUser(ctx, "user-1", dto.UpdateUserRequest{Name: &name}, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "New Name", user.Name)

	_, err = svc.UpdateUser(ctx, "user-1", dto.UpdateUserRequest{Name: &name}, "user-2")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestDeleteUserSelfOnly(t *testing.T) {
	ctx := context.Background()
	deleted := false
	repo := &MockUserRepository{
		MarkUserDeletedFn: func(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
			deleted = true
			assert.Equal(t, "user-1", deletedBy)
			return nil
		},
	}
	svc := services.NewUserService(repo)

	require.NoError(t, svc.DeleteUser(ctx, "user-1", "user-1"))
	assert.True(t, deleted)

	err := svc.DeleteUser(ctx, "user-1", "user-2")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
