package services

import (
	"context"
	"testing"

	"github.com/Dosada05/sportscore-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	service := NewAuthService(newFakeUserRepo())

	user, err := service.Register(ctx, RegisterInput{
		Username: "referee1",
		Name:     "Main Referee",
		Password: "secret123",
		Role:     "referee",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, models.RoleReferee, user.Role)
	assert.Empty(t, user.PasswordHash)

	t.Run("defaults to viewer role", func(t *testing.T) {
		user, err := service.Register(ctx, RegisterInput{
			Username: "fan",
			Name:     "Just Watching",
			Password: "secret123",
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleViewer, user.Role)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		_, err := service.Register(ctx, RegisterInput{
			Username: "hacker",
			Name:     "Hacker",
			Password: "secret123",
			Role:     "superuser",
		})
		assert.ErrorIs(t, err, ErrAuthInvalidRole)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		_, err := service.Register(ctx, RegisterInput{
			Username: "referee1",
			Name:     "Impostor",
			Password: "secret123",
		})
		assert.ErrorIs(t, err, ErrAuthUsernameTaken)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	service := NewAuthService(newFakeUserRepo())

	_, err := service.Register(ctx, RegisterInput{
		Username: "admin1",
		Name:     "Admin",
		Password: "secret123",
		Role:     "admin",
	})
	require.NoError(t, err)

	user, err := service.Login(ctx, LoginInput{Username: "admin1", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Empty(t, user.PasswordHash)

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(ctx, LoginInput{Username: "admin1", Password: "wrong"})
		assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := service.Login(ctx, LoginInput{Username: "ghost", Password: "secret123"})
		assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
	})
}
