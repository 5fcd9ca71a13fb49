package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cinetrack/internal/database"
	"cinetrack/internal/domain"
	"cinetrack/internal/pkg/jwt"
	"cinetrack/internal/repository"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	jwtService := jwt.New("test_secret_key_32_characters_min", time.Hour)
	return NewService(repository.NewUserRepository(db), jwtService), db
}

func TestService_Register_Success(t *testing.T) {
	service, db := setupService(t)

	user, token, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Roberto Silva",
		Email:    "Roberto@Example.com",
		Password: "securepass123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "roberto@example.com", user.Email, "email should be stored lowercased")
	assert.NotEqual(t, "securepass123", user.PasswordHash)

	// registration creates an empty profile in the same transaction
	var profile domain.Profile
	require.NoError(t, db.First(&profile, "user_id = ?", user.ID).Error)
}

func TestService_Register_EmailExists(t *testing.T) {
	service, _ := setupService(t)

	_, _, err := service.Register(context.Background(), RegisterRequest{
		Name: "First", Email: "dup@example.com", Password: "password1",
	})
	require.NoError(t, err)

	// same address, different case
	_, _, err = service.Register(context.Background(), RegisterRequest{
		Name: "Second", Email: "DUP@example.com", Password: "password2",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestService_Login(t *testing.T) {
	service, _ := setupService(t)

	_, _, err := service.Register(context.Background(), RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: "password123",
	})
	require.NoError(t, err)

	user, token, err := service.Login(context.Background(), LoginRequest{
		Email: "ana@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Ana", user.Name)
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	service, _ := setupService(t)

	_, _, err := service.Register(context.Background(), RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: "password123",
	})
	require.NoError(t, err)

	// wrong password and unknown email must be indistinguishable
	_, _, err = service.Login(context.Background(), LoginRequest{
		Email: "ana@example.com", Password: "wrongpass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = service.Login(context.Background(), LoginRequest{
		Email: "nobody@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_GetCurrentUser_NotFound(t *testing.T) {
	service, _ := setupService(t)

	_, err := service.GetCurrentUser(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
