package service_test

import (
	"context"
	"testing"

	"github.com/icares/memberportal/internal/repository/postgres"
	"github.com/icares/memberportal/internal/service"
	"github.com/icares/memberportal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	// Create a user for login tests
	user, rawPassword := testutil.NewUserBuilder().
		WithName("Login User").
		WithEmail("login@example.com").
		WithPassword("correctpassword").
		Build(t, testDB.DB)

	tests := []struct {
		name    string
		input   service.LoginInput
		wantErr error
	}{
		{
			name: "successful login",
			input: service.LoginInput{
				Email:    user.Email,
				Password: rawPassword,
			},
		},
		{
			name: "wrong password",
			input: service.LoginInput{
				Email:    user.Email,
				Password: "wrongpassword",
			},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name: "non-existent email",
			input: service.LoginInput{
				Email:    "nobody@example.com",
				Password: "anypassword",
			},
			wantErr: service.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authService.Login(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, result.Token)
			assert.Equal(t, user.ID, result.Session.UserID)
			assert.Equal(t, user.Name, result.Session.Name)
			assert.Equal(t, user.Email, result.Session.Email)
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().Build(t, testDB.DB)

	result, err := authService.Login(ctx, service.LoginInput{
		Email:    user.Email,
		Password: rawPassword,
	})
	require.NoError(t, err)

	t.Run("valid token resolves to session", func(t *testing.T) {
		session, err := authService.ValidateToken(ctx, result.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, session.UserID)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := authService.ValidateToken(ctx, "not-a-real-token")
		assert.ErrorIs(t, err, service.ErrInvalidSession)
	})

	t.Run("empty token is rejected", func(t *testing.T) {
		_, err := authService.ValidateToken(ctx, "")
		assert.ErrorIs(t, err, service.ErrInvalidSession)
	})

	t.Run("failed login leaves existing session untouched", func(t *testing.T) {
		_, err := authService.Login(ctx, service.LoginInput{
			Email:    user.Email,
			Password: "wrongpassword",
		})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)

		_, err = authService.ValidateToken(ctx, result.Token)
		assert.NoError(t, err)
	})
}

func TestAuthService_Logout(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().Build(t, testDB.DB)

	result, err := authService.Login(ctx, service.LoginInput{
		Email:    user.Email,
		Password: rawPassword,
	})
	require.NoError(t, err)

	require.NoError(t, authService.Logout(ctx, result.Token))

	_, err = authService.ValidateToken(ctx, result.Token)
	assert.ErrorIs(t, err, service.ErrInvalidSession)

	// Logging out again, or with no session at all, is not an error
	assert.NoError(t, authService.Logout(ctx, result.Token))
	assert.NoError(t, authService.Logout(ctx, ""))
}

func TestAuthService_RefreshSnapshot(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().
		WithName("Before").
		Build(t, testDB.DB)

	result, err := authService.Login(ctx, service.LoginInput{
		Email:    user.Email,
		Password: rawPassword,
	})
	require.NoError(t, err)

	// The snapshot is frozen at login until explicitly refreshed
	user.Name = "After"
	require.NoError(t, repos.User.Update(ctx, user))

	session, err := authService.ValidateToken(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, "Before", session.Name)

	require.NoError(t, authService.RefreshSnapshot(ctx, user.ID, user.Name, user.Email))

	session, err = authService.ValidateToken(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, "After", session.Name)
}
