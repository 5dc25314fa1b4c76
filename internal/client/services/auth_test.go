package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupilot/edupilot/internal/client/client"
	"github.com/edupilot/edupilot/internal/client/models"
	"github.com/edupilot/edupilot/internal/client/session"
	"github.com/edupilot/edupilot/internal/client/validation"
	"github.com/edupilot/edupilot/internal/common"
	"github.com/edupilot/edupilot/internal/logging"
)

func TestAuthService_Register_EstablishesSession(t *testing.T) {
	env := newEnv(t)
	svc := NewAuthService(env.client, env.session, logging.NewNop())
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		FullName:        "Ada",
		Email:           "ada@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		CareerGoal:      "Data Engineer",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.FullName)

	snap := env.session.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	assert.NotEmpty(t, snap.Token)
	assert.Equal(t, "Ada", snap.User.FullName)
	require.NotNil(t, snap.User.CareerGoal)
	assert.Equal(t, "Data Engineer", *snap.User.CareerGoal)

	stored, ok, err := env.store.Get(ctx, common.TokenStorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, snap.Token, stored)
}

func TestAuthService_Register_LocalChecks(t *testing.T) {
	tests := []struct {
		name string
		in   RegisterInput
		want string
	}{
		{
			name: "mismatch",
			in:   RegisterInput{FullName: "Ada", Email: "ada@example.com", Password: "secret1", ConfirmPassword: "secret2"},
			want: "Passwords do not match",
		},
		{
			name: "short password",
			in:   RegisterInput{FullName: "Ada", Email: "ada@example.com", Password: "abc", ConfirmPassword: "abc"},
			want: "Password must be at least 6 characters long",
		},
		{
			name: "missing name",
			in:   RegisterInput{Email: "ada@example.com", Password: "secret1", ConfirmPassword: "secret1"},
			want: "Please enter your full name",
		},
		{
			name: "bad email",
			in:   RegisterInput{FullName: "Ada", Email: "ada", Password: "secret1", ConfirmPassword: "secret1"},
			want: "email must be a valid email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(t)
			svc := NewAuthService(env.client, env.session, logging.NewNop())

			_, err := svc.Register(context.Background(), tt.in)
			var verr *validation.Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.want, Message(err, "Registration failed"))
			assert.Zero(t, env.srv.Calls(http.MethodPost, "/api/auth/register"))
			assert.False(t, env.session.IsAuthenticated())
		})
	}
}

func TestAuthService_Register_DuplicateShowsServerDetail(t *testing.T) {
	env := newEnv(t)
	env.srv.SeedUser("ada@example.com", "secret1", "Ada")
	svc := NewAuthService(env.client, env.session, logging.NewNop())

	_, err := svc.Register(context.Background(), RegisterInput{FullName: "Ada", Email: "ada@example.com", Password: "secret1", ConfirmPassword: "secret1"})
	require.ErrorIs(t, err, client.ErrValidation)
	assert.Equal(t, "Email already registered", Message(err, "Registration failed"))
	assert.False(t, env.session.IsAuthenticated())
}

func TestAuthService_Login(t *testing.T) {
	env := newEnv(t)
	seeded := env.srv.SeedUser("ada@example.com", "secret1", "Ada")
	svc := NewAuthService(env.client, env.session, logging.NewNop())
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginInput{Email: "ada@example.com", Password: "wrong"})
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, "Incorrect email or password", Message(err, "Login failed"))
	assert.False(t, env.session.IsAuthenticated())

	user, err := svc.Login(ctx, LoginInput{Email: "  ada@example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, user.ID)
	assert.True(t, env.session.IsAuthenticated())
}

func TestAuthService_Login_LocalChecks(t *testing.T) {
	env := newEnv(t)
	svc := NewAuthService(env.client, env.session, logging.NewNop())

	_, err := svc.Login(context.Background(), LoginInput{Email: "nope", Password: "x"})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("email"))
	assert.Zero(t, env.srv.Calls(http.MethodPost, "/api/auth/login"))
}

func TestAuthService_Login_PersistenceFailureKeepsMemorySession(t *testing.T) {
	env := newEnv(t)
	env.srv.SeedUser("ada@example.com", "secret1", "Ada")
	env.store.FailWrites = errors.New("disk full")
	svc := NewAuthService(env.client, env.session, logging.NewNop())

	user, err := svc.Login(context.Background(), LoginInput{Email: "ada@example.com", Password: "secret1"})
	require.Error(t, err)
	require.NotNil(t, user)
	assert.True(t, env.session.IsAuthenticated())
}

func TestAuthService_RehydrateThenRefreshProfile(t *testing.T) {
	env := newEnv(t)
	user := env.srv.SeedUser("ada@example.com", "secret1", "Ada")
	ctx := context.Background()
	require.NoError(t, env.store.Set(ctx, common.TokenStorageKey, env.srv.Token(user)))

	svc := NewAuthService(env.client, env.session, logging.NewNop())

	rehydrated, err := svc.Rehydrate(ctx)
	require.NoError(t, err)
	require.True(t, rehydrated)
	assert.True(t, env.session.Snapshot().Placeholder())

	profile, err := svc.RefreshProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.FullName)
	assert.False(t, env.session.Snapshot().Placeholder())
	assert.Equal(t, "Ada", env.session.Snapshot().User.FullName)
}

func TestAuthService_RefreshProfile_ExpiredTokenForcesLogout(t *testing.T) {
	env := newEnv(t)
	user := env.srv.SeedUser("ada@example.com", "secret1", "Ada")
	ctx := context.Background()
	require.NoError(t, env.session.SetAuth(ctx, &user, env.srv.ExpiredToken(user)))

	svc := NewAuthService(env.client, env.session, logging.NewNop())
	_, err := svc.RefreshProfile(ctx)
	require.ErrorIs(t, err, client.ErrUnauthorized)

	assert.False(t, env.session.IsAuthenticated())
	_, ok, err := env.store.Get(ctx, common.TokenStorageKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthService_RequiresSession(t *testing.T) {
	env := newEnv(t)
	svc := NewAuthService(env.client, env.session, logging.NewNop())

	_, err := svc.RefreshProfile(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = svc.UpdateProfile(context.Background(), models.ProfileUpdate{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, "Please log in first", Message(err, "x"))
}

func TestAuthService_UpdateProfile(t *testing.T) {
	env := newEnv(t)
	env.signIn(t)
	svc := NewAuthService(env.client, env.session, logging.NewNop())
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, models.ProfileUpdate{CurrentYear: ptr(9)})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "current_year must be 6 or less", verr.Error())
	assert.Zero(t, env.srv.Calls(http.MethodPut, "/api/auth/me"))

	profile, err := svc.UpdateProfile(ctx, models.ProfileUpdate{CareerGoal: ptr("Backend Engineer"), CurrentYear: ptr(2)})
	require.NoError(t, err)
	require.NotNil(t, profile.CareerGoal)
	assert.Equal(t, "Backend Engineer", *profile.CareerGoal)

	snap := env.session.Snapshot()
	assert.Equal(t, "Backend Engineer", *snap.User.CareerGoal)
	assert.Equal(t, 2, *snap.User.CurrentYear)
	assert.Equal(t, "Ada Lovelace", snap.User.FullName)
}

func TestAuthService_LogoutAndPing(t *testing.T) {
	env := newEnv(t)
	env.signIn(t)
	svc := NewAuthService(env.client, env.session, logging.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.Ping(ctx))
	require.NoError(t, svc.Logout(ctx))
	assert.Equal(t, session.Session{}, env.session.Snapshot())

	env.srv.Close()
	err := svc.Ping(ctx)
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Equal(t, NetworkMessage, Message(err, "x"))
}
