package service

import (
	"context"
	"testing"
	"time"

	"github.com/Ines207/ARI/internal/config"
	"github.com/Ines207/ARI/internal/dto"
	"github.com/Ines207/ARI/internal/repository/contract"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (IAuthService, contract.UserStore) {
	t.Helper()
	store := newTestStore(t)
	sessions := NewSessionService(store)
	authCfg := config.AuthConfig{JWTSecret: "test-secret", TokenExpiry: time.Hour}
	return NewAuthService(store, sessions, authCfg, nopLogger{}), store
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, store := newAuthFixture(t)
	ctx := context.Background()

	age := 27
	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "ines",
		Password: "s3cret-pass",
		Age:      &age,
		Gender:   "female",
	})
	require.NoError(t, err)
	assert.Equal(t, "ines", resp.Username)

	user, err := store.FindByUsername(ctx, "ines")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", user.CredentialHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.CredentialHash), []byte("s3cret-pass")))
	require.NotNil(t, user.Profile.Age)
	assert.Equal(t, 27, *user.Profile.Age)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, store := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Username: "ines", Password: "first-pass"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Username: "ines", Password: "second-pass"})
	assert.ErrorIs(t, err, ErrUserExists)

	// The original credential survives.
	user, err := store.FindByUsername(ctx, "ines")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.CredentialHash), []byte("first-pass")))
}

func TestLoginIssuesTokenAndCreatesSession(t *testing.T) {
	svc, store := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Username: "ines", Password: "s3cret-pass"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Username: "ines", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "ines", resp.Username)
	assert.NotEmpty(t, resp.ActiveSessionID, "first login gets a fresh session")

	token, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "ines", claims["username"])

	user, err := store.FindByUsername(ctx, "ines")
	require.NoError(t, err)
	assert.Equal(t, resp.ActiveSessionID, user.ActiveSessionID)
}

func TestLoginReusesActiveSession(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Username: "ines", Password: "s3cret-pass"})
	require.NoError(t, err)

	first, err := svc.Login(ctx, &dto.LoginRequest{Username: "ines", Password: "s3cret-pass"})
	require.NoError(t, err)
	second, err := svc.Login(ctx, &dto.LoginRequest{Username: "ines", Password: "s3cret-pass"})
	require.NoError(t, err)

	assert.Equal(t, first.ActiveSessionID, second.ActiveSessionID)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Username: "ines", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "ines", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrWrongPassword)
}
