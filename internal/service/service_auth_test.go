package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vkotlyar/go-host-keeper/internal/config"
	"github.com/vkotlyar/go-host-keeper/internal/logger"
	"github.com/vkotlyar/go-host-keeper/internal/mock"
	"github.com/vkotlyar/go-host-keeper/internal/store"
	"github.com/vkotlyar/go-host-keeper/internal/utils"
	"github.com/vkotlyar/go-host-keeper/models"
)

const (
	testHashKey = "test-hash-key"
	testSignKey = "test-sign-key"
	testIssuer  = "host-keeper-test"
)

func newTestAuthService(t *testing.T, ctrl *gomock.Controller) (AuthService, *mock.MockUserRepository) {
	t.Helper()

	users := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(users, config.ServerApp{
		PasswordHashKey: testHashKey,
		TokenSignKey:    testSignKey,
		TokenIssuer:     testIssuer,
		TokenDuration:   time.Hour,
	}, logger.Nop())

	return svc, users
}

// ---- RegisterUser ----

func TestAuthService_RegisterUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users := newTestAuthService(t, ctrl)

	incoming := models.User{Login: "john", AuthHash: "client-derived", EncryptionSalt: "73616c74"}
	keyed := utils.HashString("client-derived", testHashKey)

	users.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user models.User) (models.User, error) {
			assert.Equal(t, keyed, user.AuthHash, "stored auth hash must be keyed, not the client value")
			user.UserID = 42
			return user, nil
		})

	registered, err := svc.RegisterUser(context.Background(), incoming)
	require.NoError(t, err)
	assert.Equal(t, int64(42), registered.UserID)
	assert.Equal(t, "john", registered.Login)
}

func TestAuthService_RegisterUser_InvalidData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthService(t, ctrl)

	tests := []struct {
		name string
		user models.User
	}{
		{name: "empty login", user: models.User{AuthHash: "h", EncryptionSalt: "s"}},
		{name: "empty auth hash", user: models.User{Login: "john", EncryptionSalt: "s"}},
		{name: "empty salt", user: models.User{Login: "john", AuthHash: "h"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterUser(context.Background(), tt.user)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestAuthService_RegisterUser_LoginTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users := newTestAuthService(t, ctrl)

	users.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrLoginAlreadyExists)

	_, err := svc.RegisterUser(context.Background(), models.User{Login: "john", AuthHash: "h", EncryptionSalt: "s"})
	assert.ErrorIs(t, err, store.ErrLoginAlreadyExists)
}

// ---- Login ----

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users := newTestAuthService(t, ctrl)

	stored := models.User{
		UserID:   42,
		Login:    "john",
		AuthHash: utils.HashString("client-derived", testHashKey),
	}
	users.EXPECT().FindUserByLogin(gomock.Any(), "john").Return(stored, nil)

	authenticated, err := svc.Login(context.Background(), models.User{Login: "john", AuthHash: "client-derived"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), authenticated.UserID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users := newTestAuthService(t, ctrl)

	stored := models.User{
		UserID:   42,
		Login:    "john",
		AuthHash: utils.HashString("the-right-value", testHashKey),
	}
	users.EXPECT().FindUserByLogin(gomock.Any(), "john").Return(stored, nil)

	_, err := svc.Login(context.Background(), models.User{Login: "john", AuthHash: "something-else"})
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users := newTestAuthService(t, ctrl)

	users.EXPECT().FindUserByLogin(gomock.Any(), "ghost").Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.Login(context.Background(), models.User{Login: "ghost", AuthHash: "h"})
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestAuthService_Login_InvalidData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthService(t, ctrl)

	_, err := svc.Login(context.Background(), models.User{Login: "john"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ---- Salt ----

func TestAuthService_Salt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users := newTestAuthService(t, ctrl)

	stored := models.User{
		UserID:         42,
		Login:          "john",
		AuthHash:       "never-leaves-the-server",
		EncryptionSalt: "73616c74",
	}
	users.EXPECT().FindUserByLogin(gomock.Any(), "john").Return(stored, nil)

	public, err := svc.Salt(context.Background(), "john")
	require.NoError(t, err)
	assert.Equal(t, "john", public.Login)
	assert.Equal(t, "73616c74", public.EncryptionSalt)
	assert.Empty(t, public.AuthHash, "auth hash must not be exposed by the salt lookup")
	assert.Zero(t, public.UserID)
}

func TestAuthService_Salt_EmptyLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthService(t, ctrl)

	_, err := svc.Salt(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ---- Tokens ----

func TestAuthService_TokenRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthService(t, ctrl)

	issued, err := svc.CreateToken(context.Background(), models.User{UserID: 42, Login: "john"})
	require.NoError(t, err)
	require.NotEmpty(t, issued.SignedString)

	parsed, err := svc.ParseToken(context.Background(), issued.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
}

func TestAuthService_ParseToken_Garbage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthService(t, ctrl)

	_, err := svc.ParseToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrTokenIsExpired)
}

func TestAuthService_ParseToken_ForeignSignKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	foreign, err := utils.GenerateJWTToken(testIssuer, 42, time.Hour, "some-other-key")
	require.NoError(t, err)

	svc, _ := newTestAuthService(t, ctrl)

	_, err = svc.ParseToken(context.Background(), foreign.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpired)
}

func TestAuthService_CreateToken_MissingSignKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewAuthService(mock.NewMockUserRepository(ctrl), config.ServerApp{
		TokenIssuer:   testIssuer,
		TokenDuration: time.Hour,
	}, logger.Nop())

	_, err := svc.CreateToken(context.Background(), models.User{UserID: 42})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTokenCreationFailed))
}
