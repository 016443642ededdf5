package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vkotlyar/go-host-keeper/internal/logger"
	"github.com/vkotlyar/go-host-keeper/internal/mock"
	"github.com/vkotlyar/go-host-keeper/internal/service"
	"github.com/vkotlyar/go-host-keeper/internal/store"
	"github.com/vkotlyar/go-host-keeper/models"
)

// newTestHandler wires a Handler over mocked services and returns the mocks
// for expectation setup.
func newTestHandler(t *testing.T, ctrl *gomock.Controller) (*Handler, *mock.MockAuthService, *mock.MockProfileService) {
	t.Helper()

	auth := mock.NewMockAuthService(ctrl)
	profiles := mock.NewMockProfileService(ctrl)

	h := NewHandler(&service.Services{
		AuthService:    auth,
		ProfileService: profiles,
	}, "test-version", logger.Nop())

	return h, auth, profiles
}

func userBody(t *testing.T, user models.User) *bytes.Buffer {
	t.Helper()

	body, err := json.Marshal(user)
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

// ---- register ----

func TestHandler_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, auth, _ := newTestHandler(t, ctrl)
	router := h.Init()

	incoming := models.User{Login: "john", AuthHash: "derived", EncryptionSalt: "73616c74"}
	registered := incoming
	registered.UserID = 42

	auth.EXPECT().RegisterUser(gomock.Any(), incoming).Return(registered, nil)
	auth.EXPECT().CreateToken(gomock.Any(), registered).Return(models.Token{SignedString: "signed-jwt"}, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/auth/register", userBody(t, incoming))
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bearer signed-jwt", w.Header().Get("Authorization"))
}

func TestHandler_Register_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _ := newTestHandler(t, ctrl)
	router := h.Init()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString("{not json"))
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Register_LoginTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, auth, _ := newTestHandler(t, ctrl)
	router := h.Init()

	auth.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrLoginAlreadyExists)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/auth/register", userBody(t, models.User{Login: "john", AuthHash: "h"}))
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_Register_InvalidData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, auth, _ := newTestHandler(t, ctrl)
	router := h.Init()

	auth.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(models.User{}, service.ErrInvalidDataProvided)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/auth/register", userBody(t, models.User{}))
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ---- login ----

func TestHandler_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, auth, _ := newTestHandler(t, ctrl)
	router := h.Init()

	incoming := models.User{Login: "john", AuthHash: "derived"}
	found := models.User{UserID: 42, Login: "john"}

	auth.EXPECT().Login(gomock.Any(), incoming).Return(found, nil)
	auth.EXPECT().CreateToken(gomock.Any(), found).Return(models.Token{SignedString: "signed-jwt"}, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", userBody(t, incoming))
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bearer signed-jwt", w.Header().Get("Authorization"))
}

func TestHandler_Login_WrongCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, auth, _ := newTestHandler(t, ctrl)
	router := h.Init()

	tests := []struct {
		name string
		err  error
	}{
		{name: "wrong password", err: service.ErrWrongPassword},
		{name: "unknown user", err: store.ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{}, tt.err)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/auth/login", userBody(t, models.User{Login: "john", AuthHash: "h"}))
			router.ServeHTTP(w, r)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Empty(t, w.Header().Get("Authorization"))
		})
	}
}

func TestHandler_Login_TokenCreationFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, auth, _ := newTestHandler(t, ctrl)
	router := h.Init()

	auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{UserID: 42}, nil)
	auth.EXPECT().CreateToken(gomock.Any(), gomock.Any()).Return(models.Token{}, errors.New("sign failed"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", userBody(t, models.User{Login: "john", AuthHash: "h"}))
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// ---- salt ----

func TestHandler_Salt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, auth, _ := newTestHandler(t, ctrl)
	router := h.Init()

	auth.EXPECT().Salt(gomock.Any(), "john").
		Return(models.User{Login: "john", EncryptionSalt: "73616c74"}, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/auth/salt?login=john", nil)
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "73616c74", user.EncryptionSalt)
	assert.Empty(t, user.AuthHash)
}

func TestHandler_Salt_UnknownLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, auth, _ := newTestHandler(t, ctrl)
	router := h.Init()

	auth.EXPECT().Salt(gomock.Any(), "ghost").Return(models.User{}, store.ErrUserNotFound)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/auth/salt?login=ghost", nil)
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ---- version ----

func TestHandler_Version(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _ := newTestHandler(t, ctrl)
	router := h.Init()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test-version", w.Body.String())
}
