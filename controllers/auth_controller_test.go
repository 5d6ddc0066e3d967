package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/anthemnandani/projec-traking-system-backend/models"
	"github.com/anthemnandani/projec-traking-system-backend/services"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) FindByClientID(ctx context.Context, clientID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func newAuthRouter(users *mockUserRepo) (*gin.Engine, *services.TokenService) {
	gin.SetMode(gin.TestMode)
	tokens := services.NewTokenService("test-secret")
	passwords := services.NewPasswordService()
	ac := NewAuthController(users, tokens, passwords, nil, "http://localhost:8080", zap.NewNop())

	router := gin.New()
	router.POST("/api/auth/register", ac.Register)
	router.POST("/api/auth/login", ac.Login)
	router.POST("/api/auth/refresh", ac.Refresh)
	return router, tokens
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	users := new(mockUserRepo)
	router, _ := newAuthRouter(users)

	rec := postJSON(router, "/api/auth/register", `{"name": "Ada", "email": "ada@example.com", "password": "weak"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	users.AssertNotCalled(t, "Create")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users := new(mockUserRepo)
	users.On("FindByEmail", mock.Anything, "ada@example.com").Return(&models.User{Email: "ada@example.com"}, nil)
	router, _ := newAuthRouter(users)

	rec := postJSON(router, "/api/auth/register", `{"name": "Ada", "email": "ada@example.com", "password": "Str0ng#Pass"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	users.AssertNotCalled(t, "Create")
}

func TestRegisterCreatesUser(t *testing.T) {
	users := new(mockUserRepo)
	users.On("FindByEmail", mock.Anything, "ada@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "ada@example.com" && u.Role == models.RoleUser && u.Password != "Str0ng#Pass"
	})).Return(nil)
	router, _ := newAuthRouter(users)

	rec := postJSON(router, "/api/auth/register", `{"name": "Ada", "email": "ada@example.com", "password": "Str0ng#Pass"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	users.AssertExpectations(t)
}

func TestLoginWrongPassword(t *testing.T) {
	passwords := services.NewPasswordService()
	hash, err := passwords.Hash("Str0ng#Pass")
	require.NoError(t, err)

	users := new(mockUserRepo)
	users.On("FindByEmail", mock.Anything, "ada@example.com").Return(&models.User{
		ID: uuid.New(), Email: "ada@example.com", Password: hash, Role: models.RoleUser,
	}, nil)
	router, _ := newAuthRouter(users)

	rec := postJSON(router, "/api/auth/login", `{"email": "ada@example.com", "password": "wrong-pass"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	users := new(mockUserRepo)
	users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
	router, _ := newAuthRouter(users)

	rec := postJSON(router, "/api/auth/login", `{"email": "ghost@example.com", "password": "Str0ng#Pass"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginIssuesTokens(t *testing.T) {
	passwords := services.NewPasswordService()
	hash, err := passwords.Hash("Str0ng#Pass")
	require.NoError(t, err)

	clientID := uuid.New()
	users := new(mockUserRepo)
	users.On("FindByEmail", mock.Anything, "ada@example.com").Return(&models.User{
		ID: uuid.New(), Email: "ada@example.com", Password: hash, Role: models.RoleUser, ClientID: &clientID,
	}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.LastLogin != nil
	})).Return(nil)
	router, tokens := newAuthRouter(users)

	rec := postJSON(router, "/api/auth/login", `{"email": "ada@example.com", "password": "Str0ng#Pass"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	claims, err := tokens.ValidateToken(resp.AccessToken, services.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, clientID.String(), claims.ClientID)

	_, err = tokens.ValidateToken(resp.RefreshToken, services.TokenTypeRefresh)
	assert.NoError(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	users := new(mockUserRepo)
	router, tokens := newAuthRouter(users)

	pair, err := tokens.GenerateTokenPair(uuid.NewString(), "ada@example.com", models.RoleUser, "")
	require.NoError(t, err)

	rec := postJSON(router, "/api/auth/refresh", `{"refreshToken": "`+pair.AccessToken+`"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
