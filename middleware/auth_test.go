package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anthemnandani/projec-traking-system-backend/models"
	"github.com/anthemnandani/projec-traking-system-backend/services"
)

func newProtectedRouter(tokens *services.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", Authenticate(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	router.POST("/admin-only", Authenticate(tokens), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func get(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticateMissingHeader(t *testing.T) {
	router := newProtectedRouter(services.NewTokenService("test-secret"))
	rec := get(router, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateValidToken(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	router := newProtectedRouter(tokens)

	userID := uuid.NewString()
	pair, err := tokens.GenerateTokenPair(userID, "ada@example.com", models.RoleUser, "")
	require.NoError(t, err)

	rec := get(router, "/protected", pair.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID)
}

func TestAuthenticateRejectsRefreshToken(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	router := newProtectedRouter(tokens)

	pair, err := tokens.GenerateTokenPair(uuid.NewString(), "ada@example.com", models.RoleUser, "")
	require.NoError(t, err)

	rec := get(router, "/protected", pair.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminForbidsUsers(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	router := newProtectedRouter(tokens)

	pair, err := tokens.GenerateTokenPair(uuid.NewString(), "ada@example.com", models.RoleUser, "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Only admins can perform this action")
}

func TestRequireAdminAllowsAdmins(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	router := newProtectedRouter(tokens)

	pair, err := tokens.GenerateTokenPair(uuid.NewString(), "root@example.com", models.RoleAdmin, "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
