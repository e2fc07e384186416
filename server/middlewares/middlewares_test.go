package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	// The middleware decodes without verifying, any signing key works here.
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func requestWithToken(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func protectedRouter(onRequest func(c *gin.Context), roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireRoles(roles...), func(c *gin.Context) {
		if onRequest != nil {
			onRequest(c)
		}
		c.Status(http.StatusOK)
	})
	return router
}

func TestRequireRolesMissingToken(t *testing.T) {
	router := protectedRouter(nil, RoleUser)

	w := requestWithToken(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A malformed Authorization header counts as no token.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRolesInvalidToken(t *testing.T) {
	router := protectedRouter(nil, RoleUser)
	w := requestWithToken(router, "not.a.jwt")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestRequireRolesRoleMismatch(t *testing.T) {
	router := protectedRouter(nil, RoleOwner)
	token := signedToken(t, jwt.MapClaims{"sub": "cognito-123", "custom:role": "user"})

	w := requestWithToken(router, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolesPopulatesPrincipal(t *testing.T) {
	var principal *Principal
	router := protectedRouter(func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		require.True(t, ok)
		principal = p
	}, RoleUser)

	token := signedToken(t, jwt.MapClaims{
		"sub":              "cognito-123",
		"custom:role":      "USER",
		"cognito:username": "alice_explores",
		"email":            "alice@example.com",
	})

	w := requestWithToken(router, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, principal)
	assert.Equal(t, "cognito-123", principal.Id)
	assert.Equal(t, RoleUser, principal.Role)
	assert.Equal(t, "alice_explores", principal.Username)
	assert.Equal(t, "alice@example.com", principal.Email)
}

func TestRequireRolesAnyOfMultipleRoles(t *testing.T) {
	router := protectedRouter(nil, RoleOwner, RoleAdmin)
	token := signedToken(t, jwt.MapClaims{"sub": "cognito-admin", "custom:role": "admin"})

	w := requestWithToken(router, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesMissingRoleClaim(t *testing.T) {
	router := protectedRouter(nil, RoleUser)
	token := signedToken(t, jwt.MapClaims{"sub": "cognito-123"})

	w := requestWithToken(router, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
