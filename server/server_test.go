package server

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/vibecheck/vibecheck/utils/dotenv"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// prepareTestServer builds a router with all routes registered against the
// given temp DB. No file store: upload tests construct their own.
func prepareTestServer(db *gorm.DB) *gin.Engine {
	router := gin.New()
	NewServer(db, nil).RegisterRoutes(router)
	return router
}

// testToken builds a bearer token for the given identity. The middleware
// decodes without verifying signatures, so any signing key works.
func testToken(t *testing.T, cognitoId string, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":              cognitoId,
		"custom:role":      role,
		"cognito:username": cognitoId + "_name",
		"email":            cognitoId + "@example.com",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

// doRequest performs one request against the router, JSON-encoding the body
// when present.
func doRequest(t *testing.T, router *gin.Engine, method string, path string, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a JSON response body into out.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
