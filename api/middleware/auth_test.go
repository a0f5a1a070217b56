package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/calloway-legal/firmsite/api"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProtectedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, api.TokenInit("auth-test-secret-0123456789abcdef", time.Hour))

	router := gin.New()
	router.GET("/admin/ping", RequireAdmin(), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestRequireAdmin(t *testing.T) {
	router := setupProtectedRouter(t)

	token, _, err := api.GenerateAdminToken()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRequireAdminMissingHeader(t *testing.T) {
	router := setupProtectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminBadToken(t *testing.T) {
	router := setupProtectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
