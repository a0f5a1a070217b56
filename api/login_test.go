package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/calloway-legal/firmsite/api"
	"github.com/calloway-legal/firmsite/api/middleware"
	"github.com/calloway-legal/firmsite/config"
	utilscrypto "github.com/calloway-legal/firmsite/utils/crypto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-0123456789abcdef"

func setupLoginRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, api.TokenInit(testJWTSecret, time.Hour))

	limiter := middleware.NewLoginLimiter(middleware.NewMemoryAttemptStore(15*time.Minute), 5, 15*time.Minute)
	handler := api.NewLoginHandler(cfg, limiter)

	router := gin.New()
	router.POST("/api/admin/login", handler.LoginHandlerFunc)
	return router
}

func postLogin(router *gin.Engine, key string, ip string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"key": key})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginSuccess(t *testing.T) {
	hash, err := utilscrypto.HashKey("correct-horse")
	require.NoError(t, err)
	router := setupLoginRouter(t, &config.Config{AdminKeyHash: hash})

	w := postLogin(router, "correct-horse", "9.9.9.9")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			AccessToken       string `json:"access_token"`
			AccessTokenExpiry int64  `json:"access_token_expiry"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Contains(t, resp.Data.AccessToken, "Bearer ")
	assert.Greater(t, resp.Data.AccessTokenExpiry, time.Now().Unix())

	// 返回的 token 可被解析且带 admin 角色
	claims, err := api.Parse(resp.Data.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims["role"])
}

func TestLoginInvalidKey(t *testing.T) {
	hash, err := utilscrypto.HashKey("correct-horse")
	require.NoError(t, err)
	router := setupLoginRouter(t, &config.Config{AdminKeyHash: hash})

	w := postLogin(router, "wrong-key", "9.9.9.9")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginMissingKey(t *testing.T) {
	router := setupLoginRouter(t, &config.Config{AdminKey: "k"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginLockoutAfterFailures(t *testing.T) {
	hash, err := utilscrypto.HashKey("correct-horse")
	require.NoError(t, err)
	router := setupLoginRouter(t, &config.Config{AdminKeyHash: hash})

	// 5 次失败后第 6 次被 429
	for i := 0; i < 5; i++ {
		w := postLogin(router, "wrong", "7.7.7.7")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
	w := postLogin(router, "wrong", "7.7.7.7")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// 锁定期间正确密钥同样被拒
	w = postLogin(router, "correct-horse", "7.7.7.7")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// 其他 IP 不受影响
	w = postLogin(router, "correct-horse", "8.8.8.8")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginResetOnSuccess(t *testing.T) {
	hash, err := utilscrypto.HashKey("correct-horse")
	require.NoError(t, err)
	router := setupLoginRouter(t, &config.Config{AdminKeyHash: hash})

	// 几次失败后成功，计数应清零
	for i := 0; i < 4; i++ {
		postLogin(router, "wrong", "6.6.6.6")
	}
	w := postLogin(router, "correct-horse", "6.6.6.6")
	assert.Equal(t, http.StatusOK, w.Code)

	// 清零后又有完整的尝试预算
	for i := 0; i < 4; i++ {
		w = postLogin(router, "wrong", "6.6.6.6")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

func TestLoginPlaintextKeyDevOnly(t *testing.T) {
	// 无哈希时开发环境回退到明文比较
	router := setupLoginRouter(t, &config.Config{AdminKey: "dev-key"})
	w := postLogin(router, "dev-key", "5.5.5.5")
	assert.Equal(t, http.StatusOK, w.Code)
}
