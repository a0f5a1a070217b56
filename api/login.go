package api

import (
	"context"
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/calloway-legal/firmsite/api/common"
	"github.com/calloway-legal/firmsite/config"
	utilscrypto "github.com/calloway-legal/firmsite/utils/crypto"
	"github.com/gin-gonic/gin"
)

type adminLoginRequestBody struct {
	Key string `json:"key" binding:"required"`
}

type adminLoginResponse struct {
	AccessToken       string `json:"access_token"`
	AccessTokenExpiry int64  `json:"access_token_expiry"`
}

// AttemptLimiter 登录尝试限制（实现见 api/middleware/loginlimit.go）
type AttemptLimiter interface {
	Allow(ctx context.Context, clientID string) bool
	Reset(ctx context.Context, clientID string)
}

// LoginHandler 管理后台登录
type LoginHandler struct {
	cfg     *config.Config
	limiter AttemptLimiter
}

// NewLoginHandler 创建登录处理器
func NewLoginHandler(cfg *config.Config, limiter AttemptLimiter) *LoginHandler {
	return &LoginHandler{cfg: cfg, limiter: limiter}
}

// LoginHandlerFunc admin login with the shared back-office key
func (h *LoginHandler) LoginHandlerFunc(c *gin.Context) {
	clientID := common.ClientIP(c)

	if h.limiter != nil && !h.limiter.Allow(c.Request.Context(), clientID) {
		common.RespondError(c, http.StatusTooManyRequests, "Too many failed attempts, try again later")
		return
	}

	var req adminLoginRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	valid, err := h.validateKey(req.Key)
	if err != nil {
		log.Printf("LoginHandler key validation error: %v", err)
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !valid {
		common.RespondError(c, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	token, expiry, err := GenerateAdminToken()
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	if h.limiter != nil {
		h.limiter.Reset(c.Request.Context(), clientID)
	}

	common.RespondSuccessMessage(c, "Login successful", adminLoginResponse{
		AccessToken:       "Bearer " + token,
		AccessTokenExpiry: expiry.Unix(),
	})
}

// validateKey 校验后台密钥
// 优先使用 argon2id 哈希；仅开发环境允许明文 admin_key 回退
func (h *LoginHandler) validateKey(key string) (bool, error) {
	if h.cfg.AdminKeyHash != "" {
		return utilscrypto.CompareKeyAndHash(key, h.cfg.AdminKeyHash)
	}

	if h.cfg.AdminKey != "" && config.IsDevelopment() {
		return subtle.ConstantTimeCompare([]byte(key), []byte(h.cfg.AdminKey)) == 1, nil
	}

	return false, nil
}
