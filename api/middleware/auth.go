package middleware

import (
	"net/http"

	"github.com/calloway-legal/firmsite/api"
	"github.com/calloway-legal/firmsite/api/common"
	"github.com/gin-gonic/gin"
)

// RequireAdmin 校验后台会话 JWT
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			common.RespondErrorAbort(c, http.StatusUnauthorized, "Missing authorization header")
			return
		}

		claims, err := api.Parse(token)
		if err != nil {
			common.RespondErrorAbort(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		role, _ := claims["role"].(string)
		if role != "admin" {
			common.RespondErrorAbort(c, http.StatusForbidden, "Insufficient permissions")
			return
		}

		c.Next()
	}
}
