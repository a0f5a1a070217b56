package middleware

import (
	"time"

	"github.com/calloway-legal/firmsite/api/common"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// AccessLog 结构化访问日志
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		event := log.Info()
		if c.Writer.Status() >= 500 {
			event = log.Error()
		} else if c.Writer.Status() >= 400 {
			event = log.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("ip", common.ClientIP(c)).
			Msg("request")
	}
}
