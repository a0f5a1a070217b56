// Package site serves the firm-wide settings document.
package site

import (
	"net/http"

	"github.com/calloway-legal/firmsite/api/common"
	"github.com/calloway-legal/firmsite/internal/settings"
	"github.com/gin-gonic/gin"
)

// Handler 站点设置处理器
type Handler struct {
	manager *settings.Manager
}

// NewHandler 站点设置处理器
func NewHandler(manager *settings.Manager) *Handler {
	return &Handler{manager: manager}
}

// Get 公开读取站点设置
func (h *Handler) Get(c *gin.Context) {
	site, err := h.manager.Site(c.Request.Context())
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to load site settings")
		return
	}
	common.RespondSuccess(c, site)
}

// AdminUpdate 后台整体覆盖站点设置
func (h *Handler) AdminUpdate(c *gin.Context) {
	var req settings.SiteSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid settings document")
		return
	}
	if err := h.manager.UpdateSite(c.Request.Context(), &req); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to save site settings")
		return
	}
	common.RespondSuccess(c, req)
}
