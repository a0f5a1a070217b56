// Package newsletter exposes the double opt-in subscription endpoints.
package newsletter

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/calloway-legal/firmsite/api/common"
	newsletterSvc "github.com/calloway-legal/firmsite/internal/newsletter"
	"github.com/calloway-legal/firmsite/database/repo/subscribers"
	"github.com/gin-gonic/gin"
)

// Handler 订阅处理器
type Handler struct {
	service *newsletterSvc.Service
	repo    *subscribers.Repository
}

// NewHandler 订阅处理器
func NewHandler(service *newsletterSvc.Service, repo *subscribers.Repository) *Handler {
	return &Handler{service: service, repo: repo}
}

type subscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

// Subscribe 登记订阅
// 确认 token 正常应通过邮件送达；本服务不带邮件通道，由响应返回给前端展示确认链接。
func (h *Handler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Email is required")
		return
	}

	token, err := h.service.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, newsletterSvc.ErrInvalidEmail) {
			common.RespondError(c, http.StatusBadRequest, "Invalid email address")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to register subscription")
		return
	}

	data := gin.H{}
	if token != "" {
		data["confirm_token"] = token
	}
	common.RespondSuccessMessage(c, "Please confirm your subscription", data)
}

// Confirm 确认订阅
func (h *Handler) Confirm(c *gin.Context) {
	token := c.Query("token")
	if err := h.service.Confirm(c.Request.Context(), token); err != nil {
		if errors.Is(err, newsletterSvc.ErrInvalidToken) {
			common.RespondError(c, http.StatusNotFound, "Invalid or expired confirmation token")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to confirm subscription")
		return
	}
	common.RespondSuccessMessage(c, "Subscription confirmed", nil)
}

// Unsubscribe 退订
func (h *Handler) Unsubscribe(c *gin.Context) {
	token := c.Query("token")
	if err := h.service.Unsubscribe(c.Request.Context(), token); err != nil {
		if errors.Is(err, newsletterSvc.ErrInvalidToken) {
			common.RespondError(c, http.StatusNotFound, "Invalid unsubscribe token")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to unsubscribe")
		return
	}
	common.RespondSuccessMessage(c, "You have been unsubscribed", nil)
}

// subscriberResponse 后台订阅者响应体
type subscriberResponse struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	ConfirmedAt string `json:"confirmed_at"`
}

// AdminList 后台已确认订阅者列表
func (h *Handler) AdminList(c *gin.Context) {
	subs, err := h.service.ListConfirmed(c.Request.Context())
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to load subscribers")
		return
	}

	items := make([]subscriberResponse, 0, len(subs))
	for _, s := range subs {
		resp := subscriberResponse{ID: s.ID, Email: s.Email}
		if s.ConfirmedAt != nil {
			resp.ConfirmedAt = s.ConfirmedAt.UTC().Format("2006-01-02T15:04:05Z")
		}
		items = append(items, resp)
	}
	common.RespondSuccess(c, gin.H{"items": items, "total": len(items)})
}

// AdminDelete 后台移除订阅者
func (h *Handler) AdminDelete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		common.RespondError(c, http.StatusBadRequest, "Invalid subscriber id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), uint(id)); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete subscriber")
		return
	}
	common.RespondSuccessMessage(c, "Subscriber deleted", nil)
}
