// Package contact handles the public contact form and the admin
// message inbox built on top of it.
package contact

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/calloway-legal/firmsite/api/common"
	"github.com/calloway-legal/firmsite/database/models"
	"github.com/calloway-legal/firmsite/database/repo/messages"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Handler 联系表单处理器
type Handler struct {
	repo *messages.Repository
}

// NewHandler 联系表单处理器
func NewHandler(repo *messages.Repository) *Handler {
	return &Handler{repo: repo}
}

type contactRequest struct {
	Name    string `json:"name" binding:"required,max=128"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"max=64"`
	Subject string `json:"subject" binding:"max=255"`
	Body    string `json:"body" binding:"required,max=8000"`
}

// Submit 提交联系表单
func (h *Handler) Submit(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Name, email and message body are required")
		return
	}

	msg := &models.Message{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Subject: strings.TrimSpace(req.Subject),
		Body:    strings.TrimSpace(req.Body),
	}
	if err := h.repo.Create(c.Request.Context(), msg); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to save message")
		return
	}

	log.Info().Str("email", msg.Email).Msg("contact message received")
	common.RespondSuccessMessage(c, "Thank you, we will get back to you shortly", nil)
}

// messageResponse 后台留言响应体
type messageResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// AdminList 后台留言列表
func (h *Handler) AdminList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	msgs, total, err := h.repo.List(c.Request.Context(), page, pageSize)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to load messages")
		return
	}

	items := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, messageResponse{
			ID:        m.ID,
			Name:      m.Name,
			Email:     m.Email,
			Phone:     m.Phone,
			Subject:   m.Subject,
			Body:      m.Body,
			CreatedAt: m.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	common.RespondSuccess(c, gin.H{
		"items":     items,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// AdminDelete 删除留言
func (h *Handler) AdminDelete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		common.RespondError(c, http.StatusBadRequest, "Invalid message id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), uint(id)); err != nil {
		common.RespondError(c, http.StatusNotFound, "Message not found")
		return
	}
	common.RespondSuccessMessage(c, "Message deleted", nil)
}
