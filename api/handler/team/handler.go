package team

import (
	"github.com/calloway-legal/firmsite/database/models"
	"github.com/calloway-legal/firmsite/database/repo/members"
	teamSvc "github.com/calloway-legal/firmsite/internal/team"
)

// Handler 团队成员处理器
type Handler struct {
	repo    *members.Repository
	service *teamSvc.Service
}

// NewHandler 团队成员处理器
func NewHandler(repo *members.Repository, service *teamSvc.Service) *Handler {
	return &Handler{repo: repo, service: service}
}

// memberResponse 成员响应体
type memberResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Role      string `json:"role,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	SortOrder int    `json:"sort_order"`
	ImageURL  string `json:"image_url,omitempty"`
}

func toMemberResponse(m *models.Member) memberResponse {
	resp := memberResponse{
		ID:        m.ID,
		Name:      m.Name,
		Slug:      m.Slug,
		Role:      m.Role,
		Bio:       m.Bio,
		Email:     m.Email,
		Phone:     m.Phone,
		SortOrder: m.SortOrder,
	}
	if m.Image != nil && m.Image.URL != nil {
		resp.ImageURL = *m.Image.URL
	}
	return resp
}
