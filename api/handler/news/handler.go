package news

import (
	"time"

	"github.com/calloway-legal/firmsite/database/models"
	"github.com/calloway-legal/firmsite/database/repo/articles"
	newsSvc "github.com/calloway-legal/firmsite/internal/news"
)

// Handler 文章处理器
type Handler struct {
	repo    *articles.Repository
	service *newsSvc.Service
}

// NewHandler 文章处理器
func NewHandler(repo *articles.Repository, service *newsSvc.Service) *Handler {
	return &Handler{repo: repo, service: service}
}

// articleResponse 文章响应体
type articleResponse struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Body        string     `json:"body,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toArticleResponse(a *models.Article, includeBody bool) articleResponse {
	resp := articleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Excerpt:     a.Excerpt,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if includeBody {
		resp.Body = a.Body
	}
	if a.Image != nil && a.Image.URL != nil {
		resp.ImageURL = *a.Image.URL
	}
	return resp
}
