package news

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/calloway-legal/firmsite/api/common"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// ListPublished 公开文章列表
func (h *Handler) ListPublished(c *gin.Context) {
	page, pageSize := pagination(c)

	articles, total, err := h.repo.ListPublished(c.Request.Context(), page, pageSize)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to load articles")
		return
	}

	items := make([]articleResponse, 0, len(articles))
	for _, a := range articles {
		items = append(items, toArticleResponse(a, false))
	}

	common.RespondSuccess(c, gin.H{
		"items":     items,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetBySlug 公开文章详情
func (h *Handler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		common.RespondError(c, http.StatusBadRequest, "Article slug is required")
		return
	}

	article, err := h.repo.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.RespondError(c, http.StatusNotFound, "Article not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to load article")
		return
	}

	common.RespondSuccess(c, toArticleResponse(article, true))
}
