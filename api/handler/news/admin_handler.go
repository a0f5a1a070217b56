package news

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/calloway-legal/firmsite/api/common"
	"github.com/calloway-legal/firmsite/config"
	newsSvc "github.com/calloway-legal/firmsite/internal/news"
	"github.com/gin-gonic/gin"
)

type createArticleRequest struct {
	Title       string     `json:"title" binding:"required"`
	Excerpt     string     `json:"excerpt"`
	Body        string     `json:"body" binding:"required"`
	PublishedAt *time.Time `json:"published_at"`
	ImageURL    string     `json:"image_url"`
}

type updateArticleRequest struct {
	Title       *string    `json:"title"`
	Excerpt     *string    `json:"excerpt"`
	Body        *string    `json:"body"`
	PublishedAt *time.Time `json:"published_at"`
	Unpublish   bool       `json:"unpublish"`
}

func articleID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		common.RespondError(c, http.StatusBadRequest, "Invalid article id")
		return 0, false
	}
	return uint(id), true
}

// AdminList 后台文章列表（含未发布）
func (h *Handler) AdminList(c *gin.Context) {
	page, pageSize := pagination(c)

	articles, total, err := h.repo.ListAll(c.Request.Context(), page, pageSize)
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

// AdminGet 后台文章详情
func (h *Handler) AdminGet(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}
	article, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		common.RespondError(c, http.StatusNotFound, "Article not found")
		return
	}
	common.RespondSuccess(c, toArticleResponse(article, true))
}

// AdminCreate 新建文章
func (h *Handler) AdminCreate(c *gin.Context) {
	var req createArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Title and body are required")
		return
	}

	article, err := h.service.Create(c.Request.Context(), newsSvc.CreateInput{
		Title:       req.Title,
		Excerpt:     req.Excerpt,
		Body:        req.Body,
		PublishedAt: req.PublishedAt,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to create article")
		return
	}

	common.Respond(c, http.StatusCreated, "success", "Article created", toArticleResponse(article, true))
}

// AdminUpdate 更新文章
func (h *Handler) AdminUpdate(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	var req updateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	article, err := h.service.Update(c.Request.Context(), id, newsSvc.UpdateInput{
		Title:       req.Title,
		Excerpt:     req.Excerpt,
		Body:        req.Body,
		PublishedAt: req.PublishedAt,
		Unpublish:   req.Unpublish,
	})
	if err != nil {
		if errors.Is(err, newsSvc.ErrNotFound) {
			common.RespondError(c, http.StatusNotFound, "Article not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to update article")
		return
	}
	common.RespondSuccess(c, toArticleResponse(article, true))
}

// AdminDelete 删除文章
func (h *Handler) AdminDelete(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, newsSvc.ErrNotFound) {
			common.RespondError(c, http.StatusNotFound, "Article not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete article")
		return
	}
	common.RespondSuccessMessage(c, "Article deleted", nil)
}

// AdminUploadImage 上传文章配图
func (h *Handler) AdminUploadImage(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	maxBytes := int64(config.Get().UploadMaxSizeMB) << 20
	data, mimeType, err := common.ReadImageUpload(c, maxBytes)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNoFile):
			common.RespondError(c, http.StatusBadRequest, "Image file is required")
		case errors.Is(err, common.ErrFileTooLarge):
			common.RespondError(c, http.StatusRequestEntityTooLarge, "Image exceeds size limit")
		case errors.Is(err, common.ErrBadImageType):
			common.RespondError(c, http.StatusUnsupportedMediaType, "Unsupported image type")
		default:
			common.RespondError(c, http.StatusInternalServerError, "Failed to read uploaded image")
		}
		return
	}

	if err := h.service.AttachImage(c.Request.Context(), id, data, mimeType); err != nil {
		if errors.Is(err, newsSvc.ErrNotFound) {
			common.RespondError(c, http.StatusNotFound, "Article not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to store image")
		return
	}

	article, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		common.RespondSuccessMessage(c, "Image stored", nil)
		return
	}
	common.RespondSuccess(c, toArticleResponse(article, false))
}

// AdminRemoveImage 移除文章配图
func (h *Handler) AdminRemoveImage(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}
	if err := h.service.RemoveImage(c.Request.Context(), id); err != nil {
		if errors.Is(err, newsSvc.ErrNotFound) {
			common.RespondError(c, http.StatusNotFound, "Article not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to remove image")
		return
	}
	common.RespondSuccessMessage(c, "Image removed", nil)
}
