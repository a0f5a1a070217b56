package team

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/calloway-legal/firmsite/api/common"
	"github.com/calloway-legal/firmsite/config"
	teamSvc "github.com/calloway-legal/firmsite/internal/team"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func memberID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		common.RespondError(c, http.StatusBadRequest, "Invalid member id")
		return 0, false
	}
	return uint(id), true
}

// List 公开团队列表
func (h *Handler) List(c *gin.Context) {
	members, err := h.repo.List(c.Request.Context())
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to load team")
		return
	}

	items := make([]memberResponse, 0, len(members))
	for _, m := range members {
		items = append(items, toMemberResponse(m))
	}
	common.RespondSuccess(c, gin.H{"items": items})
}

// GetBySlug 公开成员详情
func (h *Handler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		common.RespondError(c, http.StatusBadRequest, "Member slug is required")
		return
	}
	member, err := h.repo.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.RespondError(c, http.StatusNotFound, "Member not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to load member")
		return
	}
	common.RespondSuccess(c, toMemberResponse(member))
}

type createMemberRequest struct {
	Name      string `json:"name" binding:"required"`
	Role      string `json:"role"`
	Bio       string `json:"bio"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	SortOrder int    `json:"sort_order"`
	ImageURL  string `json:"image_url"`
}

type updateMemberRequest struct {
	Name      *string `json:"name"`
	Role      *string `json:"role"`
	Bio       *string `json:"bio"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	SortOrder *int    `json:"sort_order"`
}

// AdminList 后台成员列表（与公开列表同序，含联系方式）
func (h *Handler) AdminList(c *gin.Context) {
	members, err := h.repo.List(c.Request.Context())
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to load team")
		return
	}
	items := make([]memberResponse, 0, len(members))
	for _, m := range members {
		items = append(items, toMemberResponse(m))
	}
	common.RespondSuccess(c, gin.H{"items": items})
}

// AdminGet 后台成员详情
func (h *Handler) AdminGet(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	member, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		common.RespondError(c, http.StatusNotFound, "Member not found")
		return
	}
	common.RespondSuccess(c, toMemberResponse(member))
}

// AdminCreate 新建成员
func (h *Handler) AdminCreate(c *gin.Context) {
	var req createMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Name is required")
		return
	}

	member, err := h.service.Create(c.Request.Context(), teamSvc.CreateInput{
		Name:      req.Name,
		Role:      req.Role,
		Bio:       req.Bio,
		Email:     req.Email,
		Phone:     req.Phone,
		SortOrder: req.SortOrder,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to create member")
		return
	}
	common.Respond(c, http.StatusCreated, "success", "Member created", toMemberResponse(member))
}

// AdminUpdate 更新成员
func (h *Handler) AdminUpdate(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}

	var req updateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.service.Update(c.Request.Context(), id, teamSvc.UpdateInput{
		Name:      req.Name,
		Role:      req.Role,
		Bio:       req.Bio,
		Email:     req.Email,
		Phone:     req.Phone,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		if errors.Is(err, teamSvc.ErrNotFound) {
			common.RespondError(c, http.StatusNotFound, "Member not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to update member")
		return
	}
	common.RespondSuccess(c, toMemberResponse(member))
}

// AdminDelete 删除成员
func (h *Handler) AdminDelete(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, teamSvc.ErrNotFound) {
			common.RespondError(c, http.StatusNotFound, "Member not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete member")
		return
	}
	common.RespondSuccessMessage(c, "Member deleted", nil)
}

// AdminUploadImage 上传成员头像
func (h *Handler) AdminUploadImage(c *gin.Context) {
	id, ok := memberID(c)
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
		if errors.Is(err, teamSvc.ErrNotFound) {
			common.RespondError(c, http.StatusNotFound, "Member not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to store image")
		return
	}
	common.RespondSuccessMessage(c, "Image stored", nil)
}

// AdminRemoveImage 移除成员头像
func (h *Handler) AdminRemoveImage(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	if err := h.service.RemoveImage(c.Request.Context(), id); err != nil {
		if errors.Is(err, teamSvc.ErrNotFound) {
			common.RespondError(c, http.StatusNotFound, "Member not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to remove image")
		return
	}
	common.RespondSuccessMessage(c, "Image removed", nil)
}
