package images

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/calloway-legal/firmsite/api/common"
	"github.com/calloway-legal/firmsite/cache"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// cachedImage 缓存里携带 MIME 前缀：`<mime>\n<bytes>`
func encodeCached(mimeType string, data []byte) []byte {
	buf := make([]byte, 0, len(mimeType)+1+len(data))
	buf = append(buf, mimeType...)
	buf = append(buf, '\n')
	return append(buf, data...)
}

func decodeCached(buf []byte) (mimeType string, data []byte, ok bool) {
	for i, b := range buf {
		if b == '\n' {
			return string(buf[:i]), buf[i+1:], true
		}
	}
	return "", nil, false
}

// GetImage 获取图片二进制
func (h *Handler) GetImage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		common.RespondError(c, http.StatusBadRequest, "Invalid image id")
		return
	}

	cacheKey := fmt.Sprintf("image:%d", id)
	if h.cache != nil {
		if buf, err := h.cache.Get(c.Request.Context(), cacheKey); err == nil {
			if mimeType, data, ok := decodeCached(buf); ok {
				c.Header("Cache-Control", "public, max-age=86400")
				c.Data(http.StatusOK, mimeType, data)
				return
			}
		} else if !cache.IsCacheMiss(err) {
			log.Warn().Err(err).Str("key", cacheKey).Msg("image cache read failed")
		}
	}

	image, err := h.repo.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.RespondError(c, http.StatusNotFound, "Image not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to load image")
		return
	}
	if !image.HasData() {
		common.RespondError(c, http.StatusNotFound, "Image has no stored data")
		return
	}

	mimeType := "application/octet-stream"
	if image.MimeType != nil && *image.MimeType != "" {
		mimeType = *image.MimeType
	}

	if h.cache != nil {
		if err := h.cache.Set(c.Request.Context(), cacheKey, encodeCached(mimeType, image.Data), h.cacheTTL); err != nil {
			log.Warn().Err(err).Str("key", cacheKey).Msg("image cache write failed")
		}
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, mimeType, image.Data)
}
