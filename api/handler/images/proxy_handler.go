package images

import (
	"io"
	"net/http"
	"net/url"

	"github.com/calloway-legal/firmsite/api/common"
	"github.com/calloway-legal/firmsite/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// proxyMaxBytes 代理下载上限，与上传上限保持一致
const proxyMaxBytes = 10 << 20

// ProxyImage 代理外部图片，规避前端跨域与混合内容问题
func (h *Handler) ProxyImage(c *gin.Context) {
	raw := c.Query("url")
	if raw == "" {
		common.RespondError(c, http.StatusBadRequest, "Query parameter 'url' is required")
		return
	}

	target, err := url.Parse(raw)
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		common.RespondError(c, http.StatusBadRequest, "Only absolute http/https URLs can be proxied")
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, target.String(), nil)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid proxy URL")
		return
	}

	resp, err := h.proxy.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("url", target.String()).Msg("image proxy fetch failed")
		common.RespondError(c, http.StatusBadGateway, "Upstream image fetch failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		common.RespondError(c, http.StatusBadGateway, "Upstream returned non-OK status")
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if !utils.IsAllowedImageMime(contentType) {
		common.RespondError(c, http.StatusUnsupportedMediaType, "Upstream content is not an allowed image type")
		return
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, proxyMaxBytes+1))
	if err != nil {
		common.RespondError(c, http.StatusBadGateway, "Failed to read upstream image")
		return
	}
	if len(data) > proxyMaxBytes {
		common.RespondError(c, http.StatusRequestEntityTooLarge, "Upstream image exceeds size limit")
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, contentType, data)
}
