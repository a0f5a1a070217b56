package common

import (
	"errors"
	"fmt"
	"io"

	"github.com/calloway-legal/firmsite/utils"
	"github.com/gin-gonic/gin"
)

var (
	// ErrNoFile 请求中没有文件字段
	ErrNoFile = errors.New("no file in request")
	// ErrFileTooLarge 文件超过大小限制
	ErrFileTooLarge = errors.New("file exceeds size limit")
	// ErrBadImageType 文件不是允许的图片类型
	ErrBadImageType = errors.New("file is not an allowed image type")
)

// ReadImageUpload 读取 multipart 表单里的图片文件并做嗅探校验。
// 字段名依次尝试 "image" 和 "file"。
func ReadImageUpload(c *gin.Context, maxBytes int64) (data []byte, mimeType string, err error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		fileHeader, err = c.FormFile("file")
		if err != nil {
			return nil, "", ErrNoFile
		}
	}

	if fileHeader.Size > maxBytes {
		return nil, "", ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", fmt.Errorf("open uploaded file: %w", err)
	}
	defer file.Close()

	sniffed, err := utils.SniffContentType(file)
	if err != nil {
		return nil, "", fmt.Errorf("sniff uploaded file: %w", err)
	}

	// SVG 被 DetectContentType 识别为 text/xml，回退到扩展名判断
	mimeType = utils.MimeBase(sniffed)
	if !utils.IsAllowedImageMime(mimeType) {
		if byExt := utils.MimeFromExtension(fileHeader.Filename); utils.IsAllowedImageMime(byExt) {
			mimeType = byExt
		} else {
			return nil, "", ErrBadImageType
		}
	}

	data, err = io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read uploaded file: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, "", ErrFileTooLarge
	}

	// 位图格式再做一次结构校验，拦截伪装成图片的内容
	if _, _, err := utils.DecodeDimensions(data, mimeType); err != nil {
		return nil, "", ErrBadImageType
	}

	return data, mimeType, nil
}
