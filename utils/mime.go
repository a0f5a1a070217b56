package utils

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

// extToMimeMap 文件扩展名到 MIME 类型的映射（迁移扫描用）
var extToMimeMap = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// allowedImageMimes 允许入库的图片 MIME 类型
var allowedImageMimes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/webp":    true,
	"image/gif":     true,
	"image/svg+xml": true,
}

// MimeFromExtension 根据扩展名返回 MIME 类型
// 不认识的扩展名返回空字符串
func MimeFromExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return extToMimeMap[ext]
}

// MimeBase 标准化MIME类型（去除可能的参数）
func MimeBase(mimeType string) string {
	mimeType = strings.Split(mimeType, ";")[0]
	return strings.TrimSpace(strings.ToLower(mimeType))
}

// IsAllowedImageMime 检查 MIME 类型是否在允许列表中
func IsAllowedImageMime(mimeType string) bool {
	return allowedImageMimes[MimeBase(mimeType)]
}

// SniffContentType 从流头部嗅探 MIME 类型后回到起始位置
func SniffContentType(stream io.ReadSeeker) (string, error) {
	buffer := make([]byte, 512)

	n, err := stream.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read stream for mime sniffing: %w", err)
	}

	contentType := http.DetectContentType(buffer[:n])

	_, err = stream.Seek(0, io.SeekStart)
	if err != nil {
		return "", fmt.Errorf("failed to seek stream back to start after sniffing: %w", err)
	}

	return contentType, nil
}
