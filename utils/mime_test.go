package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMimeFromExtension(t *testing.T) {
	assert.Equal(t, "image/jpeg", MimeFromExtension("photo.jpg"))
	assert.Equal(t, "image/jpeg", MimeFromExtension("PHOTO.JPEG"))
	assert.Equal(t, "image/png", MimeFromExtension("dir/logo.png"))
	assert.Equal(t, "image/webp", MimeFromExtension("a.webp"))
	assert.Equal(t, "image/svg+xml", MimeFromExtension("icon.svg"))
	assert.Equal(t, "", MimeFromExtension("notes.txt"))
	assert.Equal(t, "", MimeFromExtension("noext"))
}

func TestIsAllowedImageMime(t *testing.T) {
	assert.True(t, IsAllowedImageMime("image/jpeg"))
	assert.True(t, IsAllowedImageMime("IMAGE/PNG"))
	// 带参数的 MIME 也按基础类型处理
	assert.True(t, IsAllowedImageMime("image/svg+xml; charset=utf-8"))
	assert.False(t, IsAllowedImageMime("application/pdf"))
	assert.False(t, IsAllowedImageMime("text/html"))
	assert.False(t, IsAllowedImageMime(""))
}

func TestMimeBase(t *testing.T) {
	assert.Equal(t, "image/png", MimeBase(" Image/PNG; charset=binary "))
	assert.Equal(t, "image/jpeg", MimeBase("image/jpeg"))
}
