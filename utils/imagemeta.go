package utils

import (
	"bytes"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// DecodeDimensions 解析图片宽高。SVG 为矢量格式，没有固定像素尺寸，返回 0,0。
func DecodeDimensions(data []byte, mimeType string) (width, height int, err error) {
	if strings.HasPrefix(MimeBase(mimeType), "image/svg") {
		return 0, 0, nil
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
