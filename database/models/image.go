package models

import (
	"fmt"
	"time"
)

// 图片 URL 前缀约定
const (
	// LegacyImagePrefix 旧版静态资源路径前缀
	LegacyImagePrefix = "/images/"
	// APIImagePrefix 规范 API 路径前缀
	APIImagePrefix = "/api/images/"
)

// APIImageURL 返回图片的规范 API URL
func APIImageURL(id uint) string {
	return fmt.Sprintf("%s%d", APIImagePrefix, id)
}

// Image 图片记录：二进制数据与 MIME 类型直接存库
//
// URL 字段的三种形态:
//   - 旧版静态路径 (/images/...)，图片仍在磁盘上
//   - 规范 API 路径 (/api/images/{id})，图片在 Data 列中
//   - 外部 URL (http...)，图片由第三方托管
//
// Data 与 MimeType 必须同时写入、同时清空，不允许只动其一。
type Image struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	URL      *string `gorm:"column:image_url;type:varchar(512)"`
	Data     []byte  `gorm:"column:image_data"`
	MimeType *string `gorm:"column:image_type;type:varchar(64)"`
}

// HasData 是否已有二进制数据
func (i *Image) HasData() bool {
	return len(i.Data) > 0 && i.MimeType != nil && *i.MimeType != ""
}
