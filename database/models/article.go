package models

import (
	"time"

	"gorm.io/gorm"
)

// Article 新闻/动态文章
type Article struct {
	gorm.Model
	Title       string `gorm:"type:varchar(255);not null"`
	Slug        string `gorm:"uniqueIndex:idx_article_slug;type:varchar(255);not null"`
	Excerpt     string `gorm:"type:varchar(512)"`
	Body        string `gorm:"type:text;not null"`
	PublishedAt *time.Time `gorm:"index"`

	ImageID *uint
	Image   *Image `gorm:"foreignKey:ImageID"`
}

// IsPublished 是否已发布
func (a *Article) IsPublished() bool {
	return a.PublishedAt != nil && !a.PublishedAt.After(time.Now())
}
