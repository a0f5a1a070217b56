package models

import "gorm.io/gorm"

// Member 律师/团队成员
type Member struct {
	gorm.Model
	Name      string `gorm:"type:varchar(128);not null"`
	Slug      string `gorm:"uniqueIndex:idx_member_slug;type:varchar(128);not null"`
	Role      string `gorm:"type:varchar(128)"`
	Bio       string `gorm:"type:text"`
	Email     string `gorm:"type:varchar(255)"`
	Phone     string `gorm:"type:varchar(64)"`
	SortOrder int    `gorm:"default:0;index"`

	ImageID *uint
	Image   *Image `gorm:"foreignKey:ImageID"`
}
