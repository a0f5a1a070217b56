package models

import (
	"time"

	"gorm.io/gorm"
)

// Setting 站点设置键值表
// ValueJSON 使用 type:text 保底，内容为 JSON 对象
type Setting struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Key       string `gorm:"uniqueIndex;not null" json:"key"`
	ValueJSON string `gorm:"type:text;not null" json:"-"`
}

// TableName 指定表名
func (Setting) TableName() string {
	return "settings"
}

// 内置设置键
const (
	SettingKeySite = "site"
)
