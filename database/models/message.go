package models

import "gorm.io/gorm"

// Message 联系表单留言（邮件转发在站外处理）
type Message struct {
	gorm.Model
	Name    string `gorm:"type:varchar(128);not null"`
	Email   string `gorm:"type:varchar(255);not null"`
	Phone   string `gorm:"type:varchar(64)"`
	Subject string `gorm:"type:varchar(255)"`
	Body    string `gorm:"type:text;not null"`
}
