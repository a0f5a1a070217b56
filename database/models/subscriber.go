package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscriber 新闻邮件订阅者
type Subscriber struct {
	gorm.Model
	Email            string     `gorm:"uniqueIndex:idx_subscriber_email;type:varchar(255);not null"`
	ConfirmToken     string     `gorm:"type:varchar(64);index"`
	ConfirmedAt      *time.Time
	UnsubscribeToken string `gorm:"type:varchar(64);index"`
}

// IsConfirmed 是否已完成双重确认
func (s *Subscriber) IsConfirmed() bool {
	return s.ConfirmedAt != nil
}
