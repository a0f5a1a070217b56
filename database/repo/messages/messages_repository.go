package messages

import (
	"context"

	"github.com/calloway-legal/firmsite/database/models"
	"gorm.io/gorm"
)

// Repository 联系留言仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的留言仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create 保存留言
func (r *Repository) Create(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// List 分页获取留言，最新在前
func (r *Repository) List(ctx context.Context, page, pageSize int) ([]*models.Message, int64, error) {
	var msgs []*models.Message
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Message{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := db.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&msgs).Error
	return msgs, total, err
}

// Delete 删除留言
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Message{}, id)
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return result.Error
}
