package subscribers

import (
	"context"

	"github.com/calloway-legal/firmsite/database/models"
	"gorm.io/gorm"
)

// Repository 订阅者仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的订阅者仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create 保存订阅者
func (r *Repository) Create(ctx context.Context, sub *models.Subscriber) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

// GetByEmail 通过邮箱获取订阅者
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	var sub models.Subscriber
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&sub).Error
	return &sub, err
}

// GetByConfirmToken 通过确认令牌获取订阅者
func (r *Repository) GetByConfirmToken(ctx context.Context, token string) (*models.Subscriber, error) {
	var sub models.Subscriber
	err := r.db.WithContext(ctx).Where("confirm_token = ?", token).First(&sub).Error
	return &sub, err
}

// GetByUnsubscribeToken 通过退订令牌获取订阅者
func (r *Repository) GetByUnsubscribeToken(ctx context.Context, token string) (*models.Subscriber, error) {
	var sub models.Subscriber
	err := r.db.WithContext(ctx).Where("unsubscribe_token = ?", token).First(&sub).Error
	return &sub, err
}

// Update 更新订阅者
func (r *Repository) Update(ctx context.Context, sub *models.Subscriber) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

// Delete 删除订阅者
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Subscriber{}, id).Error
}

// ListConfirmed 获取已确认订阅者列表
func (r *Repository) ListConfirmed(ctx context.Context) ([]*models.Subscriber, error) {
	var subs []*models.Subscriber
	err := r.db.WithContext(ctx).
		Where("confirmed_at IS NOT NULL").
		Order("created_at desc").
		Find(&subs).Error
	return subs, err
}
