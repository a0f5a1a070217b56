package members

import (
	"context"

	"github.com/calloway-legal/firmsite/database/models"
	"gorm.io/gorm"
)

// Repository 团队成员仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的成员仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create 保存成员
func (r *Repository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// GetByID 通过ID获取成员
func (r *Repository) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).Preload("Image").First(&member, id).Error
	return &member, err
}

// GetBySlug 通过 slug 获取成员
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).Preload("Image").Where("slug = ?", slug).First(&member).Error
	return &member, err
}

// List 获取成员列表，按 sort_order 其次姓名排序
func (r *Repository) List(ctx context.Context) ([]*models.Member, error) {
	var members []*models.Member
	err := r.db.WithContext(ctx).Preload("Image").Order("sort_order asc, name asc").Find(&members).Error
	return members, err
}

// Update 更新成员
func (r *Repository) Update(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// Delete 删除成员
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Member{}, id).Error
}

// SlugExists 检查 slug 是否已被其他成员占用
func (r *Repository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Member{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	return count > 0, err
}
