package articles

import (
	"context"
	"time"

	"github.com/calloway-legal/firmsite/database/models"
	"gorm.io/gorm"
)

// Repository 文章仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的文章仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create 保存文章
func (r *Repository) Create(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

// GetByID 通过ID获取文章
func (r *Repository) GetByID(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.WithContext(ctx).Preload("Image").First(&article, id).Error
	return &article, err
}

// GetBySlug 通过 slug 获取已发布文章
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.WithContext(ctx).Preload("Image").
		Where("slug = ? AND published_at IS NOT NULL AND published_at <= ?", slug, time.Now()).
		First(&article).Error
	return &article, err
}

// ListPublished 分页获取已发布文章，最新在前
func (r *Repository) ListPublished(ctx context.Context, page, pageSize int) ([]*models.Article, int64, error) {
	var articles []*models.Article
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Article{}).
		Where("published_at IS NOT NULL AND published_at <= ?", time.Now())
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := db.Preload("Image").Order("published_at desc").Offset(offset).Limit(pageSize).Find(&articles).Error
	return articles, total, err
}

// ListAll 获取全部文章（后台用），最新在前
func (r *Repository) ListAll(ctx context.Context, page, pageSize int) ([]*models.Article, int64, error) {
	var articles []*models.Article
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Article{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := db.Preload("Image").Order("created_at desc").Offset(offset).Limit(pageSize).Find(&articles).Error
	return articles, total, err
}

// Update 更新文章
func (r *Repository) Update(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Save(article).Error
}

// Delete 删除文章
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Article{}, id).Error
}

// SlugExists 检查 slug 是否已被其他文章占用
func (r *Repository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Article{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	return count > 0, err
}
