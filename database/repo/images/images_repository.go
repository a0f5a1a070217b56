package images

import (
	"context"

	"github.com/calloway-legal/firmsite/database/models"
	"gorm.io/gorm"
)

// Repository 图片仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的图片仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create 保存图片记录
func (r *Repository) Create(image *models.Image) error {
	return r.db.Create(image).Error
}

// CreateWithTx 在指定事务中创建图片记录
func (r *Repository) CreateWithTx(tx *gorm.DB, image *models.Image) error {
	return tx.Create(image).Error
}

// GetByID 通过ID获取图片
func (r *Repository) GetByID(ctx context.Context, id uint) (*models.Image, error) {
	var image models.Image
	err := r.db.WithContext(ctx).First(&image, id).Error
	return &image, err
}

// ImageRef 迁移与诊断用的轻量投影，不携带二进制数据
type ImageRef struct {
	ID  uint
	URL *string `gorm:"column:image_url"`
}

// ListRefs 列出所有图片记录的 id 与 URL（不加载 blob）
func (r *Repository) ListRefs(ctx context.Context) ([]ImageRef, error) {
	var refs []ImageRef
	err := r.db.WithContext(ctx).
		Model(&models.Image{}).
		Select("id", "image_url").
		Order("id").
		Find(&refs).Error
	return refs, err
}

// ListWithData 列出所有已有二进制数据的图片（备份用）
func (r *Repository) ListWithData(ctx context.Context, batchSize int, fn func([]models.Image) error) error {
	var batch []models.Image
	result := r.db.WithContext(ctx).
		Where("image_data IS NOT NULL").
		FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
			return fn(batch)
		})
	return result.Error
}

// Delete 删除图片记录
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Image{}, id).Error
}

// DeleteWithTx 在指定事务中删除图片记录
func (r *Repository) DeleteWithTx(tx *gorm.DB, id uint) error {
	return tx.Delete(&models.Image{}, id).Error
}

// Count 统计图片记录总数
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Image{}).Count(&count).Error
	return count, err
}
