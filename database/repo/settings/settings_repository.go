package settings

import (
	"context"

	"github.com/calloway-legal/firmsite/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository 站点设置仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的设置仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get 获取指定键的设置
func (r *Repository) Get(ctx context.Context, key string) (*models.Setting, error) {
	var setting models.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	return &setting, err
}

// Upsert 写入设置，键已存在时覆盖值
func (r *Repository) Upsert(ctx context.Context, key, valueJSON string) error {
	setting := models.Setting{Key: key, ValueJSON: valueJSON}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value_json", "updated_at"}),
	}).Create(&setting).Error
}
