// Package imagestore persists image binaries into the relational database.
//
// Every image lives in a single row: URL, binary data and MIME type are
// written and cleared together in one transaction, so a record is never
// left half-migrated.
package imagestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/calloway-legal/firmsite/database/models"
	"github.com/calloway-legal/firmsite/utils"
	"gorm.io/gorm"
)

// DefaultMaxBytes 单张图片入库上限
const DefaultMaxBytes = 10 << 20 // 10MB

var (
	// ErrEmptyData 提交了空的图片数据
	ErrEmptyData = errors.New("imagestore: image data is empty")
	// ErrTooLarge 图片超过入库上限
	ErrTooLarge = errors.New("imagestore: image exceeds size limit")
	// ErrBadMime MIME 类型不在允许列表中
	ErrBadMime = errors.New("imagestore: mime type not allowed")
	// ErrUnknownID 图片记录不存在
	ErrUnknownID = errors.New("imagestore: no image record with given id")
)

// Store 二进制图片存取适配器
type Store struct {
	db       *gorm.DB
	maxBytes int64
}

// New 创建图片存取适配器
// maxBytes <= 0 时使用 DefaultMaxBytes
func New(db *gorm.DB, maxBytes int64) *Store {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Store{db: db, maxBytes: maxBytes}
}

// Save 将图片字节与 MIME 类型写入记录，并把 URL 改写为规范 API 形式
// 校验失败或记录不存在时不产生任何写入
func (s *Store) Save(ctx context.Context, id uint, data []byte, mimeType string) error {
	if len(data) == 0 {
		return ErrEmptyData
	}
	if int64(len(data)) > s.maxBytes {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrTooLarge, len(data), s.maxBytes)
	}
	if !utils.IsAllowedImageMime(mimeType) {
		return fmt.Errorf("%w: %q", ErrBadMime, mimeType)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var image models.Image
		if err := tx.First(&image, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %d", ErrUnknownID, id)
			}
			return fmt.Errorf("imagestore: load record %d: %w", id, err)
		}

		url := models.APIImageURL(id)
		updates := map[string]interface{}{
			"image_data": data,
			"image_type": mimeType,
			"image_url":  url,
		}
		if err := tx.Model(&image).Updates(updates).Error; err != nil {
			return fmt.Errorf("imagestore: write record %d: %w", id, err)
		}
		return nil
	})
}

// Clear 同时清空记录的二进制数据、MIME 类型与 URL
func (s *Store) Clear(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Image{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"image_data": nil,
				"image_type": nil,
				"image_url":  nil,
			})
		if result.Error != nil {
			return fmt.Errorf("imagestore: clear record %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %d", ErrUnknownID, id)
		}
		return nil
	})
}

// SetExternalURL 将记录指向外部 URL，同时清空本地二进制数据
func (s *Store) SetExternalURL(ctx context.Context, id uint, url string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Image{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"image_data": nil,
				"image_type": nil,
				"image_url":  url,
			})
		if result.Error != nil {
			return fmt.Errorf("imagestore: update record %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %d", ErrUnknownID, id)
		}
		return nil
	})
}
