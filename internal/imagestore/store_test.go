package imagestore

import (
	"context"
	"fmt"
	"testing"

	"github.com/calloway-legal/firmsite/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB 创建测试数据库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Image{}))
	return db
}

func createImage(t *testing.T, db *gorm.DB, url string) *models.Image {
	t.Helper()
	image := &models.Image{}
	if url != "" {
		image.URL = &url
	}
	require.NoError(t, db.Create(image).Error)
	return image
}

func TestStoreSave(t *testing.T) {
	db := setupTestDB(t)
	store := New(db, 0)
	image := createImage(t, db, "/images/news/old.jpg")

	err := store.Save(context.Background(), image.ID, []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)

	var got models.Image
	require.NoError(t, db.First(&got, image.ID).Error)
	assert.Equal(t, []byte("jpeg-bytes"), got.Data)
	require.NotNil(t, got.MimeType)
	assert.Equal(t, "image/jpeg", *got.MimeType)
	require.NotNil(t, got.URL)
	// URL 被改写为规范 API 形式
	assert.Equal(t, models.APIImageURL(image.ID), *got.URL)
}

func TestStoreSaveValidation(t *testing.T) {
	db := setupTestDB(t)
	store := New(db, 16)
	image := createImage(t, db, "/images/news/old.jpg")

	tests := []struct {
		name    string
		data    []byte
		mime    string
		wantErr error
	}{
		{"empty_data", nil, "image/jpeg", ErrEmptyData},
		{"too_large", make([]byte, 17), "image/jpeg", ErrTooLarge},
		{"bad_mime", []byte("x"), "application/pdf", ErrBadMime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Save(context.Background(), image.ID, tt.data, tt.mime)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// 校验失败不落库
	var got models.Image
	require.NoError(t, db.First(&got, image.ID).Error)
	assert.Nil(t, got.Data)
	require.NotNil(t, got.URL)
	assert.Equal(t, "/images/news/old.jpg", *got.URL)
}

func TestStoreSaveUnknownID(t *testing.T) {
	db := setupTestDB(t)
	store := New(db, 0)

	err := store.Save(context.Background(), 999, []byte("x"), "image/png")
	assert.ErrorIs(t, err, ErrUnknownID)
}

func TestStoreClear(t *testing.T) {
	db := setupTestDB(t)
	store := New(db, 0)
	image := createImage(t, db, "")

	require.NoError(t, store.Save(context.Background(), image.ID, []byte("bytes"), "image/png"))
	require.NoError(t, store.Clear(context.Background(), image.ID))

	var got models.Image
	require.NoError(t, db.First(&got, image.ID).Error)
	// 三个字段同进同退
	assert.Nil(t, got.Data)
	assert.Nil(t, got.MimeType)
	assert.Nil(t, got.URL)
	assert.False(t, got.HasData())

	assert.ErrorIs(t, store.Clear(context.Background(), 999), ErrUnknownID)
}

func TestStoreSetExternalURL(t *testing.T) {
	db := setupTestDB(t)
	store := New(db, 0)
	image := createImage(t, db, "")
	require.NoError(t, store.Save(context.Background(), image.ID, []byte("bytes"), "image/png"))

	err := store.SetExternalURL(context.Background(), image.ID, "https://cdn.example.com/a.png")
	require.NoError(t, err)

	var got models.Image
	require.NoError(t, db.First(&got, image.ID).Error)
	assert.Nil(t, got.Data)
	require.NotNil(t, got.URL)
	assert.Equal(t, "https://cdn.example.com/a.png", *got.URL)
}
