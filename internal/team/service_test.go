package team

import (
	"context"
	"fmt"
	"testing"

	"github.com/calloway-legal/firmsite/database/models"
	imagesrepo "github.com/calloway-legal/firmsite/database/repo/images"
	"github.com/calloway-legal/firmsite/database/repo/members"
	"github.com/calloway-legal/firmsite/internal/imagestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Image{}, &models.Member{}))

	svc := NewService(
		members.NewRepository(db),
		imagesrepo.NewRepository(db),
		imagestore.New(db, 0),
	)
	return svc, db
}

func TestCreateAssignsSlugAndImageRecord(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	member, err := svc.Create(ctx, CreateInput{Name: "Jane Q. Calloway", Role: "Partner", SortOrder: 3})
	require.NoError(t, err)

	assert.Equal(t, "jane-q-calloway", member.Slug)
	assert.Equal(t, 3, member.SortOrder)
	require.NotNil(t, member.ImageID)

	// 随成员建立空图片记录
	var image models.Image
	require.NoError(t, db.First(&image, *member.ImageID).Error)
	assert.Nil(t, image.URL)
	assert.False(t, image.HasData())
}

func TestCreateSlugCollision(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateInput{Name: "Alex Reed"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateInput{Name: "Alex Reed"})
	require.NoError(t, err)

	assert.Equal(t, "alex-reed", first.Slug)
	assert.Equal(t, "alex-reed-2", second.Slug)
}

func TestUpdateRegeneratesSlugOnNameChange(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	member, err := svc.Create(ctx, CreateInput{Name: "Old Name", Role: "Associate"})
	require.NoError(t, err)

	name := "New Name"
	updated, err := svc.Update(ctx, member.ID, UpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "new-name", updated.Slug)

	// 姓名不变时 slug 保持
	role := "Senior Associate"
	updated, err = svc.Update(ctx, member.ID, UpdateInput{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "new-name", updated.Slug)
	assert.Equal(t, "Senior Associate", updated.Role)
}

func TestDeleteRemovesImageRecord(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	member, err := svc.Create(ctx, CreateInput{Name: "T"})
	require.NoError(t, err)
	imageID := *member.ImageID

	require.NoError(t, svc.Delete(ctx, member.ID))

	var count int64
	db.Model(&models.Image{}).Where("id = ?", imageID).Count(&count)
	assert.Equal(t, int64(0), count)

	assert.ErrorIs(t, svc.Delete(ctx, member.ID), ErrNotFound)
}

func TestAttachImageCreatesMissingRecord(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	// 成员无关联图片记录时 AttachImage 自动补建
	member := &models.Member{Name: "No Image", Slug: "no-image"}
	require.NoError(t, db.Create(member).Error)
	require.Nil(t, member.ImageID)

	require.NoError(t, svc.AttachImage(ctx, member.ID, []byte("png-bytes"), "image/png"))

	require.NoError(t, db.First(member, member.ID).Error)
	require.NotNil(t, member.ImageID)

	var image models.Image
	require.NoError(t, db.First(&image, *member.ImageID).Error)
	assert.True(t, image.HasData())
	require.NotNil(t, image.URL)
	assert.Equal(t, models.APIImageURL(image.ID), *image.URL)
}

func TestRemoveImage(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	member, err := svc.Create(ctx, CreateInput{Name: "T"})
	require.NoError(t, err)
	require.NoError(t, svc.AttachImage(ctx, member.ID, []byte("data"), "image/jpeg"))

	require.NoError(t, svc.RemoveImage(ctx, member.ID))

	var image models.Image
	require.NoError(t, db.First(&image, *member.ImageID).Error)
	assert.False(t, image.HasData())
	assert.Nil(t, image.URL)
}
