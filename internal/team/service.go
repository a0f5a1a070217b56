// Package team manages attorney/staff profiles for the public team page.
package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/calloway-legal/firmsite/database/models"
	imagesrepo "github.com/calloway-legal/firmsite/database/repo/images"
	"github.com/calloway-legal/firmsite/database/repo/members"
	"github.com/calloway-legal/firmsite/internal/imagestore"
	"github.com/calloway-legal/firmsite/utils"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrNotFound 成员不存在
var ErrNotFound = errors.New("team: member not found")

// Service 团队成员服务
type Service struct {
	repo       *members.Repository
	imagesRepo *imagesrepo.Repository
	store      *imagestore.Store
}

// NewService 创建团队服务
func NewService(repo *members.Repository, imagesRepo *imagesrepo.Repository, store *imagestore.Store) *Service {
	return &Service{repo: repo, imagesRepo: imagesRepo, store: store}
}

// CreateInput 新建成员输入
type CreateInput struct {
	Name      string
	Role      string
	Bio       string
	Email     string
	Phone     string
	SortOrder int
	ImageURL  string
}

// Create 创建成员，随成员建立其头像图片记录
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Member, error) {
	slug := s.uniqueSlug(ctx, utils.Slugify(input.Name), 0)

	image := &models.Image{}
	if input.ImageURL != "" {
		image.URL = &input.ImageURL
	}
	if err := s.imagesRepo.Create(image); err != nil {
		return nil, fmt.Errorf("create image record: %w", err)
	}

	member := &models.Member{
		Name:      input.Name,
		Slug:      slug,
		Role:      input.Role,
		Bio:       input.Bio,
		Email:     input.Email,
		Phone:     input.Phone,
		SortOrder: input.SortOrder,
		ImageID:   &image.ID,
	}
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}

	log.Info().Uint("id", member.ID).Str("slug", member.Slug).Msg("team member created")
	return member, nil
}

// UpdateInput 更新成员输入，nil 字段保持不变
type UpdateInput struct {
	Name      *string
	Role      *string
	Bio       *string
	Email     *string
	Phone     *string
	SortOrder *int
}

// Update 更新成员；姓名变化时重新生成 slug
func (s *Service) Update(ctx context.Context, id uint, input UpdateInput) (*models.Member, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Name != nil && *input.Name != member.Name {
		member.Name = *input.Name
		member.Slug = s.uniqueSlug(ctx, utils.Slugify(*input.Name), member.ID)
	}
	if input.Role != nil {
		member.Role = *input.Role
	}
	if input.Bio != nil {
		member.Bio = *input.Bio
	}
	if input.Email != nil {
		member.Email = *input.Email
	}
	if input.Phone != nil {
		member.Phone = *input.Phone
	}
	if input.SortOrder != nil {
		member.SortOrder = *input.SortOrder
	}

	if err := s.repo.Update(ctx, member); err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	return member, nil
}

// Delete 删除成员及其图片记录
func (s *Service) Delete(ctx context.Context, id uint) error {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	if member.ImageID != nil {
		if err := s.imagesRepo.Delete(ctx, *member.ImageID); err != nil {
			log.Warn().Err(err).Uint("image_id", *member.ImageID).Msg("failed to delete image record")
		}
	}
	return nil
}

// AttachImage 上传/替换成员头像
func (s *Service) AttachImage(ctx context.Context, id uint, data []byte, mimeType string) error {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	imageID := uint(0)
	if member.ImageID != nil {
		imageID = *member.ImageID
	} else {
		image := &models.Image{}
		if err := s.imagesRepo.Create(image); err != nil {
			return fmt.Errorf("create image record: %w", err)
		}
		member.ImageID = &image.ID
		if err := s.repo.Update(ctx, member); err != nil {
			return fmt.Errorf("link image record: %w", err)
		}
		imageID = image.ID
	}

	return s.store.Save(ctx, imageID, data, mimeType)
}

// RemoveImage 移除成员头像
func (s *Service) RemoveImage(ctx context.Context, id uint) error {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if member.ImageID == nil {
		return nil
	}
	return s.store.Clear(ctx, *member.ImageID)
}

func (s *Service) uniqueSlug(ctx context.Context, base string, excludeID uint) string {
	return utils.UniqueSlug(base, func(slug string) bool {
		exists, err := s.repo.SlugExists(ctx, slug, excludeID)
		if err != nil {
			log.Warn().Err(err).Str("slug", slug).Msg("slug uniqueness check failed")
			return false
		}
		return exists
	})
}
