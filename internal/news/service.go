// Package news implements the article side of the back office:
// slug assignment, image record lifecycle and publication state.
package news

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/calloway-legal/firmsite/database/models"
	"github.com/calloway-legal/firmsite/database/repo/articles"
	imagesrepo "github.com/calloway-legal/firmsite/database/repo/images"
	"github.com/calloway-legal/firmsite/internal/imagestore"
	"github.com/calloway-legal/firmsite/utils"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrNotFound 文章不存在
var ErrNotFound = errors.New("news: article not found")

// Service 文章服务
type Service struct {
	repo       *articles.Repository
	imagesRepo *imagesrepo.Repository
	store      *imagestore.Store
}

// NewService 创建文章服务
func NewService(repo *articles.Repository, imagesRepo *imagesrepo.Repository, store *imagestore.Store) *Service {
	return &Service{repo: repo, imagesRepo: imagesRepo, store: store}
}

// CreateInput 新建文章输入
type CreateInput struct {
	Title       string
	Excerpt     string
	Body        string
	PublishedAt *time.Time
	ImageURL    string // 可选的外部图片 URL
}

// Create 创建文章，随文章建立其图片记录
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Article, error) {
	slug := s.uniqueSlug(ctx, utils.Slugify(input.Title), 0)

	image := &models.Image{}
	if input.ImageURL != "" {
		image.URL = &input.ImageURL
	}
	if err := s.imagesRepo.Create(image); err != nil {
		return nil, fmt.Errorf("create image record: %w", err)
	}

	article := &models.Article{
		Title:       input.Title,
		Slug:        slug,
		Excerpt:     input.Excerpt,
		Body:        input.Body,
		PublishedAt: input.PublishedAt,
		ImageID:     &image.ID,
	}
	if err := s.repo.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	log.Info().Uint("id", article.ID).Str("slug", article.Slug).Msg("article created")
	return article, nil
}

// UpdateInput 更新文章输入，nil 字段保持不变
type UpdateInput struct {
	Title       *string
	Excerpt     *string
	Body        *string
	PublishedAt *time.Time
	Unpublish   bool
}

// Update 更新文章；标题变化时重新生成 slug
func (s *Service) Update(ctx context.Context, id uint, input UpdateInput) (*models.Article, error) {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Title != nil && *input.Title != article.Title {
		article.Title = *input.Title
		article.Slug = s.uniqueSlug(ctx, utils.Slugify(*input.Title), article.ID)
	}
	if input.Excerpt != nil {
		article.Excerpt = *input.Excerpt
	}
	if input.Body != nil {
		article.Body = *input.Body
	}
	if input.Unpublish {
		article.PublishedAt = nil
	} else if input.PublishedAt != nil {
		article.PublishedAt = input.PublishedAt
	}

	if err := s.repo.Update(ctx, article); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	return article, nil
}

// Delete 删除文章及其图片记录
func (s *Service) Delete(ctx context.Context, id uint) error {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if article.ImageID != nil {
		if err := s.imagesRepo.Delete(ctx, *article.ImageID); err != nil {
			log.Warn().Err(err).Uint("image_id", *article.ImageID).Msg("failed to delete image record")
		}
	}
	return nil
}

// AttachImage 上传/替换文章图片
func (s *Service) AttachImage(ctx context.Context, id uint, data []byte, mimeType string) error {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	imageID, err := s.ensureImageRecord(ctx, article)
	if err != nil {
		return err
	}

	return s.store.Save(ctx, imageID, data, mimeType)
}

// RemoveImage 移除文章图片（清空二进制与 URL，保留记录）
func (s *Service) RemoveImage(ctx context.Context, id uint) error {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if article.ImageID == nil {
		return nil
	}
	return s.store.Clear(ctx, *article.ImageID)
}

// ensureImageRecord 旧数据中可能存在没有图片记录的文章，补一条
func (s *Service) ensureImageRecord(ctx context.Context, article *models.Article) (uint, error) {
	if article.ImageID != nil {
		return *article.ImageID, nil
	}

	image := &models.Image{}
	if err := s.imagesRepo.Create(image); err != nil {
		return 0, fmt.Errorf("create image record: %w", err)
	}
	article.ImageID = &image.ID
	if err := s.repo.Update(ctx, article); err != nil {
		return 0, fmt.Errorf("link image record: %w", err)
	}
	return image.ID, nil
}

// uniqueSlug 保证 slug 在文章表内唯一
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
