// Package newsletter implements the double opt-in subscription flow.
package newsletter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/calloway-legal/firmsite/database/models"
	"github.com/calloway-legal/firmsite/database/repo/subscribers"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	// ErrInvalidEmail 邮箱格式不合法
	ErrInvalidEmail = errors.New("newsletter: invalid email address")
	// ErrInvalidToken token 不存在或已失效
	ErrInvalidToken = errors.New("newsletter: invalid token")
)

// Service 订阅服务
type Service struct {
	repo *subscribers.Repository
}

// NewService 创建订阅服务
func NewService(repo *subscribers.Repository) *Service {
	return &Service{repo: repo}
}

// Subscribe 登记订阅并返回确认 token。
// 已存在但未确认的邮箱会换发新 token；已确认的邮箱静默成功，不泄露订阅状态。
func (s *Service) Subscribe(ctx context.Context, email string) (confirmToken string, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !validEmail(email) {
		return "", ErrInvalidEmail
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("lookup subscriber: %w", err)
	}

	if existing != nil {
		if existing.ConfirmedAt != nil {
			return "", nil
		}
		existing.ConfirmToken = uuid.NewString()
		if err := s.repo.Update(ctx, existing); err != nil {
			return "", fmt.Errorf("refresh confirm token: %w", err)
		}
		return existing.ConfirmToken, nil
	}

	sub := &models.Subscriber{
		Email:            email,
		ConfirmToken:     uuid.NewString(),
		UnsubscribeToken: uuid.NewString(),
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return "", fmt.Errorf("create subscriber: %w", err)
	}

	log.Info().Str("email", email).Msg("newsletter subscription pending confirmation")
	return sub.ConfirmToken, nil
}

// Confirm 通过确认 token 激活订阅
func (s *Service) Confirm(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}
	sub, err := s.repo.GetByConfirmToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	if sub.ConfirmedAt != nil {
		return nil
	}

	now := time.Now()
	sub.ConfirmedAt = &now
	sub.ConfirmToken = ""
	if err := s.repo.Update(ctx, sub); err != nil {
		return fmt.Errorf("confirm subscriber: %w", err)
	}

	log.Info().Str("email", sub.Email).Msg("newsletter subscription confirmed")
	return nil
}

// Unsubscribe 通过退订 token 删除订阅记录
func (s *Service) Unsubscribe(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}
	sub, err := s.repo.GetByUnsubscribeToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	if err := s.repo.Delete(ctx, sub.ID); err != nil {
		return fmt.Errorf("delete subscriber: %w", err)
	}

	log.Info().Str("email", sub.Email).Msg("newsletter unsubscribed")
	return nil
}

// ListConfirmed 返回所有已确认的订阅者
func (s *Service) ListConfirmed(ctx context.Context) ([]*models.Subscriber, error) {
	return s.repo.ListConfirmed(ctx)
}

// validEmail 只做轻量结构检查，严格校验交给确认邮件
func validEmail(email string) bool {
	if len(email) < 3 || len(email) > 254 {
		return false
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	if strings.Contains(email, " ") || strings.Count(email, "@") != 1 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}
