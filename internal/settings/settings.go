// Package settings stores site-wide presentation settings as a JSON
// document in the settings table and exposes them as a typed struct.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/calloway-legal/firmsite/database/models"
	settingsrepo "github.com/calloway-legal/firmsite/database/repo/settings"
	"github.com/mitchellh/mapstructure"
	"gorm.io/gorm"
)

// SiteSettings 站点设置，公开接口与后台共用
type SiteSettings struct {
	FirmName     string `json:"firm_name" mapstructure:"firm_name"`
	Tagline      string `json:"tagline" mapstructure:"tagline"`
	Phone        string `json:"phone" mapstructure:"phone"`
	Email        string `json:"email" mapstructure:"email"`
	Address      string `json:"address" mapstructure:"address"`
	OfficeHours  string `json:"office_hours" mapstructure:"office_hours"`
	FooterNotice string `json:"footer_notice" mapstructure:"footer_notice"`
	SocialLinks  map[string]string `json:"social_links" mapstructure:"social_links"`
}

// Manager 设置管理器
type Manager struct {
	repo *settingsrepo.Repository
}

// NewManager 创建设置管理器
func NewManager(repo *settingsrepo.Repository) *Manager {
	return &Manager{repo: repo}
}

// Site 读取站点设置；尚未配置时返回零值设置
func (m *Manager) Site(ctx context.Context) (*SiteSettings, error) {
	setting, err := m.repo.Get(ctx, models.SettingKeySite)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &SiteSettings{}, nil
		}
		return nil, fmt.Errorf("load site settings: %w", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(setting.ValueJSON), &raw); err != nil {
		return nil, fmt.Errorf("parse site settings: %w", err)
	}

	out := &SiteSettings{}
	// mapstructure 容忍历史文档里的多余字段和弱类型
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode site settings: %w", err)
	}
	return out, nil
}

// UpdateSite 整体覆盖站点设置
func (m *Manager) UpdateSite(ctx context.Context, s *SiteSettings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode site settings: %w", err)
	}
	return m.repo.Upsert(ctx, models.SettingKeySite, string(data))
}
