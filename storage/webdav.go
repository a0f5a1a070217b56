package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/calloway-legal/firmsite/config"
	"github.com/studio-b12/gowebdav"
)

// WebDAVStorage WebDAV 备份目标
type WebDAVStorage struct {
	client   *gowebdav.Client
	rootPath string
}

// NewWebDAVStorage 创建 WebDAV 备份存储
func NewWebDAVStorage(cfg *config.Config) (*WebDAVStorage, error) {
	if cfg.BackupWebdavURL == "" {
		return nil, fmt.Errorf("webdav URL is required")
	}

	rootPath := strings.Trim(cfg.BackupWebdavRoot, "/")
	if rootPath != "" {
		rootPath = "/" + rootPath
	}

	client := gowebdav.NewClient(cfg.BackupWebdavURL, cfg.BackupWebdavUser, cfg.BackupWebdavPass)

	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("webdav connection test failed: %w", err)
	}

	if rootPath != "" {
		if err := client.MkdirAll(rootPath, 0755); err != nil {
			return nil, fmt.Errorf("failed to create webdav root '%s': %w", rootPath, err)
		}
	}

	return &WebDAVStorage{
		client:   client,
		rootPath: rootPath,
	}, nil
}

// Save 上传对象
func (s *WebDAVStorage) Save(_ context.Context, name string, reader io.Reader, _ int64, _ string) error {
	remotePath := path.Join(s.rootPath, name)

	if err := s.client.WriteStream(remotePath, reader, 0644); err != nil {
		return fmt.Errorf("failed to write '%s' to webdav: %w", remotePath, err)
	}
	return nil
}

// Health 检查连接
func (s *WebDAVStorage) Health(_ context.Context) error {
	if err := s.client.Connect(); err != nil {
		return fmt.Errorf("webdav unavailable: %w", err)
	}
	return nil
}

// Name 返回存储名称
func (s *WebDAVStorage) Name() string {
	return "webdav"
}
