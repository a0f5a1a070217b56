package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage 本地目录备份目标
type LocalStorage struct {
	absBasePath string
}

// NewLocalStorage 创建本地备份存储
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for '%s': %w", basePath, err)
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory '%s': %w", absPath, err)
	}

	return &LocalStorage{
		absBasePath: absPath + string(os.PathSeparator),
	}, nil
}

// Save 保存对象到本地目录
func (s *LocalStorage) Save(_ context.Context, name string, reader io.Reader, _ int64, _ string) error {
	dstPath := filepath.Join(s.absBasePath, name)

	// 确保最终路径在 basePath 内
	if !strings.HasPrefix(dstPath, s.absBasePath) {
		return fmt.Errorf("invalid object name, potential directory traversal: %s", name)
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for '%s': %w", dstPath, err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file '%s': %w", dstPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, reader); err != nil {
		_ = os.Remove(dstPath)
		return fmt.Errorf("failed to copy content to '%s': %w", dstPath, err)
	}

	return nil
}

// Health 检查目录可写
func (s *LocalStorage) Health(_ context.Context) error {
	info, err := os.Stat(s.absBasePath)
	if err != nil {
		return fmt.Errorf("backup directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("backup path is not a directory: %s", s.absBasePath)
	}
	return nil
}

// Name 返回存储名称
func (s *LocalStorage) Name() string {
	return "local"
}
