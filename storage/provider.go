// Package storage provides backup targets for image blobs exported
// from the database.
package storage

import (
	"context"
	"io"
)

// Provider 备份存储提供者接口
type Provider interface {
	// Save 保存一个对象
	Save(ctx context.Context, name string, reader io.Reader, size int64, contentType string) error

	// Health 检查存储健康状态
	Health(ctx context.Context) error

	// Name 返回存储名称
	Name() string
}
