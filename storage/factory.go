package storage

import (
	"fmt"

	"github.com/calloway-legal/firmsite/config"
)

// NewProvider 按配置创建备份存储提供者
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.BackupStorageType {
	case "", "local":
		return NewLocalStorage(cfg.BackupLocalPath)
	case "minio":
		return NewMinioStorage(cfg)
	case "webdav":
		return NewWebDAVStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported backup storage type: %s", cfg.BackupStorageType)
	}
}
