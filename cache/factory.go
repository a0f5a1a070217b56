package cache

import (
	"fmt"
	"log"

	"github.com/calloway-legal/firmsite/config"
)

// NewProvider 按配置创建缓存提供者
// Redis 不可用时回退到内存缓存，站点不应因缓存缺席而启动失败
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.CacheType {
	case "", "memory":
		return NewMemory(MemoryConfig{
			MaxCost: cfg.CacheMaxSizeMB << 20,
		})
	case "redis":
		provider, err := NewRedis(cfg.CacheRedisAddr, cfg.CacheRedisPassword, cfg.CacheRedisDB)
		if err != nil {
			log.Printf("[cache] redis unavailable (%v), falling back to memory cache", err)
			return NewMemory(MemoryConfig{
				MaxCost: cfg.CacheMaxSizeMB << 20,
			})
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.CacheType)
	}
}
