package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"
)

// Memory 基于 ristretto 的进程内缓存
type Memory struct {
	client *ristretto.Cache
}

// MemoryConfig 内存缓存配置
type MemoryConfig struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
}

// NewMemory 创建新的内存缓存提供者
func NewMemory(cfg MemoryConfig) (*Memory, error) {
	if cfg.NumCounters <= 0 {
		cfg.NumCounters = 100000
	}
	if cfg.MaxCost <= 0 {
		cfg.MaxCost = 64 << 20 // 64MB
	}
	if cfg.BufferItems <= 0 {
		cfg.BufferItems = 64
	}

	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
	})
	if err != nil {
		return nil, err
	}

	return &Memory{client: client}, nil
}

// Set 设置缓存项，按字节数计成本
func (m *Memory) Set(_ context.Context, key string, value []byte, expiration time.Duration) error {
	cost := int64(len(value))
	if cost == 0 {
		cost = 1
	}

	if m.client.SetWithTTL(key, value, cost, expiration) {
		// 等待值被实际设置
		m.client.Wait()
	}
	return nil
}

// Get 获取缓存项
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	value, found := m.client.Get(key)
	if !found {
		return nil, ErrCacheMiss
	}

	data, ok := value.([]byte)
	if !ok {
		return nil, ErrCacheMiss
	}
	return data, nil
}

// Delete 删除缓存项
func (m *Memory) Delete(_ context.Context, key string) error {
	m.client.Del(key)
	return nil
}

// Close 关闭缓存
func (m *Memory) Close() error {
	m.client.Close()
	return nil
}

// Name 返回提供者名称
func (m *Memory) Name() string {
	return "memory"
}
