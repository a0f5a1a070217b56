package middleware

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// AttemptStore 登录尝试计数存储
type AttemptStore interface {
	// Hit 记录一次尝试并返回当前窗口内的尝试次数
	Hit(ctx context.Context, clientID string) (int, error)
	// Reset 认证成功后清除计数
	Reset(ctx context.Context, clientID string) error
}

// LoginLimiter 管理后台登录尝试限制
//
// 单个客户端在锁定窗口内尝试超过 maxAttempts 次后被拒绝，
// 直到距最后一次尝试满一个窗口为止；认证成功时清零。
type LoginLimiter struct {
	store       AttemptStore
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter 创建登录尝试限制器
func NewLoginLimiter(store AttemptStore, maxAttempts int, window time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginLimiter{store: store, maxAttempts: maxAttempts, window: window}
}

// Allow 记录一次尝试，返回是否放行
// 存储故障时放行并记日志，限流不应把登录整个弄挂
func (l *LoginLimiter) Allow(ctx context.Context, clientID string) bool {
	count, err := l.store.Hit(ctx, clientID)
	if err != nil {
		log.Printf("[loginlimit] attempt store error for %s: %v", clientID, err)
		return true
	}
	return count <= l.maxAttempts
}

// Reset 认证成功后调用，使客户端回到未计数状态
func (l *LoginLimiter) Reset(ctx context.Context, clientID string) {
	if err := l.store.Reset(ctx, clientID); err != nil {
		log.Printf("[loginlimit] reset failed for %s: %v", clientID, err)
	}
}

// --- 内存存储 ---

type attemptEntry struct {
	count       int
	lastAttempt time.Time
}

// MemoryAttemptStore 进程内尝试计数
// 仅适用于单实例部署，不跨重启保留状态
type MemoryAttemptStore struct {
	mu      sync.Mutex
	entries map[string]*attemptEntry
	window  time.Duration
}

// NewMemoryAttemptStore 创建内存尝试计数存储
func NewMemoryAttemptStore(window time.Duration) *MemoryAttemptStore {
	return &MemoryAttemptStore{
		entries: make(map[string]*attemptEntry),
		window:  window,
	}
}

// Hit 记录一次尝试
// 距上次尝试超过窗口时计数重置为 1
func (s *MemoryAttemptStore) Hit(_ context.Context, clientID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	entry, ok := s.entries[clientID]
	if !ok || now.Sub(entry.lastAttempt) > s.window {
		s.entries[clientID] = &attemptEntry{count: 1, lastAttempt: now}
		return 1, nil
	}

	entry.count++
	entry.lastAttempt = now
	return entry.count, nil
}

// Reset 删除条目
func (s *MemoryAttemptStore) Reset(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, clientID)
	return nil
}

// --- Redis 存储 ---

// RedisAttemptStore 基于 Redis INCR+EXPIRE 的尝试计数
// 多实例部署时用它让限制跨实例生效
type RedisAttemptStore struct {
	client *redis.Client
	window time.Duration
}

// NewRedisAttemptStore 创建 Redis 尝试计数存储
func NewRedisAttemptStore(client *redis.Client, window time.Duration) *RedisAttemptStore {
	return &RedisAttemptStore{client: client, window: window}
}

func (s *RedisAttemptStore) key(clientID string) string {
	return "login_attempts:" + clientID
}

// Hit 原子自增并滑动过期时间
func (s *RedisAttemptStore) Hit(ctx context.Context, clientID string) (int, error) {
	key := s.key(clientID)

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if err := s.client.Expire(ctx, key, s.window).Err(); err != nil {
		return 0, err
	}

	return int(count), nil
}

// Reset 删除键
func (s *RedisAttemptStore) Reset(ctx context.Context, clientID string) error {
	return s.client.Del(ctx, s.key(clientID)).Err()
}
