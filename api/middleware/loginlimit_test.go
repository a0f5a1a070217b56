package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginLimiterLockout(t *testing.T) {
	store := NewMemoryAttemptStore(15 * time.Minute)
	limiter := NewLoginLimiter(store, 5, 15*time.Minute)
	ctx := context.Background()

	// 前 5 次放行
	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Allow(ctx, "1.2.3.4"), "attempt %d should be allowed", i+1)
	}
	// 第 6 次被锁
	assert.False(t, limiter.Allow(ctx, "1.2.3.4"))

	// 其他客户端不受影响
	assert.True(t, limiter.Allow(ctx, "5.6.7.8"))
}

func TestLoginLimiterResetOnSuccess(t *testing.T) {
	store := NewMemoryAttemptStore(15 * time.Minute)
	limiter := NewLoginLimiter(store, 5, 15*time.Minute)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		limiter.Allow(ctx, "1.2.3.4")
	}
	assert.False(t, limiter.Allow(ctx, "1.2.3.4"))

	limiter.Reset(ctx, "1.2.3.4")
	assert.True(t, limiter.Allow(ctx, "1.2.3.4"))
}

func TestMemoryAttemptStoreWindowExpiry(t *testing.T) {
	store := NewMemoryAttemptStore(20 * time.Millisecond)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		store.Hit(ctx, "client")
	}
	count, err := store.Hit(ctx, "client")
	assert.NoError(t, err)
	assert.Equal(t, 7, count)

	// 窗口滑过后计数重置
	time.Sleep(30 * time.Millisecond)
	count, err = store.Hit(ctx, "client")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

// failingStore 总是报错的存储
type failingStore struct{}

func (failingStore) Hit(context.Context, string) (int, error) {
	return 0, errors.New("store down")
}
func (failingStore) Reset(context.Context, string) error {
	return errors.New("store down")
}

func TestLoginLimiterFailsOpen(t *testing.T) {
	limiter := NewLoginLimiter(failingStore{}, 5, time.Minute)
	// 存储故障时不应把登录锁死
	assert.True(t, limiter.Allow(context.Background(), "1.2.3.4"))
}

func TestNewLoginLimiterDefaults(t *testing.T) {
	limiter := NewLoginLimiter(NewMemoryAttemptStore(0), 0, 0)
	assert.Equal(t, 5, limiter.maxAttempts)
	assert.Equal(t, 15*time.Minute, limiter.window)
}
