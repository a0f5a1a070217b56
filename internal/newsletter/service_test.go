package newsletter

import (
	"context"
	"fmt"
	"testing"

	"github.com/calloway-legal/firmsite/database/models"
	"github.com/calloway-legal/firmsite/database/repo/subscribers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Subscriber{}))
	return NewService(subscribers.NewRepository(db)), db
}

func TestSubscribeConfirmUnsubscribe(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	token, err := svc.Subscribe(ctx, "Client@Example.com ")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// 邮箱归一化为小写
	var sub models.Subscriber
	require.NoError(t, db.Where("email = ?", "client@example.com").First(&sub).Error)
	assert.Nil(t, sub.ConfirmedAt)

	require.NoError(t, svc.Confirm(ctx, token))
	require.NoError(t, db.First(&sub, sub.ID).Error)
	assert.NotNil(t, sub.ConfirmedAt)
	assert.Empty(t, sub.ConfirmToken)

	confirmed, err := svc.ListConfirmed(ctx)
	require.NoError(t, err)
	assert.Len(t, confirmed, 1)

	require.NoError(t, svc.Unsubscribe(ctx, sub.UnsubscribeToken))
	confirmed, err = svc.ListConfirmed(ctx)
	require.NoError(t, err)
	assert.Empty(t, confirmed)
}

func TestSubscribeInvalidEmail(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	for _, email := range []string{"", "nope", "@example.com", "a@", "a b@example.com", "a@@example.com", "a@nodot"} {
		_, err := svc.Subscribe(ctx, email)
		assert.ErrorIs(t, err, ErrInvalidEmail, "email %q", email)
	}
}

func TestSubscribePendingReissuesToken(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	first, err := svc.Subscribe(ctx, "a@example.com")
	require.NoError(t, err)
	second, err := svc.Subscribe(ctx, "a@example.com")
	require.NoError(t, err)

	// 未确认的重复订阅换发新 token，旧 token 作废
	assert.NotEqual(t, first, second)
	assert.ErrorIs(t, svc.Confirm(ctx, first), ErrInvalidToken)
	assert.NoError(t, svc.Confirm(ctx, second))
}

func TestSubscribeConfirmedIsSilent(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	token, err := svc.Subscribe(ctx, "a@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.Confirm(ctx, token))

	// 已确认邮箱再次订阅静默成功，不返回新 token
	again, err := svc.Subscribe(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestConfirmInvalidToken(t *testing.T) {
	svc, _ := setupService(t)
	assert.ErrorIs(t, svc.Confirm(context.Background(), ""), ErrInvalidToken)
	assert.ErrorIs(t, svc.Confirm(context.Background(), "nope"), ErrInvalidToken)
	assert.ErrorIs(t, svc.Unsubscribe(context.Background(), "nope"), ErrInvalidToken)
}

func TestConfirmIdempotent(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	token, err := svc.Subscribe(ctx, "a@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.Confirm(ctx, token))
	// token 已清空，重复确认报无效
	assert.ErrorIs(t, svc.Confirm(ctx, token), ErrInvalidToken)
}
