package images

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/calloway-legal/firmsite/cache"
	"github.com/calloway-legal/firmsite/database/models"
	imagesrepo "github.com/calloway-legal/firmsite/database/repo/images"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Image{}))

	memCache, err := cache.NewMemory(cache.MemoryConfig{})
	require.NoError(t, err)
	t.Cleanup(func() { memCache.Close() })

	repo := imagesrepo.NewRepository(db)
	handler := NewHandler(repo, memCache)

	router := gin.New()
	router.GET("/api/images/:id", handler.GetImage)
	return router, db
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedStoredImage(t *testing.T, db *gorm.DB, data []byte, mimeType string) *models.Image {
	t.Helper()
	url := ""
	image := &models.Image{Data: data, MimeType: &mimeType}
	require.NoError(t, db.Create(image).Error)
	url = models.APIImageURL(image.ID)
	image.URL = &url
	require.NoError(t, db.Save(image).Error)
	return image
}

func TestGetImage(t *testing.T) {
	router, db := setupRouter(t)
	image := seedStoredImage(t, db, []byte("png-bytes"), "image/png")

	w := get(router, fmt.Sprintf("/api/images/%d", image.ID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", w.Body.String())
	assert.Contains(t, w.Header().Get("Cache-Control"), "public")

	// 二次请求命中缓存，内容一致
	w = get(router, fmt.Sprintf("/api/images/%d", image.ID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png-bytes", w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}

func TestGetImageNotFound(t *testing.T) {
	router, _ := setupRouter(t)
	assert.Equal(t, http.StatusNotFound, get(router, "/api/images/999").Code)
}

func TestGetImageNoData(t *testing.T) {
	router, db := setupRouter(t)

	// 只有外部 URL、没有二进制数据的记录
	url := "https://cdn.example.com/a.jpg"
	image := &models.Image{URL: &url}
	require.NoError(t, db.Create(image).Error)

	w := get(router, fmt.Sprintf("/api/images/%d", image.ID))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetImageBadID(t *testing.T) {
	router, _ := setupRouter(t)
	assert.Equal(t, http.StatusBadRequest, get(router, "/api/images/abc").Code)
	assert.Equal(t, http.StatusBadRequest, get(router, "/api/images/0").Code)
}

func TestEncodeDecodeCached(t *testing.T) {
	buf := encodeCached("image/webp", []byte("data\nwith newline"))
	mimeType, data, ok := decodeCached(buf)
	require.True(t, ok)
	assert.Equal(t, "image/webp", mimeType)
	assert.Equal(t, []byte("data\nwith newline"), data)

	_, _, ok = decodeCached([]byte("no-separator"))
	assert.False(t, ok)
}
