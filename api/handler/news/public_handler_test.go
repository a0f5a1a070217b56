package news

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/calloway-legal/firmsite/database/models"
	"github.com/calloway-legal/firmsite/database/repo/articles"
	imagesrepo "github.com/calloway-legal/firmsite/database/repo/images"
	"github.com/calloway-legal/firmsite/internal/imagestore"
	newsSvc "github.com/calloway-legal/firmsite/internal/news"
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
	require.NoError(t, db.AutoMigrate(&models.Image{}, &models.Article{}))

	repo := articles.NewRepository(db)
	service := newsSvc.NewService(repo, imagesrepo.NewRepository(db), imagestore.New(db, 0))
	handler := NewHandler(repo, service)

	router := gin.New()
	router.GET("/api/news", handler.ListPublished)
	router.GET("/api/news/:slug", handler.GetBySlug)
	return router, db
}

func seedArticle(t *testing.T, db *gorm.DB, title, slug string, publishedAt *time.Time) *models.Article {
	t.Helper()
	article := &models.Article{
		Title:       title,
		Slug:        slug,
		Body:        "body of " + title,
		PublishedAt: publishedAt,
	}
	require.NoError(t, db.Create(article).Error)
	return article
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListPublishedHidesDrafts(t *testing.T) {
	router, db := setupRouter(t)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	seedArticle(t, db, "Published", "published", &past)
	seedArticle(t, db, "Draft", "draft", nil)
	seedArticle(t, db, "Scheduled", "scheduled", &future)

	w := get(router, "/api/news")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Items []articleResponse `json:"items"`
			Total int64             `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// 草稿和定时未到的文章不出现在公开列表
	assert.Equal(t, int64(1), resp.Data.Total)
	require.Len(t, resp.Data.Items, 1)
	assert.Equal(t, "published", resp.Data.Items[0].Slug)
	// 列表不携带正文
	assert.Empty(t, resp.Data.Items[0].Body)
}

func TestGetBySlug(t *testing.T) {
	router, db := setupRouter(t)
	past := time.Now().Add(-time.Hour)
	seedArticle(t, db, "Story", "story", &past)

	w := get(router, "/api/news/story")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data articleResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Story", resp.Data.Title)
	assert.Equal(t, "body of Story", resp.Data.Body)
}

func TestGetBySlugNotFound(t *testing.T) {
	router, db := setupRouter(t)
	// 存在但未发布的文章对公开接口等同不存在
	seedArticle(t, db, "Draft", "draft", nil)

	assert.Equal(t, http.StatusNotFound, get(router, "/api/news/absent").Code)
	assert.Equal(t, http.StatusNotFound, get(router, "/api/news/draft").Code)
}

func TestListPagination(t *testing.T) {
	router, db := setupRouter(t)
	for i := 0; i < 15; i++ {
		ts := time.Now().Add(-time.Duration(i+1) * time.Hour)
		seedArticle(t, db, fmt.Sprintf("A%d", i), fmt.Sprintf("a-%d", i), &ts)
	}

	w := get(router, "/api/news?page=2&page_size=10")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Items []articleResponse `json:"items"`
			Total int64             `json:"total"`
			Page  int               `json:"page"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(15), resp.Data.Total)
	assert.Len(t, resp.Data.Items, 5)
	assert.Equal(t, 2, resp.Data.Page)

	// 最新发布的排在第一页首位
	w = get(router, "/api/news?page=1&page_size=10")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "a-0", resp.Data.Items[0].Slug)
}
