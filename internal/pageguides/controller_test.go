package pageguides

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kinderadmin/internal/shared/middleware"
	"kinderadmin/internal/shared/utils/response"
	"kinderadmin/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type nopLogger struct{}

func (nopLogger) LogError(context.Context, string, error) {}

func setupTestRouter(repo Repository, user *users.AuthUser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := NewController(NewService(repo, nil), response.NewResponder(nopLogger{}))

	r.Use(func(c *gin.Context) {
		if user != nil {
			middleware.SetCurrentUser(c, user)
		}
		c.Next()
	})
	r.GET("/page-guides/by-path/*pagePath", ctrl.GetByPath)
	r.GET("/page-guides", ctrl.List)
	r.POST("/page-guides", ctrl.Upsert)
	r.DELETE("/page-guides/:id", ctrl.Delete)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

func TestByPathWithoutGuide(t *testing.T) {
	repo := new(mockRepository)
	repo.On("FindActiveByPath", mock.Anything, "/unknown/page").Return(nil, gorm.ErrRecordNotFound)
	repo.On("ListActive", mock.Anything).Return([]PageGuide{}, nil)

	w, body := doRequest(setupTestRouter(repo, nil), http.MethodGet, "/page-guides/by-path/unknown/page", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body, "data")
	assert.Nil(t, body["data"])
	assert.Equal(t, "该页面暂无说明文档", body["message"])
}

func TestByPathWithGuide(t *testing.T) {
	repo := new(mockRepository)
	repo.On("FindActiveByPath", mock.Anything, "/marketing/channels").Return(&PageGuide{
		ID:       1,
		PagePath: "/marketing/channels",
		PageName: "营销渠道",
		Sections: []Section{{ID: 1, SectionName: "渠道概览", IsActive: true}},
	}, nil)

	w, body := doRequest(setupTestRouter(repo, nil), http.MethodGet, "/page-guides/by-path/marketing/channels", "")

	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "营销渠道", data["pageName"])
	assert.Len(t, data["sections"], 1)
}

func TestUpsertEndpoint(t *testing.T) {
	admin := &users.AuthUser{ID: 1, Username: "admin", Role: users.RoleAdmin}

	t.Run("missing name", func(t *testing.T) {
		w, body := doRequest(setupTestRouter(new(mockRepository), admin), http.MethodPost, "/page-guides", `{"pagePath":"/a"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", body["error"])
		assert.Equal(t, "PageName is required", body["message"])
	})

	t.Run("created", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("GetByPath", mock.Anything, "/a").Return(nil, gorm.ErrRecordNotFound)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		w, body := doRequest(setupTestRouter(repo, admin), http.MethodPost, "/page-guides", `{"pagePath":"/a","pageName":"A"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "页面说明文档创建成功", body["message"])
	})

	t.Run("no user", func(t *testing.T) {
		w, _ := doRequest(setupTestRouter(new(mockRepository), nil), http.MethodPost, "/page-guides", `{"pagePath":"/a","pageName":"A"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestDeleteEndpointRejectsBadID(t *testing.T) {
	admin := &users.AuthUser{ID: 1, Role: users.RoleAdmin}
	w, body := doRequest(setupTestRouter(new(mockRepository), admin), http.MethodDelete, "/page-guides/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "无效的ID: abc", body["message"])
}
