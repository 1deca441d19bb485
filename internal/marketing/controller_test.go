package marketing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kinderadmin/internal/shared/middleware"
	"kinderadmin/internal/shared/utils/response"
	"kinderadmin/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) LogError(context.Context, string, error) {}

func setupTestRouter(repo Repository, user *users.AuthUser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := NewController(newTestService(repo), response.NewResponder(nopLogger{}))

	r.Use(func(c *gin.Context) {
		if user != nil {
			middleware.SetCurrentUser(c, user)
		}
		c.Next()
	})
	r.POST("/promotion-codes", ctrl.GenerateCode)
	r.GET("/promotion-codes/mine", ctrl.ListMyCodes)
	r.POST("/promotion-codes/:code/click", ctrl.RecordClick)
	r.POST("/channels", ctrl.CreateChannel)
	return r
}

func serve(r *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestRecordClickIsPublic(t *testing.T) {
	repo := new(mockRepository)
	repo.On("GetCode", mock.Anything, "ABC").Return(&PromotionCode{
		Code: "ABC", Status: CodeStatusActive, UsageLimit: 10, UsageCount: 0, ExpiresAt: fixedNow.Add(24 * time.Hour),
	}, nil)
	repo.On("RecordClick", mock.Anything, mock.MatchedBy(func(click *PromotionClick) bool {
		return click.UserAgent == "WeChat/8.0" && click.Referrer == "https://example.com/share" && click.IPAddress == "203.0.113.5"
	}), fixedNow).Return(&PromotionCode{Code: "ABC", UsageLimit: 10, UsageCount: 1}, nil)

	req := httptest.NewRequest(http.MethodPost, "/promotion-codes/ABC/click", nil)
	req.RemoteAddr = "203.0.113.5:4000"
	req.Header.Set("User-Agent", "WeChat/8.0")
	req.Header.Set("Referer", "https://example.com/share")

	w, body := serve(setupTestRouter(repo, nil), req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(9), data["remaining"])
}

func TestRecordClickExhaustedCode(t *testing.T) {
	repo := new(mockRepository)
	repo.On("GetCode", mock.Anything, "ABC").Return(&PromotionCode{
		Code: "ABC", Status: CodeStatusActive, UsageLimit: 1, UsageCount: 1, ExpiresAt: fixedNow.Add(time.Hour),
	}, nil)

	w, body := serve(setupTestRouter(repo, nil), httptest.NewRequest(http.MethodPost, "/promotion-codes/ABC/click", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
	assert.Equal(t, "推广码使用次数已达上限", body["message"])
}

func TestGenerateCodeRequiresUser(t *testing.T) {
	repo := new(mockRepository)

	w, body := serve(setupTestRouter(repo, nil), httptest.NewRequest(http.MethodPost, "/promotion-codes", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "未授权访问", body["message"])
	repo.AssertNotCalled(t, "CreateCode", mock.Anything, mock.Anything)
}

func TestListMyCodesReturnsEmptyArray(t *testing.T) {
	repo := new(mockRepository)
	repo.On("ListCodesByUser", mock.Anything, uint(3)).Return(nil, nil)

	w, _ := serve(setupTestRouter(repo, principal), httptest.NewRequest(http.MethodGet, "/promotion-codes/mine", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
}

func TestCreateChannelValidatesType(t *testing.T) {
	repo := new(mockRepository)
	req := httptest.NewRequest(http.MethodPost, "/channels", strings.NewReader(`{"channelName":"抖音","channelType":"tv"}`))
	req.Header.Set("Content-Type", "application/json")

	w, body := serve(setupTestRouter(repo, principal), req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ChannelType must be one of [online offline referral]", body["message"])
}
