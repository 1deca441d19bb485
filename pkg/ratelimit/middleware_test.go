package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kinderadmin/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type silentLogger struct{}

func (silentLogger) LogError(context.Context, string, error) {}

func testConfig() *Config {
	return &Config{
		Enabled:         true,
		WindowDuration:  time.Minute,
		DefaultRequests: 60,
		PublicRequests:  100,
		UploadRequests:  10,
		AdminRequests:   200,
		ReportRequests:  30,
		HealthRequests:  300,
		WhitelistedIPs:  []string{"10.0.0.1"},
	}
}

func TestGetRateLimitType(t *testing.T) {
	tests := []struct {
		method   string
		path     string
		expected RateLimitType
	}{
		{"GET", "/health", RateLimitTypeHealth},
		{"POST", "/api/v1/posters/upload", RateLimitTypeUpload},
		{"POST", "/api/v1/migrations/:name/run", RateLimitTypeAdmin},
		{"POST", "/api/v1/permissions/cache/clear", RateLimitTypeAdmin},
		{"POST", "/api/v1/error-logs", RateLimitTypeReport},
		{"GET", "/api/v1/error-logs", RateLimitTypeDefault},
		{"POST", "/api/v1/marketing/promotion-codes/:code/click", RateLimitTypePublic},
		{"GET", "/api/v1/page-guides/by-path/*pagePath", RateLimitTypePublic},
		{"GET", "/api/v1/enrollment/applications", RateLimitTypeDefault},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, getRateLimitType(tt.method, tt.path))
		})
	}
}

func TestIsAllowedWithoutRedis(t *testing.T) {
	limiter := NewRateLimiter(nil, testConfig())

	result, err := limiter.IsAllowed(context.Background(), "192.168.1.2", RateLimitTypeUpload)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 10, result.Limit)
}

func TestLocalBucketExhaustsBudget(t *testing.T) {
	cfg := testConfig()
	cfg.UploadRequests = 3
	limiter := NewRateLimiter(nil, cfg)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := limiter.IsAllowed(ctx, "192.168.1.3", RateLimitTypeUpload)
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d", i)
	}

	result, err := limiter.IsAllowed(ctx, "192.168.1.3", RateLimitTypeUpload)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Zero(t, result.Remaining)

	other, err := limiter.IsAllowed(ctx, "192.168.1.4", RateLimitTypeUpload)
	require.NoError(t, err)
	assert.True(t, other.Allowed)
}

func TestLocalBucketRefills(t *testing.T) {
	cfg := testConfig()
	cfg.UploadRequests = 2
	limiter := NewRateLimiter(nil, cfg)
	start := time.Now()

	assert.True(t, limiter.checkLocal("k", 2, start).Allowed)
	assert.True(t, limiter.checkLocal("k", 2, start).Allowed)
	assert.False(t, limiter.checkLocal("k", 2, start).Allowed)

	assert.True(t, limiter.checkLocal("k", 2, start.Add(31*time.Second)).Allowed)
}

func TestDisabledLimiterAllowsEverything(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	cfg.UploadRequests = 1
	limiter := NewRateLimiter(nil, cfg)

	for i := 0; i < 5; i++ {
		result, err := limiter.IsAllowed(context.Background(), "192.168.1.5", RateLimitTypeUpload)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	}
}

func TestIsWhitelisted(t *testing.T) {
	limiter := NewRateLimiter(nil, testConfig())
	assert.True(t, limiter.isWhitelisted("10.0.0.1"))
	assert.False(t, limiter.isWhitelisted("10.0.0.2"))
}

func TestMiddlewareSetsHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(NewRateLimiter(nil, testConfig()), response.NewResponder(silentLogger{})))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "300", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "299", w.Header().Get("X-RateLimit-Remaining"))
}

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "198.51.100.4:5555"

	assert.Equal(t, "198.51.100.4", getClientIP(c))

	c.Request.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", getClientIP(c))

	c.Request.Header.Set("X-Forwarded-For", "not-an-ip")
	assert.Equal(t, "198.51.100.7", getClientIP(c))
}
