package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kinderadmin/internal/shared/config"
	"kinderadmin/internal/shared/utils/response"
	"kinderadmin/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type discardLogger struct{ calls int }

func (l *discardLogger) LogError(context.Context, string, error) { l.calls++ }

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func accessClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"user_id":  float64(42),
		"username": "lihua",
		"role":     "teacher",
		"type":     "access",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
}

func setupRouter(handlers ...gin.HandlerFunc) (*gin.Engine, *discardLogger) {
	gin.SetMode(gin.TestMode)
	log := &discardLogger{}
	res := response.NewResponder(log)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}

	r := gin.New()
	r.Use(Recovery(res))
	chain := append([]gin.HandlerFunc{JWTAuthWithConfig(cfg, res)}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		res.HandleSuccess(c, CurrentUser(c), "")
	})
	r.GET("/me", chain...)
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/panic-error", func(c *gin.Context) { panic(errors.New("nil map write")) })
	return r, log
}

func perform(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	expired := accessClaims()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()
	refresh := accessClaims()
	refresh["type"] = "refresh"
	noSubject := accessClaims()
	delete(noSubject, "user_id")

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{name: "valid token", header: "Bearer " + signToken(t, accessClaims(), testSecret), expectedStatus: http.StatusOK},
		{name: "missing header", header: "", expectedStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Token abc", expectedStatus: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + signToken(t, accessClaims(), "other"), expectedStatus: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer " + signToken(t, expired, testSecret), expectedStatus: http.StatusUnauthorized},
		{name: "refresh token", header: "Bearer " + signToken(t, refresh, testSecret), expectedStatus: http.StatusUnauthorized},
		{name: "missing subject", header: "Bearer " + signToken(t, noSubject, testSecret), expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupRouter()
			w := perform(r, "/me", tt.header)
			assert.Equal(t, tt.expectedStatus, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.expectedStatus == http.StatusOK {
				data := body["data"].(map[string]interface{})
				assert.Equal(t, float64(42), data["id"])
				assert.Equal(t, "teacher", data["role"])
			} else {
				assert.Equal(t, "UNAUTHORIZED", body["error"])
				assert.Equal(t, float64(http.StatusUnauthorized), body["statusCode"])
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	res := response.NewResponder(&discardLogger{})

	r, _ := setupRouter(RequireRoles(res, users.RoleAdmin, users.RolePrincipal))
	w := perform(r, "/me", "Bearer "+signToken(t, accessClaims(), testSecret))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"FORBIDDEN"`)

	admin := accessClaims()
	admin["role"] = "admin"
	w = perform(r, "/me", "Bearer "+signToken(t, admin, testSecret))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesWithoutUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	res := response.NewResponder(&discardLogger{})
	r := gin.New()
	r.GET("/admin", RequireAdmin(res), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := perform(r, "/admin", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
	r := gin.New()
	r.GET("/maybe", OptionalAuth(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"authenticated": CurrentUser(c) != nil})
	})

	w := perform(r, "/maybe", "Bearer garbage")
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	w = perform(r, "/maybe", "Bearer "+signToken(t, accessClaims(), testSecret))
	assert.JSONEq(t, `{"authenticated":true}`, w.Body.String())
}

func TestRecovery(t *testing.T) {
	for _, path := range []string{"/panic", "/panic-error"} {
		t.Run(path, func(t *testing.T) {
			r, log := setupRouter()
			w := perform(r, path, "")

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Contains(t, w.Body.String(), `"error":"SERVER_ERROR"`)
			assert.Equal(t, 1, log.calls)
		})
	}
}
