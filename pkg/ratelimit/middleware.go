package ratelimit

import (
	"fmt"
	"net"
	"strings"

	"kinderadmin/internal/shared/apperrors"
	"kinderadmin/internal/shared/utils/response"
	"kinderadmin/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Middleware applies the per-route budget and answers 429 with the standard
// error envelope.
func Middleware(rateLimiter *RateLimiter, res *response.Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := getClientIP(c)
		limitType := getRateLimitType(c.Request.Method, c.FullPath())

		result, err := rateLimiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			res.Abort(c, apperrors.Internal("Rate limit check failed", err))
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetTime))

		if !result.Allowed {
			logger.GetDefault().LogRateLimitExceeded(c.Request.Context(), clientIP, c.FullPath())
			res.Abort(c, apperrors.RateLimited(""))
			return
		}

		c.Next()
	}
}

func getRateLimitType(method, path string) RateLimitType {
	switch {
	case strings.HasPrefix(path, "/health"),
		strings.HasPrefix(path, "/ping"),
		strings.HasPrefix(path, "/status"):
		return RateLimitTypeHealth

	case strings.Contains(path, "/posters/upload"):
		return RateLimitTypeUpload

	case strings.Contains(path, "/migrations"),
		strings.Contains(path, "/permissions/cache"):
		return RateLimitTypeAdmin

	case method == "POST" && strings.HasSuffix(path, "/error-logs"):
		return RateLimitTypeReport

	case strings.HasSuffix(path, "/click"),
		strings.Contains(path, "/page-guides/by-path"):
		return RateLimitTypePublic

	default:
		return RateLimitTypeDefault
	}
}

// extracts real client IP
func getClientIP(c *gin.Context) string {
	if xForwardedFor := c.GetHeader("X-Forwarded-For"); xForwardedFor != "" {
		ip := strings.TrimSpace(strings.Split(xForwardedFor, ",")[0])
		if net.ParseIP(ip) != nil {
			return ip
		}
	}

	if xRealIP := c.GetHeader("X-Real-IP"); xRealIP != "" && net.ParseIP(xRealIP) != nil {
		return xRealIP
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}

	return ip
}
