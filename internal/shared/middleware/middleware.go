package middleware

import (
	"strings"

	"kinderadmin/internal/shared/apperrors"
	"kinderadmin/internal/shared/config"
	"kinderadmin/internal/shared/utils/response"
	"kinderadmin/internal/users"
	"kinderadmin/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// UserContextKey is the gin context key holding *users.AuthUser
const UserContextKey = "user"

// JWTAuthWithConfig creates a JWT authentication middleware with config
func JWTAuthWithConfig(cfg *config.Config, res *response.Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := userFromHeader(c.GetHeader("Authorization"), cfg.JWT.Secret)
		if err != nil {
			logger.GetDefault().LogAuthFailure(c.Request.Context(), err.Error(), c.ClientIP())
			res.Abort(c, err)
			return
		}

		SetCurrentUser(c, user)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present but never rejects
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := userFromHeader(c.GetHeader("Authorization"), cfg.JWT.Secret); err == nil {
			SetCurrentUser(c, user)
		}
		c.Next()
	}
}

func userFromHeader(authHeader, secret string) (*users.AuthUser, error) {
	if authHeader == "" {
		return nil, apperrors.Unauthorized("Authorization header is required")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, apperrors.Unauthorized("authorization header format must be Bearer {token}")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.Unauthorized("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.Unauthorized("invalid token claims")
	}
	if tokenType, ok := claims["type"]; !ok || tokenType != "access" {
		return nil, apperrors.Unauthorized("invalid token type")
	}

	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return nil, apperrors.Unauthorized("invalid token subject")
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return &users.AuthUser{
		ID:       uint(id),
		Username: username,
		Role:     users.Role(role),
	}, nil
}

// SetCurrentUser attaches the authenticated user to the request
func SetCurrentUser(c *gin.Context, user *users.AuthUser) {
	c.Set(UserContextKey, user)
}

// CurrentUser returns the authenticated user or nil
func CurrentUser(c *gin.Context) *users.AuthUser {
	v, exists := c.Get(UserContextKey)
	if !exists {
		return nil
	}
	user, _ := v.(*users.AuthUser)
	return user
}

// RequireRoles middleware checks if user has any of the required roles
func RequireRoles(res *response.Responder, requiredRoles ...users.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			res.Unauthorized(c)
			return
		}

		for _, role := range requiredRoles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		res.Abort(c, apperrors.Forbidden("Insufficient permissions"))
	}
}

// RequireAdmin middleware that requires admin role
func RequireAdmin(res *response.Responder) gin.HandlerFunc {
	return RequireRoles(res, users.RoleAdmin)
}

// Recovery turns panics into the standard 500 envelope
func Recovery(res *response.Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if v := recover(); v != nil {
				err := apperrors.FromPanic(v)
				if apperrors.KindOf(err) != apperrors.KindInternal {
					err = apperrors.Internal("", err)
				}
				res.Abort(c, err)
			}
		}()
		c.Next()
	}
}

// Guards bundles the auth middleware that route groups attach.
type Guards struct {
	Auth      gin.HandlerFunc
	Optional  gin.HandlerFunc
	Responder *response.Responder
}

// NewGuards builds the guards for cfg
func NewGuards(cfg *config.Config, res *response.Responder) Guards {
	return Guards{
		Auth:      JWTAuthWithConfig(cfg, res),
		Optional:  OptionalAuth(cfg),
		Responder: res,
	}
}

// Admin requires an authenticated admin
func (g Guards) Admin() gin.HandlerFunc {
	return RequireAdmin(g.Responder)
}

// Roles requires an authenticated user with one of roles
func (g Guards) Roles(roles ...users.Role) gin.HandlerFunc {
	return RequireRoles(g.Responder, roles...)
}
