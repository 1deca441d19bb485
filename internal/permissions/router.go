package permissions

import (
	"kinderadmin/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPermissionRoutes(router *gin.RouterGroup, controller Controller, guards middleware.Guards) {
	permissions := router.Group("/permissions")
	permissions.Use(guards.Auth)
	{
		permissions.GET("/routes", controller.GetRoutes)                // GET /api/v1/permissions/routes
		permissions.GET("/dynamic-routes", controller.GetDynamicRoutes) // GET /api/v1/permissions/dynamic-routes
		permissions.GET("/user", controller.GetUserPermissions)         // GET /api/v1/permissions/user
		permissions.POST("/check", controller.CheckPermission)          // POST /api/v1/permissions/check

		cache := permissions.Group("/cache")
		cache.Use(guards.Admin())
		{
			cache.GET("/stats", controller.GetCacheStats) // GET /api/v1/permissions/cache/stats
			cache.POST("/clear", controller.ClearCache)   // POST /api/v1/permissions/cache/clear
		}
	}
}
