package errorlogs

import (
	"kinderadmin/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupErrorLogRoutes(router *gin.RouterGroup, controller Controller, guards middleware.Guards) {
	errorLogs := router.Group("/error-logs")
	{
		errorLogs.POST("", guards.Optional, controller.Report) // POST /api/v1/error-logs

		admin := errorLogs.Group("")
		admin.Use(guards.Auth, guards.Admin())
		{
			admin.GET("", controller.List)        // GET /api/v1/error-logs
			admin.GET("/stats", controller.Stats) // GET /api/v1/error-logs/stats
			admin.DELETE("", controller.Purge)    // DELETE /api/v1/error-logs?days=
		}
	}
}
