package migrations

import (
	"kinderadmin/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupMigrationRoutes(router *gin.RouterGroup, controller Controller, guards middleware.Guards) {
	migrations := router.Group("/migrations")
	migrations.Use(guards.Auth, guards.Admin())
	{
		migrations.GET("", controller.List)            // GET /api/v1/migrations
		migrations.POST("/run", controller.RunPending) // POST /api/v1/migrations/run
		migrations.POST("/:name/run", controller.Run)  // POST /api/v1/migrations/:name/run
	}
}
