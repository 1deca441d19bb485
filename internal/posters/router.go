package posters

import (
	"kinderadmin/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPosterRoutes(router *gin.RouterGroup, controller Controller, guards middleware.Guards) {
	posters := router.Group("/posters")
	posters.Use(guards.Auth)
	{
		posters.POST("/upload", controller.Upload)          // POST /api/v1/posters/upload
		posters.GET("", controller.List)                    // GET /api/v1/posters
		posters.GET("/templates", controller.ListTemplates) // GET /api/v1/posters/templates
		posters.DELETE("/:id", controller.Delete)           // DELETE /api/v1/posters/:id
	}
}
