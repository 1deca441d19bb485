package pageguides

import (
	"kinderadmin/internal/shared/middleware"
	"kinderadmin/internal/users"

	"github.com/gin-gonic/gin"
)

func SetupPageGuideRoutes(router *gin.RouterGroup, controller Controller, guards middleware.Guards) {
	guides := router.Group("/page-guides")
	{
		guides.GET("/by-path/*pagePath", controller.GetByPath) // GET /api/v1/page-guides/by-path/*pagePath

		authenticated := guides.Group("")
		authenticated.Use(guards.Auth)
		{
			authenticated.GET("", controller.List) // GET /api/v1/page-guides
		}

		manage := guides.Group("")
		manage.Use(guards.Auth, guards.Roles(users.RoleAdmin, users.RolePrincipal))
		{
			manage.POST("", controller.Upsert)       // POST /api/v1/page-guides
			manage.PUT("/:id", controller.Update)    // PUT /api/v1/page-guides/:id
			manage.DELETE("/:id", controller.Delete) // DELETE /api/v1/page-guides/:id
		}

		presets := guides.Group("/presets")
		presets.Use(guards.Auth, guards.Admin())
		{
			presets.POST("/marketing", controller.SeedPresets) // POST /api/v1/page-guides/presets/marketing
		}
	}
}
