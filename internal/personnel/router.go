package personnel

import (
	"kinderadmin/internal/shared/middleware"
	"kinderadmin/internal/users"

	"github.com/gin-gonic/gin"
)

func SetupPersonnelRoutes(router *gin.RouterGroup, controller Controller, guards middleware.Guards) {
	personnel := router.Group("/personnel")
	personnel.Use(guards.Auth)
	{
		personnel.GET("/overview", controller.GetOverview)         // GET /api/v1/personnel/overview
		personnel.GET("/distribution", controller.GetDistribution) // GET /api/v1/personnel/distribution
		personnel.GET("/:kind", controller.List)                   // GET /api/v1/personnel/:kind
		personnel.GET("/:kind/:id", controller.Get)                // GET /api/v1/personnel/:kind/:id

		manage := personnel.Group("")
		manage.Use(guards.Roles(users.RoleAdmin, users.RolePrincipal))
		{
			manage.POST("/:kind", controller.Create)       // POST /api/v1/personnel/:kind
			manage.PUT("/:kind/:id", controller.Update)    // PUT /api/v1/personnel/:kind/:id
			manage.DELETE("/:kind/:id", controller.Delete) // DELETE /api/v1/personnel/:kind/:id
		}
	}
}
