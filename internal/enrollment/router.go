package enrollment

import (
	"kinderadmin/internal/shared/middleware"
	"kinderadmin/internal/users"

	"github.com/gin-gonic/gin"
)

func SetupEnrollmentRoutes(router *gin.RouterGroup, controller Controller, guards middleware.Guards) {
	enrollment := router.Group("/enrollment")
	enrollment.Use(guards.Auth)
	{
		enrollment.POST("/applications", controller.CreateApplication) // POST /api/v1/enrollment/applications
		enrollment.GET("/applications", controller.ListApplications)   // GET /api/v1/enrollment/applications
		enrollment.GET("/applications/:id", controller.GetApplication) // GET /api/v1/enrollment/applications/:id
		enrollment.GET("/stats", controller.GetStats)                  // GET /api/v1/enrollment/stats

		review := enrollment.Group("")
		review.Use(guards.Roles(users.RoleAdmin, users.RolePrincipal))
		{
			review.PUT("/applications/:id/status", controller.UpdateStatus)  // PUT /api/v1/enrollment/applications/:id/status
			review.DELETE("/applications/:id", controller.DeleteApplication) // DELETE /api/v1/enrollment/applications/:id
		}
	}
}
