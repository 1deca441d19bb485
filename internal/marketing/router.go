package marketing

import (
	"kinderadmin/internal/shared/middleware"
	"kinderadmin/internal/users"

	"github.com/gin-gonic/gin"
)

func SetupMarketingRoutes(router *gin.RouterGroup, controller Controller, guards middleware.Guards) {
	marketing := router.Group("/marketing")

	// Public routes
	marketing.POST("/promotion-codes/:code/click", controller.RecordClick) // POST /api/v1/marketing/promotion-codes/:code/click

	// Authenticated routes
	authed := marketing.Group("")
	authed.Use(guards.Auth)
	{
		authed.POST("/promotion-codes", controller.GenerateCode)            // POST /api/v1/marketing/promotion-codes
		authed.GET("/promotion-codes/mine", controller.ListMyCodes)         // GET /api/v1/marketing/promotion-codes/mine
		authed.GET("/promotion-codes/:code/stats", controller.GetCodeStats) // GET /api/v1/marketing/promotion-codes/:code/stats
		authed.GET("/channels", controller.ListChannels)                    // GET /api/v1/marketing/channels
	}

	// Channel management
	channels := marketing.Group("/channels")
	channels.Use(guards.Auth, guards.Roles(users.RoleAdmin, users.RolePrincipal))
	{
		channels.POST("", controller.CreateChannel)       // POST /api/v1/marketing/channels
		channels.PUT("/:id", controller.UpdateChannel)    // PUT /api/v1/marketing/channels/:id
		channels.DELETE("/:id", controller.DeleteChannel) // DELETE /api/v1/marketing/channels/:id
	}
}
