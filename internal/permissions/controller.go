package permissions

import (
	"kinderadmin/internal/shared/middleware"
	"kinderadmin/internal/shared/utils/request"
	"kinderadmin/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	GetRoutes(c *gin.Context)
	GetDynamicRoutes(c *gin.Context)
	GetUserPermissions(c *gin.Context)
	CheckPermission(c *gin.Context)
	GetCacheStats(c *gin.Context)
	ClearCache(c *gin.Context)
}

type controller struct {
	service Service
	res     *response.Responder
}

func NewController(service Service, res *response.Responder) Controller {
	return &controller{service: service, res: res}
}

// GetRoutes godoc
// @Summary List front-end routes
// @Tags permissions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /permissions/routes [get]
func (ctrl *controller) GetRoutes(c *gin.Context) {
	if middleware.CurrentUser(c) == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	routes, err := ctrl.service.GetRoutes(c.Request.Context())
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, gin.H{"routes": routes}, "")
}

func (ctrl *controller) GetDynamicRoutes(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	tree, err := ctrl.service.GetDynamicRoutes(c.Request.Context(), user)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, tree, "获取动态路由成功")
}

func (ctrl *controller) GetUserPermissions(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	perms, err := ctrl.service.GetUserPermissions(c.Request.Context(), user)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, perms, "")
}

// CheckPermission godoc
// @Summary Check a path or permission code for the current user
// @Tags permissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CheckRequest true "path and/or code"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /permissions/check [post]
func (ctrl *controller) CheckPermission(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	var req CheckRequest
	if err := request.BindJSON(c, &req); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	result, err := ctrl.service.Check(c.Request.Context(), user, req)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, result, "")
}

func (ctrl *controller) GetCacheStats(c *gin.Context) {
	if middleware.CurrentUser(c) == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	stats, err := ctrl.service.CacheStats(c.Request.Context())
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, stats, "")
}

func (ctrl *controller) ClearCache(c *gin.Context) {
	if middleware.CurrentUser(c) == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	var req ClearCacheRequest
	if err := request.BindJSON(c, &req); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	result, err := ctrl.service.ClearCache(c.Request.Context(), req)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, result, "权限缓存已清除")
}
