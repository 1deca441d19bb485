package migrations

import (
	"kinderadmin/internal/shared/middleware"
	"kinderadmin/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	List(c *gin.Context)
	RunPending(c *gin.Context)
	Run(c *gin.Context)
}

type controller struct {
	service Service
	res     *response.Responder
}

func NewController(service Service, res *response.Responder) Controller {
	return &controller{service: service, res: res}
}

// List godoc
// @Summary List schema migrations and their state
// @Tags migrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Router /migrations [get]
func (ctrl *controller) List(c *gin.Context) {
	if middleware.CurrentUser(c) == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	statuses, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, statuses, "")
}

func (ctrl *controller) RunPending(c *gin.Context) {
	if middleware.CurrentUser(c) == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	result, err := ctrl.service.RunPending(c.Request.Context())
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	message := "数据库已是最新"
	if len(result.Applied) > 0 {
		message = "数据库迁移执行成功"
	}
	ctrl.res.HandleSuccess(c, result, message)
}

func (ctrl *controller) Run(c *gin.Context) {
	if middleware.CurrentUser(c) == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	result, err := ctrl.service.Run(c.Request.Context(), c.Param("name"))
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, result, "数据库迁移执行成功")
}
