package enrollment

import (
	"kinderadmin/internal/shared/middleware"
	"kinderadmin/internal/shared/utils/request"
	"kinderadmin/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	CreateApplication(c *gin.Context)
	ListApplications(c *gin.Context)
	GetApplication(c *gin.Context)
	UpdateStatus(c *gin.Context)
	DeleteApplication(c *gin.Context)
	GetStats(c *gin.Context)
}

type controller struct {
	service Service
	res     *response.Responder
}

func NewController(service Service, res *response.Responder) Controller {
	return &controller{service: service, res: res}
}

func (ctrl *controller) CreateApplication(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	var req CreateApplicationRequest
	if err := request.BindJSON(c, &req); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	app, err := ctrl.service.CreateApplication(c.Request.Context(), user, req)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleCreated(c, app, "报名申请创建成功")
}

func (ctrl *controller) ListApplications(c *gin.Context) {
	if middleware.CurrentUser(c) == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	var query ApplicationListQuery
	if err := request.BindQuery(c, &query); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	page, err := ctrl.service.ListApplications(c.Request.Context(), query)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, page, "获取报名申请列表成功")
}

func (ctrl *controller) GetApplication(c *gin.Context) {
	if middleware.CurrentUser(c) == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	id, err := request.ParseID(c, "id")
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	app, err := ctrl.service.GetApplication(c.Request.Context(), id)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, app, "")
}

func (ctrl *controller) UpdateStatus(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	id, err := request.ParseID(c, "id")
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := request.BindJSON(c, &req); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	app, err := ctrl.service.UpdateStatus(c.Request.Context(), user, id, req)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, app, "申请状态更新成功")
}

func (ctrl *controller) DeleteApplication(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	id, err := request.ParseID(c, "id")
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	if err := ctrl.service.DeleteApplication(c.Request.Context(), user, id); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, nil, "报名申请删除成功")
}

func (ctrl *controller) GetStats(c *gin.Context) {
	if middleware.CurrentUser(c) == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	stats, err := ctrl.service.GetStats(c.Request.Context())
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, stats, "获取报名统计成功")
}
