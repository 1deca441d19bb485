package errorlogs

import (
	"kinderadmin/internal/shared/middleware"
	"kinderadmin/internal/shared/utils/request"
	"kinderadmin/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	Report(c *gin.Context)
	List(c *gin.Context)
	Stats(c *gin.Context)
	Purge(c *gin.Context)
}

type controller struct {
	service Service
	res     *response.Responder
}

func NewController(service Service, res *response.Responder) Controller {
	return &controller{service: service, res: res}
}

// Report godoc
// @Summary Report a client-side error
// @Tags error-logs
// @Accept json
// @Produce json
// @Param body body ReportRequest true "error report"
// @Success 201 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /error-logs [post]
func (ctrl *controller) Report(c *gin.Context) {
	var req ReportRequest
	if err := request.BindJSON(c, &req); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	meta := ClientMeta{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}
	result, err := ctrl.service.Report(c.Request.Context(), middleware.CurrentUser(c), meta, req)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleCreated(c, result, "错误日志已记录")
}

func (ctrl *controller) List(c *gin.Context) {
	if middleware.CurrentUser(c) == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	var query ListQuery
	if err := request.BindQuery(c, &query); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	page, err := ctrl.service.List(c.Request.Context(), query)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, page, "")
}

func (ctrl *controller) Stats(c *gin.Context) {
	if middleware.CurrentUser(c) == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	stats, err := ctrl.service.Stats(c.Request.Context())
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, stats, "")
}

func (ctrl *controller) Purge(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	var query PurgeQuery
	if err := request.BindQuery(c, &query); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	result, err := ctrl.service.Purge(c.Request.Context(), user, query.Days)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, result, "过期错误日志已清理")
}
