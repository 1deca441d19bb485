package personnel

import (
	"kinderadmin/internal/shared/middleware"
	"kinderadmin/internal/shared/utils/request"
	"kinderadmin/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	GetOverview(c *gin.Context)
	GetDistribution(c *gin.Context)
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type controller struct {
	service Service
	res     *response.Responder
}

func NewController(service Service, res *response.Responder) Controller {
	return &controller{service: service, res: res}
}

func (ctrl *controller) GetOverview(c *gin.Context) {
	if middleware.CurrentUser(c) == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	overview, err := ctrl.service.GetOverview(c.Request.Context())
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, overview, "获取人员概览成功")
}

func (ctrl *controller) GetDistribution(c *gin.Context) {
	if middleware.CurrentUser(c) == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	var query DistributionQuery
	if err := request.BindQuery(c, &query); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	dist, err := ctrl.service.GetDistribution(c.Request.Context(), query.Kind)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, dist, "")
}

func (ctrl *controller) List(c *gin.Context) {
	if middleware.CurrentUser(c) == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	var query PersonListQuery
	if err := request.BindQuery(c, &query); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	page, err := ctrl.service.List(c.Request.Context(), c.Param("kind"), query)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, page, "")
}

func (ctrl *controller) Get(c *gin.Context) {
	if middleware.CurrentUser(c) == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	id, err := request.ParseID(c, "id")
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	person, err := ctrl.service.Get(c.Request.Context(), c.Param("kind"), id)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, person, "")
}

func (ctrl *controller) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	var req CreatePersonRequest
	if err := request.BindJSON(c, &req); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	person, err := ctrl.service.Create(c.Request.Context(), user, c.Param("kind"), req)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleCreated(c, person, person.Kind.Label()+"创建成功")
}

func (ctrl *controller) Update(c *gin.Context) {
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

	var req UpdatePersonRequest
	if err := request.BindJSON(c, &req); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	person, err := ctrl.service.Update(c.Request.Context(), user, c.Param("kind"), id, req)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, person, person.Kind.Label()+"更新成功")
}

func (ctrl *controller) Delete(c *gin.Context) {
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

	if err := ctrl.service.Delete(c.Request.Context(), user, c.Param("kind"), id); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, nil, "删除成功")
}
