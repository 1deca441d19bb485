package pageguides

import (
	"kinderadmin/internal/shared/middleware"
	"kinderadmin/internal/shared/utils/request"
	"kinderadmin/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	GetByPath(c *gin.Context)
	List(c *gin.Context)
	Upsert(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SeedPresets(c *gin.Context)
}

type controller struct {
	service Service
	res     *response.Responder
}

func NewController(service Service, res *response.Responder) Controller {
	return &controller{service: service, res: res}
}

// GetByPath answers 200 with null data when no guide covers the page so the
// front end does not surface an error.
//
// @Summary Page guide for a front-end path
// @Tags page-guides
// @Router /page-guides/by-path/{pagePath} [get]
func (ctrl *controller) GetByPath(c *gin.Context) {
	guide, err := ctrl.service.GetByPath(c.Request.Context(), c.Param("pagePath"))
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}
	if guide == nil {
		ctrl.res.HandleSuccess(c, nil, "该页面暂无说明文档")
		return
	}

	ctrl.res.HandleSuccess(c, guide, "页面说明文档获取成功")
}

func (ctrl *controller) List(c *gin.Context) {
	if middleware.CurrentUser(c) == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	var query GuideListQuery
	if err := request.BindQuery(c, &query); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	page, err := ctrl.service.List(c.Request.Context(), query)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, page, "页面说明文档列表获取成功")
}

func (ctrl *controller) Upsert(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	var req UpsertGuideRequest
	if err := request.BindJSON(c, &req); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	guide, created, err := ctrl.service.Upsert(c.Request.Context(), user, req)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	if created {
		ctrl.res.HandleCreated(c, guide, "页面说明文档创建成功")
		return
	}
	ctrl.res.HandleSuccess(c, guide, "页面说明文档更新成功")
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

	var req UpdateGuideRequest
	if err := request.BindJSON(c, &req); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	guide, err := ctrl.service.Update(c.Request.Context(), user, id, req)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, guide, "页面说明文档更新成功")
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

	if err := ctrl.service.Delete(c.Request.Context(), user, id); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, nil, "页面说明文档删除成功")
}

func (ctrl *controller) SeedPresets(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	results, err := ctrl.service.SeedPresets(c.Request.Context(), user)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, results, "营销中心页面感知配置创建完成")
}
