package marketing

import (
	"kinderadmin/internal/shared/middleware"
	"kinderadmin/internal/shared/utils/request"
	"kinderadmin/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	// Channels
	ListChannels(c *gin.Context)
	CreateChannel(c *gin.Context)
	UpdateChannel(c *gin.Context)
	DeleteChannel(c *gin.Context)

	// Promotion codes
	GenerateCode(c *gin.Context)
	ListMyCodes(c *gin.Context)
	GetCodeStats(c *gin.Context)
	RecordClick(c *gin.Context)
}

type controller struct {
	service Service
	res     *response.Responder
}

func NewController(service Service, res *response.Responder) Controller {
	return &controller{service: service, res: res}
}

// Channels

func (ctrl *controller) ListChannels(c *gin.Context) {
	if middleware.CurrentUser(c) == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	var query ChannelListQuery
	if err := request.BindQuery(c, &query); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	page, err := ctrl.service.ListChannels(c.Request.Context(), query)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, page, "获取渠道列表成功")
}

func (ctrl *controller) CreateChannel(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	var req CreateChannelRequest
	if err := request.BindJSON(c, &req); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ch, err := ctrl.service.CreateChannel(c.Request.Context(), user, req)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleCreated(c, ch, "渠道创建成功")
}

func (ctrl *controller) UpdateChannel(c *gin.Context) {
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

	var req UpdateChannelRequest
	if err := request.BindJSON(c, &req); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ch, err := ctrl.service.UpdateChannel(c.Request.Context(), user, id, req)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, ch, "渠道更新成功")
}

func (ctrl *controller) DeleteChannel(c *gin.Context) {
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

	if err := ctrl.service.DeleteChannel(c.Request.Context(), user, id); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, nil, "渠道删除成功")
}

// Promotion codes

func (ctrl *controller) GenerateCode(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	var req CreatePromotionCodeRequest
	if err := request.BindJSON(c, &req); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	code, err := ctrl.service.GenerateCode(c.Request.Context(), user, req)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleCreated(c, code, "推广码生成成功")
}

func (ctrl *controller) ListMyCodes(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	codes, err := ctrl.service.ListMyCodes(c.Request.Context(), user)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, codes, "")
}

func (ctrl *controller) GetCodeStats(c *gin.Context) {
	if middleware.CurrentUser(c) == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	stats, err := ctrl.service.GetCodeStats(c.Request.Context(), c.Param("code"))
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, stats, "")
}

// RecordClick is public: visitors arriving through a shared link are anonymous
func (ctrl *controller) RecordClick(c *gin.Context) {
	result, err := ctrl.service.RecordClick(c.Request.Context(), ClickRequest{
		Code:      c.Param("code"),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
	})
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, result, "点击记录成功")
}
