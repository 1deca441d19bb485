package posters

import (
	"errors"
	"net/http"

	"kinderadmin/internal/shared/apperrors"
	"kinderadmin/internal/shared/middleware"
	"kinderadmin/internal/shared/utils/request"
	"kinderadmin/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	Upload(c *gin.Context)
	List(c *gin.Context)
	ListTemplates(c *gin.Context)
	Delete(c *gin.Context)
}

// multipartOverhead is allowed on top of the file limit for form fields and
// part headers.
const multipartOverhead = 1 << 20

type controller struct {
	service Service
	res     *response.Responder
	maxBody int64
}

// NewController builds the poster handlers. Request bodies larger than
// maxSize plus the multipart overhead are rejected while reading; a
// non-positive maxSize leaves bodies unbounded.
func NewController(service Service, res *response.Responder, maxSize int64) Controller {
	ctrl := &controller{service: service, res: res}
	if maxSize > 0 {
		ctrl.maxBody = maxSize + multipartOverhead
	}
	return ctrl
}

// Upload stores a poster image sent as multipart field "file".
//
// @Summary Upload a poster
// @Tags posters
// @Accept multipart/form-data
// @Param file formData file true "poster image"
// @Router /posters/upload [post]
func (ctrl *controller) Upload(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	if ctrl.maxBody > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ctrl.maxBody)
	}

	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ctrl.res.HandleError(c, apperrors.Validation("文件大小超过限制"))
			return
		}
		if errors.Is(err, http.ErrMissingFile) {
			ctrl.res.HandleError(c, apperrors.Validation("请选择要上传的文件"))
			return
		}
		ctrl.res.HandleError(c, apperrors.Wrap(apperrors.KindValidation, "文件上传失败", err))
		return
	}

	var req UploadRequest
	if err := request.BindForm(c, &req); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	poster, err := ctrl.service.Upload(c.Request.Context(), user, file, req)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleCreated(c, poster, "海报上传成功")
}

func (ctrl *controller) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	var query PosterListQuery
	if err := request.BindQuery(c, &query); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	page, err := ctrl.service.List(c.Request.Context(), user, query)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, page, "")
}

func (ctrl *controller) ListTemplates(c *gin.Context) {
	if middleware.CurrentUser(c) == nil {
		ctrl.res.Unauthorized(c)
		return
	}

	var query TemplateQuery
	if err := request.BindQuery(c, &query); err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	templates, err := ctrl.service.ListTemplates(c.Request.Context(), query)
	if err != nil {
		ctrl.res.HandleError(c, err)
		return
	}

	ctrl.res.HandleSuccess(c, templates, "")
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

	ctrl.res.HandleSuccess(c, nil, "海报删除成功")
}
