package response

import (
	"context"
	"net/http"

	"kinderadmin/internal/shared/apperrors"
	"kinderadmin/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorLogger receives every error handled by a Responder.
type ErrorLogger interface {
	LogError(ctx context.Context, label string, err error)
}

// Responder writes the success and error envelopes. It holds no request
// state and is safe for concurrent use.
type Responder struct {
	logger ErrorLogger
}

// NewResponder creates a responder that reports handled errors to l.
// A nil logger falls back to the process-wide default logger.
func NewResponder(l ErrorLogger) *Responder {
	if l == nil {
		l = logger.GetDefault()
	}
	return &Responder{logger: l}
}

// Default returns a responder backed by the default logger.
func Default() *Responder {
	return NewResponder(nil)
}

// BuildSuccess returns the success body. data is passed through unchanged.
func BuildSuccess(data interface{}, message string) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Data:    data,
		Message: message,
	}
}

// BuildError classifies err and returns the status code and body.
func BuildError(err error) (int, ErrorResponse) {
	kind := apperrors.KindOf(err)
	status := kind.StatusCode()
	return status, ErrorResponse{
		Success:    false,
		Error:      kind.String(),
		Message:    apperrors.MessageOf(err),
		StatusCode: status,
	}
}

// HandleSuccess writes a 200 success envelope.
func (r *Responder) HandleSuccess(c *gin.Context, data interface{}, message string) {
	r.HandleSuccessWithStatus(c, http.StatusOK, data, message)
}

// HandleCreated writes a 201 success envelope.
func (r *Responder) HandleCreated(c *gin.Context, data interface{}, message string) {
	r.HandleSuccessWithStatus(c, http.StatusCreated, data, message)
}

// HandleSuccessWithStatus writes a success envelope with a caller-chosen 2xx
// status. Anything outside 2xx is coerced to 200.
func (r *Responder) HandleSuccessWithStatus(c *gin.Context, status int, data interface{}, message string) {
	if status < 200 || status > 299 {
		status = http.StatusOK
	}
	c.JSON(status, BuildSuccess(data, message))
}

// HandleError logs err once and writes the matching error envelope.
func (r *Responder) HandleError(c *gin.Context, err error) {
	status, body := BuildError(err)
	r.logError(c, err)
	c.JSON(status, body)
}

// Abort is HandleError for middleware: the chain stops after the response.
func (r *Responder) Abort(c *gin.Context, err error) {
	status, body := BuildError(err)
	r.logError(c, err)
	c.AbortWithStatusJSON(status, body)
}

// Unauthorized writes the 401 envelope used when no user is attached to the
// request.
func (r *Responder) Unauthorized(c *gin.Context) {
	r.Abort(c, apperrors.Unauthorized(""))
}

func (r *Responder) logError(c *gin.Context, err error) {
	defer func() {
		_ = recover()
	}()

	ctx := context.Background()
	label := "request"
	if c != nil && c.Request != nil {
		ctx = c.Request.Context()
		path := c.FullPath()
		if path == "" && c.Request.URL != nil {
			path = c.Request.URL.Path
		}
		label = c.Request.Method + " " + path
	}
	r.logger.LogError(ctx, label, err)
}

// Package-level helpers use the default responder.

func HandleSuccess(c *gin.Context, data interface{}, message string) {
	Default().HandleSuccess(c, data, message)
}

func HandleError(c *gin.Context, err error) {
	Default().HandleError(c, err)
}
