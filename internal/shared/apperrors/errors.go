package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the HTTP layer. It is chosen where the error
// is created and never derived from the message text.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindRateLimited
	KindNotImplemented
)

type kindInfo struct {
	code           string
	status         int
	defaultMessage string
}

var kindTable = map[Kind]kindInfo{
	KindInternal:       {"SERVER_ERROR", http.StatusInternalServerError, "服务器内部错误"},
	KindValidation:     {"VALIDATION_ERROR", http.StatusBadRequest, "请求参数验证失败"},
	KindUnauthorized:   {"UNAUTHORIZED", http.StatusUnauthorized, "未授权访问"},
	KindForbidden:      {"FORBIDDEN", http.StatusForbidden, "权限不足"},
	KindNotFound:       {"NOT_FOUND", http.StatusNotFound, "资源不存在"},
	KindConflict:       {"CONFLICT", http.StatusConflict, "资源已存在"},
	KindRateLimited:    {"RATE_LIMITED", http.StatusTooManyRequests, "请求过于频繁"},
	KindNotImplemented: {"NOT_IMPLEMENTED", http.StatusNotImplemented, "功能暂未实现"},
}

func (k Kind) info() kindInfo {
	if info, ok := kindTable[k]; ok {
		return info
	}
	return kindTable[KindInternal]
}

// String returns the stable machine code sent in the "error" field.
func (k Kind) String() string { return k.info().code }

// StatusCode returns the HTTP status for the kind.
func (k Kind) StatusCode() int { return k.info().status }

// DefaultMessage is used when the error carries no message of its own.
func (k Kind) DefaultMessage() string { return k.info().defaultMessage }

// Error is an application error tagged with a Kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" {
		msg = e.Kind.DefaultMessage()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New builds a tagged error.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap tags an underlying error. The underlying error is kept for logging and
// errors.Is/As but never reaches the client.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error { return New(KindValidation, message) }

func Validationf(format string, args ...interface{}) *Error {
	return New(KindValidation, fmt.Sprintf(format, args...))
}

func Unauthorized(message string) *Error   { return New(KindUnauthorized, message) }
func Forbidden(message string) *Error      { return New(KindForbidden, message) }
func NotFound(message string) *Error       { return New(KindNotFound, message) }
func Conflict(message string) *Error       { return New(KindConflict, message) }
func RateLimited(message string) *Error    { return New(KindRateLimited, message) }
func NotImplemented(message string) *Error { return New(KindNotImplemented, message) }

// Internal wraps an unexpected failure with a client-safe message.
func Internal(message string, err error) *Error {
	return Wrap(KindInternal, message, err)
}

// KindOf returns the kind of the first tagged error in the chain, or
// KindInternal for nil and untagged errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) && appErr != nil {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err is tagged with kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr != nil && appErr.Kind == kind
}

// MessageOf returns the client-facing message for err. Tagged errors expose
// only their own Message; untagged errors expose err.Error(). Empty messages
// fall back to the kind's default.
func MessageOf(err error) string {
	if err == nil {
		return KindInternal.DefaultMessage()
	}

	var appErr *Error
	if errors.As(err, &appErr) && appErr != nil {
		if appErr.Message != "" {
			return appErr.Message
		}
		return appErr.Kind.DefaultMessage()
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return KindInternal.DefaultMessage()
}

// FromPanic converts a recovered panic value into an error. Non-error values
// become untagged errors so they classify as internal.
func FromPanic(v interface{}) error {
	switch val := v.(type) {
	case nil:
		return nil
	case error:
		return val
	case string:
		return errors.New(val)
	default:
		return fmt.Errorf("%v", val)
	}
}
