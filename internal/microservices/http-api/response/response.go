// Package response is the single place that writes the {code, data, msg}
// envelope. Handlers and middleware hand it results and errors; nothing
// below the HTTP boundary touches the transport.
package response

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"bloghub/internal/apperror"
	"bloghub/internal/microservices/http-api/dto"
)

const (
	MsgSuccess       = "success"
	MsgInternalError = "internal server error"
	MsgInvalidToken  = "invalid or expired token"
	MsgInvalidInput  = "invalid request"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

var registerOnce sync.Once

// RegisterValidatorTagNames makes validation errors report json (or form)
// field names instead of Go struct field names.
func RegisterValidatorTagNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	})
}

// JSON writes an envelope with the given status.
func JSON(c *gin.Context, status int, data any, msg string) {
	if data == nil {
		data = dto.Empty{}
	}
	c.JSON(status, dto.Envelope{Code: status, Data: data, Msg: msg})
}

func OK(c *gin.Context, data any, msg string) {
	JSON(c, http.StatusOK, data, msg)
}

func Created(c *gin.Context, data any, msg string) {
	JSON(c, http.StatusCreated, data, msg)
}

// Error converts err into an envelope. Typed errors keep their status and
// public message; anything else is logged and reported as a generic 500.
func Error(c *gin.Context, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		appErr = apperror.NewInternal(MsgInternalError, err)
	}

	status := appErr.StatusCode()
	switch appErr.Kind {
	case apperror.Internal:
		slog.Error("internal_error",
			"request_id", c.GetString(RequestIDKey),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		JSON(c, status, nil, MsgInternalError)
	case apperror.Malformed, apperror.InvalidSignature, apperror.Expired:
		// token verification detail never reaches the caller
		JSON(c, status, nil, MsgInvalidToken)
	case apperror.Validation:
		var data any
		if len(appErr.Fields) > 0 {
			data = gin.H{"fields": appErr.Fields}
		}
		JSON(c, status, data, appErr.Message)
	default:
		JSON(c, status, nil, appErr.Message)
	}
}

// Abort writes the error envelope and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// BindError reports a request binding failure as 422 with per-field detail.
func BindError(c *gin.Context, err error) {
	Error(c, ValidationFromBinding(err))
}

// ValidationFromBinding converts a gin binding error into a Validation error.
func ValidationFromBinding(err error) *apperror.Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.NewValidation(MsgInvalidInput, map[string]string{"body": "malformed request"})
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = describe(fe)
	}
	return apperror.NewValidation(MsgInvalidInput, fields)
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must be a date formatted as " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// Recovery turns a panic into the generic 500 envelope.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic_recovered",
			"request_id", c.GetString(RequestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		JSON(c, http.StatusInternalServerError, nil, MsgInternalError)
		c.Abort()
	})
}

// NoRoute answers unknown paths with a 404 envelope.
func NoRoute(c *gin.Context) {
	JSON(c, http.StatusNotFound, nil, "route not found")
}
