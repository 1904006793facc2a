package middleware

import (
	"errors"

	"github.com/GoPolymarket/polyproxy/internal/pkg/apperrors"
	"github.com/GoPolymarket/polyproxy/internal/pkg/logger"
	"github.com/GoPolymarket/polyproxy/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// ErrorHandler is the terminal error middleware: anything pushed onto
// c.Errors comes out as the uniform error envelope. Real error text on 5xx
// responses is masked in production.
func ErrorHandler(env string) gin.HandlerFunc {
	production := env == "production"
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			appErr = apperrors.New(apperrors.CodeInternal, err.Error(), err)
		}

		logFields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"code", appErr.Code,
			"status", appErr.HTTPStatus,
			"client_ip", c.ClientIP(),
		}

		if appErr.HTTPStatus >= 500 {
			logger.LogError(c.Request.Context(), appErr, "request failed", logFields...)
			if production {
				appErr = &apperrors.AppError{
					Code:       appErr.Code,
					Message:    "internal error",
					HTTPStatus: appErr.HTTPStatus,
				}
			}
		} else {
			logger.Warn(appErr.Message, logFields...)
		}

		response.Error(c, appErr)
	}
}

// NotFoundHandler answers unmatched routes with the same envelope shape.
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Error(c, apperrors.NewNotFound("route not found: "+c.Request.URL.Path))
	}
}
