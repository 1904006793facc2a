package response

import (
	"net/http"
	"time"

	"github.com/GoPolymarket/polyproxy/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
)

// Envelope is the uniform wrapper around every response the gateway emits,
// success or error.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
	Meta    Meta       `json:"meta"`
}

type ErrorBody struct {
	Message string         `json:"message"`
	Code    apperrors.Code `json:"code"`
	Details any            `json:"details,omitempty"`
}

type Meta struct {
	Timestamp string `json:"timestamp"`
}

func newMeta() Meta {
	return Meta{Timestamp: time.Now().UTC().Format(time.RFC3339)}
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Meta: newMeta()})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data, Meta: newMeta()})
}

func Error(c *gin.Context, appErr *apperrors.AppError) {
	c.JSON(appErr.HTTPStatus, Envelope{
		Success: false,
		Error: &ErrorBody{
			Message: appErr.Message,
			Code:    appErr.Code,
			Details: appErr.Details,
		},
		Meta: newMeta(),
	})
}
