package handler

import (
	"github.com/GoPolymarket/polyproxy/internal/model"
	"github.com/GoPolymarket/polyproxy/internal/pkg/response"
	"github.com/GoPolymarket/polyproxy/internal/pkg/validate"
	"github.com/GoPolymarket/polyproxy/internal/service"
	"github.com/gin-gonic/gin"
)

type BuilderHandler struct {
	signing *service.SigningService
}

func NewBuilderHandler(signing *service.SigningService) *BuilderHandler {
	return &BuilderHandler{signing: signing}
}

// Sign returns builder attribution headers for an upstream trading call.
func (h *BuilderHandler) Sign(c *gin.Context) {
	var req model.SignRequest
	if appErr := validate.BindJSON(c, &req); appErr != nil {
		fail(c, appErr)
		return
	}

	result, err := h.signing.Sign(req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, result)
}

func (h *BuilderHandler) BuilderInfo(c *gin.Context) {
	response.Success(c, h.signing.BuilderInfo())
}
