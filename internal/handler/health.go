package handler

import (
	"github.com/GoPolymarket/polyproxy/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

// Health reports process liveness plus environment metadata. No auth.
func Health(env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, gin.H{
			"status":      "ok",
			"service":     "polyproxy",
			"environment": env,
			"version":     Version,
		})
	}
}
