package handler

import (
	"strconv"

	"github.com/GoPolymarket/polyproxy/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
)

const (
	defaultLimit  = 50
	defaultOffset = 0
)

// intQuery returns the parsed query value, or def when the parameter is
// absent. An explicitly supplied value is passed through as-is, zero
// included.
func intQuery(c *gin.Context, name string, def int) (*int, *apperrors.AppError) {
	raw := c.Query(name)
	if raw == "" {
		v := def
		return &v, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return nil, apperrors.NewValidation(name+" must be a non-negative integer", nil)
	}
	return &v, nil
}

// optionalIntQuery leaves the parameter unset when absent.
func optionalIntQuery(c *gin.Context, name string) (*int, *apperrors.AppError) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return nil, apperrors.NewValidation(name+" must be a non-negative integer", nil)
	}
	return &v, nil
}

// boolQuery is tri-state: only the literal strings "true" and "false" count,
// anything else is treated as absent so the upstream default applies.
func boolQuery(c *gin.Context, name string) *bool {
	switch c.Query(name) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
}

func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
