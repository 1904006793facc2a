package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/GoPolymarket/polyproxy/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError is one entry in the details list of a 400 response, ordered the
// way the violations were reported.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// BindJSON binds the request body into obj and converts any binding or
// validation failure into a VALIDATION_ERROR with per-field details. The
// handler must not proceed when an error is returned.
func BindJSON(c *gin.Context, obj any) *apperrors.AppError {
	if err := c.ShouldBindJSON(obj); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apperrors.NewValidation("request validation failed", fieldErrors(obj, verrs))
		}
		return apperrors.NewValidation("invalid request body", nil)
	}
	return nil
}

func fieldErrors(obj any, verrs validator.ValidationErrors) []FieldError {
	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Path:    jsonFieldName(obj, fe.StructField()),
			Message: describe(fe),
		})
	}
	return details
}

// jsonFieldName resolves the struct field back to its json tag so callers see
// the wire name, not the Go name.
func jsonFieldName(obj any, structField string) string {
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return strings.ToLower(structField)
	}
	if f, ok := t.FieldByName(structField); ok {
		tag := f.Tag.Get("json")
		if name, _, _ := strings.Cut(tag, ","); name != "" && name != "-" {
			return name
		}
	}
	return strings.ToLower(structField)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.Join(strings.Fields(fe.Param()), ", "))
	case "startswith":
		return fmt.Sprintf("must start with %q", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// Engine returns gin's underlying validator so callers can register custom
// rules at startup.
func Engine() (*validator.Validate, bool) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	return v, ok
}
