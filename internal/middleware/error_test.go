package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GoPolymarket/polyproxy/internal/pkg/apperrors"
	"github.com/GoPolymarket/polyproxy/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

func errorTestRouter(env string, h gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler(env))
	r.GET("/boom", h)
	return r
}

func serveError(t *testing.T, env string, h gin.HandlerFunc) (*httptest.ResponseRecorder, response.Envelope) {
	t.Helper()
	r := errorTestRouter(env, h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	var envlp response.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &envlp); err != nil {
		t.Fatalf("response is not an envelope: %v (%s)", err, w.Body.String())
	}
	return w, envlp
}

func TestErrorHandlerAppError(t *testing.T) {
	w, env := serveError(t, "development", func(c *gin.Context) {
		_ = c.Error(apperrors.NewNotFound("market not found"))
		c.Abort()
	})

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if env.Success || env.Error == nil || env.Error.Code != apperrors.CodeNotFound {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if env.Error.Message != "market not found" {
		t.Fatalf("message altered: %q", env.Error.Message)
	}
}

func TestErrorHandlerWrapsPlainError(t *testing.T) {
	w, env := serveError(t, "development", func(c *gin.Context) {
		_ = c.Error(errors.New("something broke"))
		c.Abort()
	})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if env.Error.Code != apperrors.CodeInternal {
		t.Fatalf("expected INTERNAL_ERROR, got %s", env.Error.Code)
	}
}

func TestErrorHandlerMasksServerErrorsInProduction(t *testing.T) {
	_, env := serveError(t, "production", func(c *gin.Context) {
		_ = c.Error(errors.New("postgres password is hunter2"))
		c.Abort()
	})

	if env.Error.Message != "internal error" {
		t.Fatalf("5xx detail leaked in production: %q", env.Error.Message)
	}
}

func TestErrorHandlerKeepsClientErrorsInProduction(t *testing.T) {
	w, env := serveError(t, "production", func(c *gin.Context) {
		_ = c.Error(apperrors.NewValidation("limit must be a non-negative integer", nil))
		c.Abort()
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if env.Error.Message != "limit must be a non-negative integer" {
		t.Fatalf("4xx message must pass through, got %q", env.Error.Message)
	}
}

func TestNotFoundHandlerEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.NoRoute(NotFoundHandler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var env response.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v", err)
	}
	if env.Error == nil || env.Error.Code != apperrors.CodeNotFound {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}
