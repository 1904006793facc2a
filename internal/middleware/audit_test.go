package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GoPolymarket/polyproxy/internal/model"
	"github.com/GoPolymarket/polyproxy/internal/pkg/response"
	"github.com/GoPolymarket/polyproxy/internal/service"
	"github.com/gin-gonic/gin"
)

func TestRedactBodySensitivePath(t *testing.T) {
	body := []byte(`{"email":"a@b.com","token":"123456","nested":{"refresh_token":"abc"}}`)
	out := redactBody("/api/v1/auth/verify", body)

	var data map[string]any
	if err := json.Unmarshal([]byte(out), &data); err != nil {
		t.Fatalf("redacted body is not JSON: %v", err)
	}
	if data["email"] != "a@b.com" {
		t.Fatalf("non-sensitive field was altered: %v", data)
	}
	if data["token"] != "***" {
		t.Fatalf("token not redacted: %v", data)
	}
	nested := data["nested"].(map[string]any)
	if nested["refresh_token"] != "***" {
		t.Fatalf("nested secret not redacted: %v", nested)
	}
}

func TestRedactBodyNonSensitivePathPassthrough(t *testing.T) {
	body := []byte(`{"q":"election"}`)
	if out := redactBody("/api/v1/markets/search", body); out != string(body) {
		t.Fatalf("non-sensitive path must pass through, got %q", out)
	}
}

func TestRedactBodyMalformedJSONOnSensitivePath(t *testing.T) {
	if out := redactBody("/api/v1/polymarket/sign", []byte("not-json")); out != "[redacted]" {
		t.Fatalf("malformed sensitive body must be fully redacted, got %q", out)
	}
}

func TestIsSensitiveKey(t *testing.T) {
	for _, key := range []string{"token", "Access_Token", "SIGNATURE", "poly_builder_passphrase", " secret "} {
		if !isSensitiveKey(key) {
			t.Fatalf("expected %q to be sensitive", key)
		}
	}
	for _, key := range []string{"email", "market", "order_id"} {
		if isSensitiveKey(key) {
			t.Fatalf("expected %q to be safe", key)
		}
	}
}

type chanAuditRepo struct {
	entries chan *model.AuditLog
}

func (r *chanAuditRepo) Insert(_ context.Context, entry *model.AuditLog) error {
	r.entries <- entry
	return nil
}

func TestAuditMiddlewareCapturesRequest(t *testing.T) {
	repo := &chanAuditRepo{entries: make(chan *model.AuditLog, 1)}
	svc, err := service.NewAuditService(t.TempDir(), repo)
	if err != nil {
		t.Fatalf("audit service: %v", err)
	}
	defer svc.Close()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Audit(svc))
	r.POST("/api/v1/auth/verify", func(c *gin.Context) {
		response.Success(c, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/verify",
		strings.NewReader(`{"email":"a@b.com","token":"123456"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	select {
	case entry := <-repo.entries:
		if entry.Method != http.MethodPost || entry.Path != "/api/v1/auth/verify" {
			t.Fatalf("unexpected entry: %+v", entry)
		}
		if entry.StatusCode != http.StatusOK {
			t.Fatalf("expected captured status 200, got %d", entry.StatusCode)
		}
		if strings.Contains(entry.RequestBody, "123456") {
			t.Fatalf("audit entry leaked the OTP: %s", entry.RequestBody)
		}
		if !strings.Contains(entry.ResponseBody, `"success":true`) {
			t.Fatalf("response body not captured: %s", entry.ResponseBody)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("audit entry never drained")
	}
}
