package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/GoPolymarket/polyproxy/internal/config"
	"github.com/GoPolymarket/polyproxy/internal/model"
	"github.com/GoPolymarket/polyproxy/internal/pkg/response"
	"github.com/GoPolymarket/polyproxy/internal/service"
	"github.com/GoPolymarket/polyproxy/internal/signer"
	"github.com/GoPolymarket/polyproxy/internal/upstream"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: "8080", Env: "development"},
		Auth:      config.AuthConfig{BaseURL: "http://auth.test", AnonKey: "anon", ServiceKey: "service"},
		Chain:     config.ChainConfig{ID: 137},
		RateLimit: config.RateLimitConfig{WindowSeconds: 60, MaxRequests: 120},
	}
}

func newTestRouter(t *testing.T, authURL, gammaURL, clobURL string, creds *signer.BuilderCredentials) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if authURL == "" {
		authURL = "http://127.0.0.1:0"
	}
	if gammaURL == "" {
		gammaURL = "http://127.0.0.1:0"
	}
	if clobURL == "" {
		clobURL = "http://127.0.0.1:0"
	}
	return NewRouter(Deps{
		Config:   testConfig(),
		Auth:     upstream.NewAuthProviderClient(authURL, "anon"),
		Gamma:    upstream.NewGammaClient(gammaURL),
		Clob:     upstream.NewClobClient(clobURL, creds),
		Comments: upstream.NewCommentsClient(gammaURL),
		Signing:  service.NewSigningService(creds),
	})
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	require.NotEmpty(t, env.Meta.Timestamp)
	return env
}

func TestSignInHappyPath(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/otp", r.URL.Path)
		require.Equal(t, "anon", r.Header.Get("apikey"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "trader@example.com", body["email"])
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer provider.Close()

	r := newTestRouter(t, provider.URL, "", "", nil)
	w := doJSON(r, http.MethodPost, "/api/v1/auth/signin", `{"email":"trader@example.com"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decodeEnvelope(t, w)
	require.True(t, env.Success)
	data := env.Data.(map[string]any)
	require.Equal(t, "OTP sent to your email address", data["message"])
	require.Equal(t, "trader@example.com", data["email"])
}

func TestVerifyValidationDetails(t *testing.T) {
	r := newTestRouter(t, "", "", "", nil)
	w := doJSON(r, http.MethodPost, "/api/v1/auth/verify", `{"email":"nope","token":"123"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	require.False(t, env.Success)
	require.Equal(t, "VALIDATION_ERROR", string(env.Error.Code))

	details := env.Error.Details.([]any)
	require.Len(t, details, 2)
	first := details[0].(map[string]any)
	second := details[1].(map[string]any)
	require.Equal(t, "email", first["path"])
	require.Equal(t, "token", second["path"])
}

func TestTrendingUpstreamRateLimitPassthrough(t *testing.T) {
	gamma := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"too many requests"}`))
	}))
	defer gamma.Close()

	r := newTestRouter(t, "", gamma.URL, "", nil)
	w := doJSON(r, http.MethodGet, "/api/v1/markets/trending", "")

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	env := decodeEnvelope(t, w)
	require.Equal(t, "RATE_LIMIT_EXCEEDED", string(env.Error.Code))
}

func TestUnknownRouteEnvelope(t *testing.T) {
	r := newTestRouter(t, "", "", "", nil)
	w := doJSON(r, http.MethodGet, "/unknown/route", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	require.False(t, env.Success)
	require.Equal(t, "NOT_FOUND", string(env.Error.Code))
}

func TestSignEndpoint(t *testing.T) {
	creds := &signer.BuilderCredentials{
		ApiKey:     "bk",
		Secret:     base64.URLEncoding.EncodeToString([]byte("builder-secret")),
		Passphrase: "bp",
	}
	r := newTestRouter(t, "", "", "", creds)

	w := doJSON(r, http.MethodPost, "/api/v1/polymarket/sign",
		`{"method":"post","path":"/order","body":"{\"x\":1}"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decodeEnvelope(t, w)
	data := env.Data.(map[string]any)
	require.Equal(t, "bk", data["POLY_BUILDER_API_KEY"])
	require.NotEmpty(t, data["POLY_BUILDER_SIGNATURE"])
	require.Equal(t, "bp", data["POLY_BUILDER_PASSPHRASE"])

	ts, err := strconv.ParseInt(data["POLY_BUILDER_TIMESTAMP"].(string), 10, 64)
	require.NoError(t, err)
	drift := time.Since(time.UnixMilli(ts))
	require.Less(t, drift.Abs(), 2*time.Second)
}

func TestSignEndpointRejectsBadMethod(t *testing.T) {
	creds := &signer.BuilderCredentials{
		ApiKey:     "bk",
		Secret:     base64.URLEncoding.EncodeToString([]byte("builder-secret")),
		Passphrase: "bp",
	}
	r := newTestRouter(t, "", "", "", creds)

	w := doJSON(r, http.MethodPost, "/api/v1/polymarket/sign", `{"method":"FOO","path":"/order"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	require.Equal(t, "VALIDATION_ERROR", string(env.Error.Code))
}

func TestSignEndpointDisabled(t *testing.T) {
	r := newTestRouter(t, "", "", "", nil)

	w := doJSON(r, http.MethodPost, "/api/v1/polymarket/sign", `{"method":"GET","path":"/book"}`)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	env := decodeEnvelope(t, w)
	require.Equal(t, "SERVICE_UNAVAILABLE", string(env.Error.Code))
}

func TestBuilderInfoWithoutCreds(t *testing.T) {
	r := newTestRouter(t, "", "", "", nil)

	w := doJSON(r, http.MethodGet, "/api/v1/polymarket/builder-info", "")
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	data := env.Data.(map[string]any)
	require.Equal(t, false, data["enabled"])
}

func TestEventsExplicitZeroLimitPassthrough(t *testing.T) {
	var gotQuery string
	gamma := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer gamma.Close()

	r := newTestRouter(t, "", gamma.URL, "", nil)
	w := doJSON(r, http.MethodGet, "/api/v1/markets/events?limit=0", "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Contains(t, gotQuery, "limit=0")
}

func TestProtectedTradingRouteWithoutToken(t *testing.T) {
	upstreamHits := 0
	clob := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		upstreamHits++
		_, _ = w.Write([]byte(`[]`))
	}))
	defer clob.Close()

	r := newTestRouter(t, "", "", clob.URL, nil)
	w := doJSON(r, http.MethodGet, "/api/v1/trading/orders/0x1111111111111111111111111111111111111111", "")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	env := decodeEnvelope(t, w)
	require.Equal(t, "AUTHENTICATION_ERROR", string(env.Error.Code))
	require.Zero(t, upstreamHits, "upstream must never be called without auth")
}

func TestCreateOrderAddressValidation(t *testing.T) {
	auth := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"user-1","email":"trader@example.com"}`))
	}))
	defer auth.Close()

	r := newTestRouter(t, auth.URL, "", "", nil)
	body := `{"order":{"salt":1,"maker":"not-an-address","signer":"0x1111111111111111111111111111111111111111","taker":"0x0000000000000000000000000000000000000000","tokenId":"1","side":"BUY","signature":"0x"},"owner":"k","orderType":"GTC"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trading/order", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	env := decodeEnvelope(t, w)
	require.Equal(t, "VALIDATION_ERROR", string(env.Error.Code))

	details := env.Error.Details.([]any)
	require.Len(t, details, 1)
	first := details[0].(map[string]any)
	require.Equal(t, "order.maker", first["path"])
}

type recordingAuditRepo struct {
	entries chan *model.AuditLog
}

func (r *recordingAuditRepo) Insert(_ context.Context, entry *model.AuditLog) error {
	r.entries <- entry
	return nil
}

func TestAuditRecordsErrorResponses(t *testing.T) {
	repo := &recordingAuditRepo{entries: make(chan *model.AuditLog, 1)}
	auditSvc, err := service.NewAuditService(t.TempDir(), repo)
	require.NoError(t, err)
	defer auditSvc.Close()

	gin.SetMode(gin.TestMode)
	r := NewRouter(Deps{
		Config:   testConfig(),
		Auth:     upstream.NewAuthProviderClient("http://127.0.0.1:0", "anon"),
		Gamma:    upstream.NewGammaClient("http://127.0.0.1:0"),
		Clob:     upstream.NewClobClient("http://127.0.0.1:0", nil),
		Comments: upstream.NewCommentsClient("http://127.0.0.1:0"),
		Signing:  service.NewSigningService(nil),
		Audit:    auditSvc,
	})

	w := doJSON(r, http.MethodPost, "/api/v1/auth/verify", `{"email":"nope","token":"1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	select {
	case entry := <-repo.entries:
		require.Equal(t, http.StatusBadRequest, entry.StatusCode)
		require.Contains(t, entry.ResponseBody, "VALIDATION_ERROR")
	case <-time.After(2 * time.Second):
		t.Fatal("audit entry never drained")
	}
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t, "", "", "", nil)
	w := doJSON(r, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	require.True(t, env.Success)
	data := env.Data.(map[string]any)
	require.Equal(t, "ok", data["status"])
}
