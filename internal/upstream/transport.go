package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/GoPolymarket/polyproxy/internal/pkg/apperrors"
	"github.com/GoPolymarket/polyproxy/internal/pkg/metrics"
	"github.com/go-resty/resty/v2"
)

const (
	marketTimeout   = 15 * time.Second
	tradingTimeout  = 15 * time.Second
	commentsTimeout = 10 * time.Second
	authTimeout     = 10 * time.Second
)

// newClient builds the pre-configured HTTP client every upstream wrapper
// shares: fixed base URL, fixed timeout, one attempt per call.
func newClient(baseURL string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "polyproxy/1.0")
}

// translate maps one upstream outcome onto the gateway error taxonomy and
// records the call metric. A nil return means the call succeeded.
func translate(upstream string, resp *resty.Response, err error) *apperrors.AppError {
	appErr := translateOutcome(upstream, resp, err)
	outcome := "ok"
	if appErr != nil {
		outcome = string(appErr.Code)
	}
	metrics.UpstreamCalls.WithLabelValues(upstream, outcome).Inc()
	return appErr
}

func translateOutcome(upstream string, resp *resty.Response, err error) *apperrors.AppError {
	if err != nil {
		if isTimeout(err) {
			return apperrors.NewTimeout(fmt.Sprintf("%s request timed out", upstream))
		}
		return apperrors.NewUnavailable(fmt.Sprintf("%s is unreachable", upstream))
	}
	if resp == nil {
		return apperrors.NewUnavailable(fmt.Sprintf("%s is unreachable", upstream))
	}
	if !resp.IsError() {
		return nil
	}

	msg := upstreamMessage(resp)
	switch status := resp.StatusCode(); status {
	case http.StatusBadRequest:
		return apperrors.NewValidation(msg, nil)
	case http.StatusUnauthorized:
		return apperrors.NewAuthentication(msg)
	case http.StatusForbidden:
		return apperrors.New(apperrors.CodeAuthorization, msg, nil)
	case http.StatusNotFound:
		return apperrors.NewNotFound(msg)
	case http.StatusTooManyRequests:
		return apperrors.New(apperrors.CodeRateLimit, msg, nil)
	case http.StatusServiceUnavailable:
		return apperrors.NewUnavailable(msg)
	default:
		return apperrors.NewUpstream(status, msg)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// upstreamMessage digs a human-readable message out of an upstream error
// body, falling back to the HTTP status text.
func upstreamMessage(resp *resty.Response) string {
	var body struct {
		Error     string `json:"error"`
		Message   string `json:"message"`
		ErrorMsg  string `json:"errorMsg"`
		ErrorDesc string `json:"error_description"`
		Msg       string `json:"msg"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		for _, m := range []string{body.Error, body.Message, body.ErrorMsg, body.ErrorDesc, body.Msg} {
			if m != "" {
				return m
			}
		}
	}
	return fmt.Sprintf("upstream returned %s", http.StatusText(resp.StatusCode()))
}
