package upstream

import (
	"context"

	"github.com/GoPolymarket/polyproxy/internal/model"
	"github.com/GoPolymarket/polyproxy/internal/pkg/apperrors"
	"github.com/go-resty/resty/v2"
)

const upstreamAuth = "auth-provider"

// AuthProviderClient wraps the hosted auth provider's REST surface
// (magic-link / email OTP auth). The anon key rides along on every call;
// the caller's bearer token authenticates user-scoped operations.
type AuthProviderClient struct {
	http    *resty.Client
	anonKey string
}

func NewAuthProviderClient(baseURL, anonKey string) *AuthProviderClient {
	client := newClient(baseURL, authTimeout).
		SetHeader("apikey", anonKey)
	return &AuthProviderClient{http: client, anonKey: anonKey}
}

// SendOTP asks the provider to dispatch a one-time code to the address.
func (c *AuthProviderClient) SendOTP(ctx context.Context, email string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"email": email, "create_user": true}).
		Post("/otp")
	if appErr := translate(upstreamAuth, resp, err); appErr != nil {
		return appErr
	}
	return nil
}

// VerifyOTP exchanges an emailed code for a session.
func (c *AuthProviderClient) VerifyOTP(ctx context.Context, email, token string) (*model.Session, error) {
	var session model.Session
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"type": "email", "email": email, "token": token}).
		SetResult(&session).
		Post("/verify")
	if appErr := translate(upstreamAuth, resp, err); appErr != nil {
		return nil, appErr
	}
	if session.AccessToken == "" {
		return nil, apperrors.NewAuthentication("invalid or expired token")
	}
	return &session, nil
}

// GetUser resolves a bearer token to the identity it belongs to. Provider
// rejection means the token is invalid.
func (c *AuthProviderClient) GetUser(ctx context.Context, accessToken string) (*model.Identity, error) {
	var identity model.Identity
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&identity).
		Get("/user")
	if appErr := translate(upstreamAuth, resp, err); appErr != nil {
		return nil, appErr
	}
	if identity.ID == "" {
		return nil, apperrors.NewAuthentication("invalid or expired token")
	}
	return &identity, nil
}

// SignOut revokes the session behind the token. Provider-side failure is
// surfaced so the caller knows the token may still be live.
func (c *AuthProviderClient) SignOut(ctx context.Context, accessToken string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		Post("/logout")
	if appErr := translate(upstreamAuth, resp, err); appErr != nil {
		return appErr
	}
	return nil
}
