package model

import "time"

// Identity is the resolved representation of an authenticated caller,
// derived per-request from validating a bearer token with the auth provider.
type Identity struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	LastSignInAt *time.Time `json:"last_sign_in_at,omitempty"`
}

// Session is what the auth provider returns on a successful OTP
// verification.
type Session struct {
	AccessToken  string   `json:"access_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int64    `json:"expires_in"`
	RefreshToken string   `json:"refresh_token,omitempty"`
	User         Identity `json:"user"`
}
