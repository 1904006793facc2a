package handler

import (
	"github.com/GoPolymarket/polyproxy/internal/middleware"
	"github.com/GoPolymarket/polyproxy/internal/model"
	"github.com/GoPolymarket/polyproxy/internal/pkg/apperrors"
	"github.com/GoPolymarket/polyproxy/internal/pkg/response"
	"github.com/GoPolymarket/polyproxy/internal/pkg/validate"
	"github.com/GoPolymarket/polyproxy/internal/upstream"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	provider *upstream.AuthProviderClient
}

func NewAuthHandler(provider *upstream.AuthProviderClient) *AuthHandler {
	return &AuthHandler{provider: provider}
}

// SignIn triggers an OTP email for the given address.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req model.SignInRequest
	if appErr := validate.BindJSON(c, &req); appErr != nil {
		fail(c, appErr)
		return
	}

	if err := h.provider.SendOTP(c.Request.Context(), req.Email); err != nil {
		fail(c, err)
		return
	}

	response.Success(c, gin.H{
		"message": "OTP sent to your email address",
		"email":   req.Email,
	})
}

// Verify exchanges the emailed code for a session.
func (h *AuthHandler) Verify(c *gin.Context) {
	var req model.VerifyRequest
	if appErr := validate.BindJSON(c, &req); appErr != nil {
		fail(c, appErr)
		return
	}

	session, err := h.provider.VerifyOTP(c.Request.Context(), req.Email, req.Token)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, gin.H{
		"user":          session.User,
		"access_token":  session.AccessToken,
		"token_type":    session.TokenType,
		"expires_in":    session.ExpiresIn,
		"refresh_token": session.RefreshToken,
	})
}

// Me returns the identity the auth gate resolved for this request.
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		fail(c, apperrors.NewAuthentication("missing identity"))
		return
	}
	response.Success(c, gin.H{"user": identity})
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	token, ok := middleware.TokenFrom(c)
	if !ok {
		fail(c, apperrors.NewAuthentication("missing identity"))
		return
	}

	if err := h.provider.SignOut(c.Request.Context(), token); err != nil {
		fail(c, err)
		return
	}

	response.Success(c, gin.H{"message": "Signed out successfully"})
}
