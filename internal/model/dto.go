package model

// Request DTOs. Binding tags drive the declarative per-route validation;
// violations surface as field-level details in the 400 envelope.

type SignInRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required,min=6"`
}

// SignRequest asks the gateway to produce builder attribution headers for an
// upstream trading call. Body, when present, must be valid JSON text.
type SignRequest struct {
	Method string `json:"method" binding:"required"`
	Path   string `json:"path" binding:"required,startswith=/"`
	Body   string `json:"body"`
}

// SignResponse carries the attribution header set back to the caller. Header
// names match what the trading API expects verbatim.
type SignResponse struct {
	ApiKey     string `json:"POLY_BUILDER_API_KEY"`
	Signature  string `json:"POLY_BUILDER_SIGNATURE"`
	Timestamp  string `json:"POLY_BUILDER_TIMESTAMP"`
	Passphrase string `json:"POLY_BUILDER_PASSPHRASE"`
}

// BuilderInfo describes the signing feature without leaking credentials.
type BuilderInfo struct {
	Enabled bool   `json:"enabled"`
	ApiKey  string `json:"api_key,omitempty"`
}

type CreateOrderRequest struct {
	Order     SignedOrder `json:"order" binding:"required"`
	Owner     string      `json:"owner" binding:"required"`
	OrderType string      `json:"orderType" binding:"omitempty,oneof=GTC GTD FOK FAK"`
}

type CancelOrderRequest struct {
	OrderID string `json:"orderID" binding:"required"`
}
