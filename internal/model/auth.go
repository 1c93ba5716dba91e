// Package model defines the data models for the console.
package model

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginResponse represents the login response body.
type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int64    `json:"expires_in"`
	ExpiresAt   int64    `json:"expires_at"`
	UserID      uint64   `json:"user_id"`
	Username    string   `json:"username"`
	Roles       []string `json:"roles"`
	Superuser   bool     `json:"superuser"`
}

// RefreshResponse represents the token refresh response body.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	ExpiresAt   int64  `json:"expires_at"`
}

// VerifyRequest asks whether the session holds the given permissions.
type VerifyRequest struct {
	Codes []string `json:"codes" validate:"required,min=1"`
	Mode  string   `json:"mode" validate:"omitempty,oneof=all any exact"`
}

// VerifyResponse reports the outcome of a permission check.
type VerifyResponse struct {
	Allowed bool `json:"allowed"`
}
