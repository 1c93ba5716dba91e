// Package auth provides authentication interfaces and context propagation
// for Atlas services.
//
// The authentication flow:
//  1. Client provides credentials (username/password)
//  2. The business layer validates credentials and calls Authenticator.Sign()
//  3. The returned token is included in subsequent requests
//  4. Authenticator.Verify() validates the token and extracts claims
//  5. Claims are injected into request context for use by handlers
//
// Handlers never parse tokens directly: they read identity from the request
// context via ClaimsFromContext and friends.
package auth

import (
	"context"
	"time"
)

// ExtraSessionID is the extra-claim key carrying the server-side session ID.
// 签发时写入，刷新 token 时随 Extra 一起保留，保证同一会话跨 token 存活。
const ExtraSessionID = "sid"

// Authenticator defines the authentication interface.
// All authentication providers must implement this interface.
type Authenticator interface {
	// Sign creates a new token for the given subject (usually user ID).
	Sign(ctx context.Context, subject string, opts ...SignOption) (Token, error)

	// Verify validates the token and returns the claims.
	// Returns an error if the token is invalid, expired, or revoked.
	Verify(ctx context.Context, tokenString string) (*Claims, error)

	// Refresh creates a new token using a valid existing token.
	// The original token's claims are preserved, but expiration is extended.
	Refresh(ctx context.Context, tokenString string) (Token, error)

	// Revoke invalidates the given token.
	// After revocation, the token will fail verification.
	Revoke(ctx context.Context, tokenString string) error
}

// Token represents an authentication token with metadata.
type Token interface {
	// GetAccessToken returns the access token string.
	GetAccessToken() string

	// GetTokenType returns the token type (e.g., "Bearer").
	GetTokenType() string

	// GetExpiresAt returns the token expiration timestamp (Unix seconds).
	GetExpiresAt() int64

	// GetExpiresIn returns the duration until expiration in seconds.
	GetExpiresIn() int64
}

// Claims represents the authentication claims extracted from a token.
type Claims struct {
	// Subject is the principal that is the subject of the token (user ID).
	Subject string `json:"sub"`

	// Issuer is the token issuer.
	Issuer string `json:"iss,omitempty"`

	// Audience is the intended audience.
	Audience []string `json:"aud,omitempty"`

	// ExpiresAt is the expiration time (Unix timestamp).
	ExpiresAt int64 `json:"exp,omitempty"`

	// IssuedAt is the time when the token was issued (Unix timestamp).
	IssuedAt int64 `json:"iat,omitempty"`

	// NotBefore is the time before which the token is not valid (Unix timestamp).
	NotBefore int64 `json:"nbf,omitempty"`

	// ID is the unique identifier for the token.
	ID string `json:"jti,omitempty"`

	// Extra contains additional custom claims.
	Extra map[string]interface{} `json:"extra,omitempty"`
}

// Valid checks if the claims are valid (not expired, not before).
func (c *Claims) Valid() bool {
	now := time.Now().Unix()
	if c.ExpiresAt > 0 && now > c.ExpiresAt {
		return false
	}
	if c.NotBefore > 0 && now < c.NotBefore {
		return false
	}
	return true
}

// IsExpired returns true if the token has expired.
func (c *Claims) IsExpired() bool {
	if c.ExpiresAt == 0 {
		return false
	}
	return time.Now().Unix() > c.ExpiresAt
}

// GetExtra returns a custom claim value.
func (c *Claims) GetExtra(key string) (interface{}, bool) {
	if c.Extra == nil {
		return nil, false
	}
	v, ok := c.Extra[key]
	return v, ok
}

// GetExtraString returns a custom claim as string.
func (c *Claims) GetExtraString(key string) string {
	if v, ok := c.GetExtra(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// SessionID returns the server-side session ID carried by the token,
// or empty string if the token was signed without one.
func (c *Claims) SessionID() string {
	return c.GetExtraString(ExtraSessionID)
}

// SignOption is a functional option for signing tokens.
type SignOption func(*SignOptions)

// SignOptions contains options for token signing.
type SignOptions struct {
	// ExpiresAt overrides the default expiration time.
	ExpiresAt *time.Time

	// Extra contains additional claims to include in the token.
	Extra map[string]interface{}

	// Audience overrides the default audience.
	Audience []string

	// TokenID sets a custom token ID.
	TokenID string
}

// WithExpiresAt sets custom expiration time.
func WithExpiresAt(t time.Time) SignOption {
	return func(o *SignOptions) {
		o.ExpiresAt = &t
	}
}

// WithExtra sets additional claims.
func WithExtra(extra map[string]interface{}) SignOption {
	return func(o *SignOptions) {
		o.Extra = extra
	}
}

// WithSessionID attaches the server-side session ID as an extra claim.
func WithSessionID(sid string) SignOption {
	return func(o *SignOptions) {
		if o.Extra == nil {
			o.Extra = make(map[string]interface{}, 1)
		}
		o.Extra[ExtraSessionID] = sid
	}
}

// WithAudience sets the token audience.
func WithAudience(aud ...string) SignOption {
	return func(o *SignOptions) {
		o.Audience = aud
	}
}

// WithTokenID sets a custom token ID.
func WithTokenID(id string) SignOption {
	return func(o *SignOptions) {
		o.TokenID = id
	}
}

// BaseToken is a basic Token implementation.
type BaseToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
	ExpiresIn   int64  `json:"expires_in"`
}

// GetAccessToken returns the access token.
func (t *BaseToken) GetAccessToken() string {
	return t.AccessToken
}

// GetTokenType returns the token type.
func (t *BaseToken) GetTokenType() string {
	return t.TokenType
}

// GetExpiresAt returns the expiration timestamp.
func (t *BaseToken) GetExpiresAt() int64 {
	return t.ExpiresAt
}

// GetExpiresIn returns the duration until expiration.
func (t *BaseToken) GetExpiresIn() int64 {
	return t.ExpiresIn
}
