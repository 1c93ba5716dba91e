package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/infra/middleware/internal/pathutil"
	"github.com/kart-io/atlas/pkg/security/auth"
)

// AuthConfig configures the authentication middleware.
// 认证器是运行时依赖，不进入配置结构。
type AuthConfig struct {
	// TokenLookup 指定 token 的提取位置，格式 "<source>:<name>"。
	// 支持 header:Authorization、query:token、cookie:jwt。
	// Default: "header:Authorization"
	TokenLookup string

	// AuthScheme is the header scheme stripped from the token.
	// Default: "Bearer"
	AuthScheme string

	// SkipPaths lists exact paths that bypass authentication.
	SkipPaths []string

	// SkipPathPrefixes lists path prefixes that bypass authentication.
	SkipPathPrefixes []string
}

// NewAuthConfig returns an AuthConfig with defaults.
func NewAuthConfig() AuthConfig {
	return AuthConfig{
		TokenLookup: "header:Authorization",
		AuthScheme:  "Bearer",
	}
}

// Auth 返回一个认证中间件。
//
// 提取请求中的 token，通过 authenticator 验证后把 Claims 注入请求
// context，供下游 handler 经 auth.ClaimsFromContext 读取。验证失败
// 返回统一错误响应，并记录包含 token 前缀的安全审计日志。
func Auth(cfg AuthConfig, authenticator auth.Authenticator) gin.HandlerFunc {
	if cfg.TokenLookup == "" {
		cfg.TokenLookup = "header:Authorization"
	}
	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}
	lookup := parseTokenLookup(cfg.TokenLookup)
	skip := pathutil.NewPathMatcher(cfg.SkipPaths, cfg.SkipPathPrefixes)

	return func(c *gin.Context) {
		if skip(c.Request.URL.Path) {
			c.Next()
			return
		}

		if authenticator == nil {
			abortWithError(c, errors.ErrInternal.WithMessage("authenticator not configured"))
			return
		}

		tokenString := extractToken(c, lookup, cfg.AuthScheme)
		if tokenString == "" {
			abortWithError(c, errors.ErrUnauthorized.WithMessage("missing authentication token"))
			return
		}

		claims, err := authenticator.Verify(c.Request.Context(), tokenString)
		if err != nil {
			logAuthFailure(c, tokenString, err)
			abortWithError(c, err)
			return
		}

		c.Request = c.Request.WithContext(
			auth.InjectAuth(c.Request.Context(), claims, tokenString))

		c.Next()
	}
}

// tokenLookup represents a token extraction method.
type tokenLookup struct {
	source string // "header", "query", "cookie"
	name   string // name of the header/query/cookie
}

// parseTokenLookup parses the token lookup string.
func parseTokenLookup(lookup string) tokenLookup {
	parts := strings.SplitN(lookup, ":", 2)
	if len(parts) != 2 {
		return tokenLookup{source: "header", name: "Authorization"}
	}
	return tokenLookup{source: parts[0], name: parts[1]}
}

// extractToken extracts the token from the request.
func extractToken(c *gin.Context, lookup tokenLookup, scheme string) string {
	var token string

	switch lookup.source {
	case "header":
		token = c.GetHeader(lookup.name)
		if scheme != "" && strings.HasPrefix(token, scheme+" ") {
			token = strings.TrimPrefix(token, scheme+" ")
		}
	case "query":
		token = c.Query(lookup.name)
	case "cookie":
		if cookie, err := c.Request.Cookie(lookup.name); err == nil {
			token = cookie.Value
		}
	}

	return strings.TrimSpace(token)
}

// logAuthFailure records authentication failures for security audit.
// Only the token prefix is logged to avoid leaking the full credential.
func logAuthFailure(c *gin.Context, token string, err error) {
	req := c.Request
	if req == nil {
		return
	}

	tokenPrefix := token
	if len(token) > 20 {
		tokenPrefix = token[:20] + "..."
	}

	logger.Warnw("authentication failed",
		"error", err.Error(),
		"remote_addr", c.ClientIP(),
		"token_prefix", tokenPrefix,
		"path", req.URL.Path,
		"method", req.Method,
		"user_agent", req.UserAgent(),
		"request_id", GetRequestID(c),
	)
}
