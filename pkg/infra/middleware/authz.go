package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/infra/middleware/internal/pathutil"
	"github.com/kart-io/atlas/pkg/security/auth"
	"github.com/kart-io/atlas/pkg/security/authz"
	"github.com/kart-io/atlas/pkg/security/session"
)

// ginKeySession is the key used to store the resolved session in the gin context.
const ginKeySession = "middleware:session"

// AuthzConfig configures the API permission middleware.
type AuthzConfig struct {
	// SkipPaths lists exact paths that bypass permission checks.
	SkipPaths []string

	// SkipPathPrefixes lists path prefixes that bypass permission checks.
	SkipPathPrefixes []string

	// ResolveOnlyPaths lists exact paths where the session is resolved
	// and injected but the route permission check is skipped. 登出、权限
	// 码、导航这类自助接口已认证即可访问，走这一档。
	ResolveOnlyPaths []string

	// ResolveOnlyPathPrefixes lists path prefixes treated the same way.
	ResolveOnlyPathPrefixes []string

	// Mode is the evaluation mode: all、any 或 exact，默认 all。
	Mode string
}

// Authz 返回一个接口权限中间件，必须安装在 Auth 之后。
//
// 每个请求的路由模板（gin 的 /menus/:id 形式）被归一化为权限描述符
// "METHOD /menus/{id}"，交给调用者的会话上下文评估。超级账号直接放行，
// 权限数据走会话内 TTL 缓存，不命中时回源并按需重建。
//
// 解析到的会话同时写入 gin 上下文，下游 handler 通过 GetSession 获取，
// 避免二次查找。ResolveOnly 路径只做会话解析，不做权限评估。
func Authz(cfg AuthzConfig, sessions *session.Manager) gin.HandlerFunc {
	skip := pathutil.NewPathMatcher(cfg.SkipPaths, cfg.SkipPathPrefixes)
	resolveOnly := pathutil.NewPathMatcher(cfg.ResolveOnlyPaths, cfg.ResolveOnlyPathPrefixes)
	mode := authz.ParseMode(cfg.Mode)

	return func(c *gin.Context) {
		if skip(c.Request.URL.Path) {
			c.Next()
			return
		}

		if sessions == nil {
			abortWithError(c, errors.ErrInternal.WithMessage("session manager not configured"))
			return
		}

		claims := auth.ClaimsFromContext(c.Request.Context())
		if claims == nil {
			abortWithError(c, errors.ErrUnauthorized.WithMessage("no authenticated identity"))
			return
		}

		sid := claims.SessionID()
		if sid == "" {
			abortWithError(c, errors.ErrUnauthorized.WithMessage("token carries no session"))
			return
		}

		sess, ok := sessions.Get(sid)
		if !ok {
			// 会话已被登出或过期清理，token 即使未过期也不再有效。
			abortWithError(c, errors.ErrSessionNotFound)
			return
		}
		c.Set(ginKeySession, sess)

		if resolveOnly(c.Request.URL.Path) {
			c.Next()
			return
		}

		required := routeDescriptor(c)

		allowed, err := sess.Authorize(c.Request.Context(), mode, required)
		if err != nil {
			logAuthzFailure(c, sess.UserID(), required, err)
			abortWithError(c, err)
			return
		}

		if !allowed {
			denied := errors.ErrNoPermission.WithMessagef("access denied: %s", required)
			logAuthzFailure(c, sess.UserID(), required, denied)
			abortWithError(c, denied)
			return
		}

		c.Next()
	}
}

// GetSession returns the session resolved by the Authz middleware.
// Returns nil when Authz did not run for this request.
func GetSession(c *gin.Context) *session.Context {
	if v, ok := c.Get(ginKeySession); ok {
		if sess, ok := v.(*session.Context); ok {
			return sess
		}
	}
	return nil
}

// routeDescriptor builds the permission descriptor for the current request.
// gin 的路由参数（:id、*filepath）归一化为 {id} 形式，与权限表中存储的
// 描述符格式一致。
func routeDescriptor(c *gin.Context) string {
	path := c.FullPath()
	if path == "" {
		// 未匹配到路由模板（例如 NoRoute 链路），退回原始路径。
		path = c.Request.URL.Path
	}

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if len(seg) > 1 && (seg[0] == ':' || seg[0] == '*') {
			segments[i] = "{" + seg[1:] + "}"
		}
	}

	return authz.Route(c.Request.Method, strings.Join(segments, "/")).String()
}

// logAuthzFailure records authorization denials for security audit.
func logAuthzFailure(c *gin.Context, userID, required string, err error) {
	logger.Warnw("authorization denied",
		"error", err.Error(),
		"user_id", userID,
		"required", required,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"remote_addr", c.ClientIP(),
		"request_id", GetRequestID(c),
	)
}
