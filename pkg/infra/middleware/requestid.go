// Package middleware provides the gin HTTP middleware used by Atlas services.
//
// 所有中间件遵循统一的构造约定：纯配置选项（pkg/options/middleware，可 JSON
// 序列化）通过值传入，运行时依赖（认证器、会话管理器、健康检查函数等）作为
// 独立参数注入。配置中心只需分发选项结构，进程内再绑定运行时依赖。
package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/gin-gonic/gin"

	mwopts "github.com/kart-io/atlas/pkg/options/middleware"
	"github.com/kart-io/atlas/pkg/utils/id"
)

// HeaderRequestID is the default header carrying the request ID.
const HeaderRequestID = "X-Request-ID"

// ginKeyRequestID is the key used to store the request ID in the gin context.
const ginKeyRequestID = "middleware:request_id"

// requestIDKey is the context key for the request ID in request contexts.
type requestIDKey struct{}

// RequestID returns a request ID middleware with default options.
func RequestID() gin.HandlerFunc {
	return RequestIDWithOptions(*mwopts.NewRequestIDOptions())
}

// RequestIDWithOptions 返回一个请求 ID 中间件。
//
// 行为：
//   - 如果请求头已携带 ID（网关或上游服务生成），原样复用；
//   - 否则按 opts.GeneratorType 生成新 ID（ulid 可按时间排序，random/hex 为
//     32 位十六进制随机串）；
//   - ID 同时写入 gin 上下文、请求 context 和响应头。
func RequestIDWithOptions(opts mwopts.RequestIDOptions) gin.HandlerFunc {
	header := opts.Header
	if header == "" {
		header = HeaderRequestID
	}
	generate := newGenerator(opts.GeneratorType)

	return func(c *gin.Context) {
		requestID := c.GetHeader(header)
		if requestID == "" {
			requestID = generate()
		}

		c.Set(ginKeyRequestID, requestID)
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), requestIDKey{}, requestID))
		c.Header(header, requestID)

		c.Next()
	}
}

// newGenerator maps a generator type to its ID function.
func newGenerator(generatorType string) func() string {
	switch generatorType {
	case "random", "hex":
		return randomHex
	default: // "ulid" and unset
		return id.NewULID
	}
}

// randomHex returns a 32-character random hex string.
func randomHex() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand 失败时退回 ULID。
		return id.NewULID()
	}
	return hex.EncodeToString(b)
}

// GetRequestID returns the request ID stored in the gin context.
// Returns empty string when the RequestID middleware is not installed.
func GetRequestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if v, ok := c.Get(ginKeyRequestID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// RequestIDFromContext returns the request ID stored in a request context.
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}
