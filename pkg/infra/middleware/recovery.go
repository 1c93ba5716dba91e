package middleware

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/atlas/pkg/errors"
	mwopts "github.com/kart-io/atlas/pkg/options/middleware"
)

// PanicHandler 定义 panic 处理器类型。
// 参数：
//   - ctx: 请求上下文
//   - err: panic 值
//   - stack: 堆栈跟踪信息
type PanicHandler func(ctx *gin.Context, err interface{}, stack []byte)

// Recovery returns a middleware that recovers from panics with default options.
func Recovery() gin.HandlerFunc {
	return RecoveryWithOptions(*mwopts.NewRecoveryOptions(), nil)
}

// RecoveryWithOptions 返回一个 panic 恢复中间件。
//
// 参数：
//   - opts: 纯配置选项（可 JSON 序列化）
//   - onPanic: 可选的 panic 处理器，用于自定义告警逻辑；为 nil 时仅记录日志
//     并返回统一错误响应
//
// 完整堆栈总是写入日志。堆栈是否回传给客户端由 opts.EnableStackTrace 控制，
// 生产环境（APP_ENV/GO_ENV 为 production）强制关闭回传。
func RecoveryWithOptions(opts mwopts.RecoveryOptions, onPanic PanicHandler) gin.HandlerFunc {
	returnStackToClient := stackTraceAllowed(opts.EnableStackTrace)

	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()

				logger.Errorw("panic recovered",
					"panic", r,
					"stack_trace", string(stack),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"request_id", GetRequestID(c),
				)

				if onPanic != nil {
					onPanic(c, r, stack)
				}

				abortWithError(c, clientPanicError(r, stack, returnStackToClient))
			}
		}()
		c.Next()
	}
}

// stackTraceAllowed enforces the production guard on EnableStackTrace.
func stackTraceAllowed(enabled bool) bool {
	if !enabled {
		return false
	}
	if isProductionEnvironment() {
		logger.Warn("Stack trace is enabled but running in production environment. " +
			"Stack trace will NOT be returned to clients for security reasons. " +
			"Full stack trace will still be logged.")
		return false
	}
	return true
}

// isProductionEnvironment checks APP_ENV then GO_ENV.
func isProductionEnvironment() bool {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = os.Getenv("GO_ENV")
	}
	switch env {
	case "production", "prod", "PRODUCTION", "PROD":
		return true
	default:
		return false
	}
}

// clientPanicError builds the error returned to the client.
func clientPanicError(panicValue interface{}, stack []byte, includeStack bool) *errors.Errno {
	if includeStack {
		return errors.ErrInternal.WithMessage(fmt.Sprintf("panic: %v\n%s", panicValue, string(stack)))
	}
	return errors.ErrInternal.WithMessage(fmt.Sprintf("panic: %v", panicValue))
}
