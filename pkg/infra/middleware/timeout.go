package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/infra/middleware/internal/pathutil"
	mwopts "github.com/kart-io/atlas/pkg/options/middleware"
)

// Timeout returns a timeout middleware with the given duration.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	opts := mwopts.NewTimeoutOptions()
	opts.Timeout = timeout
	return TimeoutWithOptions(*opts)
}

// TimeoutWithOptions 返回一个请求超时中间件。
//
// 超时通过 context 传播：下游 handler 应当尊重 ctx.Done()。handler 在独立
// goroutine 中执行，超时后立即返回 504 统一错误响应；仍在运行的 handler
// 会因 context 取消而尽快退出，其后续写入被 gin 丢弃。
//
// 注意：SkipPaths 中的路径（如 SSE、文件上传）不受超时约束。
func TimeoutWithOptions(opts mwopts.TimeoutOptions) gin.HandlerFunc {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	skip := pathutil.NewPathMatcher(opts.SkipPaths, nil)

	return func(c *gin.Context) {
		if skip(c.Request.URL.Path) {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		// 缓冲为 1：超时分支返回后，handler goroutine 的发送不会阻塞泄漏。
		done := make(chan struct{}, 1)
		panicChan := make(chan interface{}, 1)

		go func() {
			defer func() {
				if r := recover(); r != nil {
					panicChan <- r
					return
				}
				done <- struct{}{}
			}()
			c.Next()
		}()

		select {
		case <-done:
		case p := <-panicChan:
			// 转抛给外层 Recovery 中间件统一处理。
			panic(p)
		case <-ctx.Done():
			logger.Warnw("request timed out",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"timeout", timeout.String(),
				"request_id", GetRequestID(c),
			)
			abortWithError(c, errors.ErrTimeout)
		}
	}
}
