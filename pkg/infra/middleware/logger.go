package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/atlas/pkg/infra/middleware/internal/pathutil"
	mwopts "github.com/kart-io/atlas/pkg/options/middleware"
)

// fieldsPool reuses the key/value slices handed to the structured logger so
// the per-request allocation stays flat under load.
var fieldsPool = sync.Pool{
	New: func() interface{} {
		s := make([]interface{}, 0, 16)
		return &s
	},
}

func acquireFields() *[]interface{} {
	return fieldsPool.Get().(*[]interface{})
}

func releaseFields(fields *[]interface{}) {
	*fields = (*fields)[:0]
	fieldsPool.Put(fields)
}

// Logger returns a request logging middleware with default options.
func Logger() gin.HandlerFunc {
	return LoggerWithOptions(*mwopts.NewLoggerOptions())
}

// LoggerWithOptions 返回一个结构化请求日志中间件。
//
// 每个请求记录 method、path、status、latency、remote_addr 与 request_id；
// 耗时超过 opts.SlowThresholdMillis 的请求以 WARN 级别记录并附加 slow=true，
// 便于在日志平台上直接按字段筛选慢请求。
func LoggerWithOptions(opts mwopts.LoggerOptions) gin.HandlerFunc {
	skip := pathutil.NewPathMatcher(opts.SkipPaths, nil)
	slowThreshold := time.Duration(opts.SlowThresholdMillis) * time.Millisecond

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skip(path) {
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := acquireFields()
		defer releaseFields(fields)

		*fields = append(*fields,
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"latency_ms", latency.Milliseconds(),
			"remote_addr", c.ClientIP(),
		)
		if requestID := GetRequestID(c); requestID != "" {
			*fields = append(*fields, "request_id", requestID)
		}
		if len(c.Errors) > 0 {
			*fields = append(*fields, "errors", c.Errors.String())
		}

		if slowThreshold > 0 && latency >= slowThreshold {
			*fields = append(*fields, "slow", true)
			logger.Warnw("HTTP Request", (*fields)...)
			return
		}
		logger.Infow("HTTP Request", (*fields)...)
	}
}
