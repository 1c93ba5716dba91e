package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/utils/response"
)

// abortWithError terminates the request with the unified error envelope.
// 中间件层的错误出口统一走这里，保证响应结构与 handler 层一致。
func abortWithError(c *gin.Context, err error) {
	errno := errors.FromError(err)
	c.AbortWithStatusJSON(errno.HTTPStatus(),
		response.Err(errno).
			WithRequestID(GetRequestID(c)).
			WithTimestamp(time.Now().UnixMilli()))
}
