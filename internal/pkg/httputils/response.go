// Package httputils provides HTTP utility functions shared by the
// console handlers.
package httputils

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/infra/middleware"
	"github.com/kart-io/atlas/pkg/utils/response"
)

// WriteResponse writes the response to the client.
// It handles both success and error cases, ensuring consistent response format.
func WriteResponse(c *gin.Context, err error, data interface{}) {
	var resp *response.Response

	switch {
	case err != nil:
		resp = response.Err(errors.FromError(err))
	default:
		// data 可以直接是 *response.Response(例如 response.Page 的结果)。
		if r, ok := data.(*response.Response); ok {
			resp = r
		} else {
			resp = response.Success(data)
		}
	}

	resp.WithRequestID(middleware.GetRequestID(c)).
		WithTimestamp(time.Now().UnixMilli())
	c.JSON(resp.HTTPStatus(), resp)
}
