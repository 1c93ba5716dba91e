// Package handler exposes the console's HTTP endpoints: authentication,
// navigation, and the administrative CRUD surface for users, roles,
// menus, and API resources.
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/atlas/pkg/errors"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// pathID parses the numeric ":id" route parameter.
func pathID(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.ErrInvalidParam.WithMessage("invalid id in path")
	}
	return id, nil
}

// pageParams reads the page/page_size query parameters, clamping to sane
// bounds. Missing or malformed values fall back to the defaults.
func pageParams(c *gin.Context) (page, pageSize int) {
	page, pageSize = defaultPage, defaultPageSize
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil && v > 0 {
		pageSize = v
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}
	}
	return page, pageSize
}
