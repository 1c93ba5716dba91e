package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/atlas/internal/pkg/httputils"
	"github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/infra/middleware"
	"github.com/kart-io/atlas/pkg/security/session"
)

// NavigationHandler serves the session-scoped navigation surface. Every
// endpoint reads the session resolved by the authz middleware; the
// handler itself holds no state.
type NavigationHandler struct{}

// NewNavigationHandler creates a new NavigationHandler.
func NewNavigationHandler() *NavigationHandler {
	return &NavigationHandler{}
}

func (h *NavigationHandler) session(c *gin.Context) *session.Context {
	sess := middleware.GetSession(c)
	if sess == nil {
		httputils.WriteResponse(c, errors.ErrUnauthorized, nil)
		return nil
	}
	return sess
}

// Routes returns the compiled route forest for the session's menus.
func (h *NavigationHandler) Routes(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}

	routes, err := sess.CompileRoutes(c.Request.Context())
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, routes)
}

// Menus returns the session's raw menu graph.
func (h *NavigationHandler) Menus(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}

	menus, err := sess.EnsureMenus(c.Request.Context(), false)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, menus)
}

// Refresh forces a reload of the session's menus and permissions.
func (h *NavigationHandler) Refresh(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}

	if err := sess.RefreshAll(c.Request.Context()); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, "refreshed")
}

// CacheStats reports the session's cache hit accounting.
func (h *NavigationHandler) CacheStats(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}

	httputils.WriteResponse(c, nil, sess.CacheStats())
}
