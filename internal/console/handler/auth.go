package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/atlas/internal/console/biz"
	"github.com/kart-io/atlas/internal/model"
	"github.com/kart-io/atlas/internal/pkg/httputils"
	"github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/infra/middleware"
	"github.com/kart-io/atlas/pkg/security/auth"
	"github.com/kart-io/atlas/pkg/security/authz"
	"github.com/kart-io/atlas/pkg/store"
	"github.com/kart-io/atlas/pkg/utils/response"
)

// AuthHandler handles authentication requests.
type AuthHandler struct {
	svc *biz.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *biz.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login handles user login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputils.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), &req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		logger.Warnw("Login failed", "username", req.Username, "ip", c.ClientIP(), "error", err)
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, resp)
}

// Logout revokes the current token and drops its session.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := auth.TokenFromContext(c.Request.Context())
	if token == "" {
		httputils.WriteResponse(c, errors.ErrBadRequest.WithMessage("token required"), nil)
		return
	}

	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, "logged out")
}

// Refresh exchanges the current token for a fresh one.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token := auth.TokenFromContext(c.Request.Context())
	if token == "" {
		httputils.WriteResponse(c, errors.ErrBadRequest.WithMessage("token required"), nil)
		return
	}

	resp, err := h.svc.RefreshToken(c.Request.Context(), token)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, resp)
}

// Codes returns the session's aggregated permission codes. Route-style
// permissions are enforced server-side and stay out of the payload.
func (h *AuthHandler) Codes(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess == nil {
		httputils.WriteResponse(c, errors.ErrUnauthorized, nil)
		return
	}

	set, err := sess.Aggregate(c.Request.Context(), false)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, set.Tokens())
}

// Verify reports whether the session holds the requested permissions.
func (h *AuthHandler) Verify(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess == nil {
		httputils.WriteResponse(c, errors.ErrUnauthorized, nil)
		return
	}

	var req model.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputils.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}

	allowed, err := sess.Authorize(c.Request.Context(), authz.ParseMode(req.Mode), req.Codes...)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, &model.VerifyResponse{Allowed: allowed})
}

// LoginLogs lists the login audit trail.
func (h *AuthHandler) LoginLogs(c *gin.Context) {
	page, pageSize := pageParams(c)

	count, logs, err := h.svc.LoginLogs(c.Request.Context(), store.WithPage(page, pageSize))
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, response.Page(logs, count, page, pageSize))
}
