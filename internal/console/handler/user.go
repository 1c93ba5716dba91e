package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/atlas/internal/console/biz"
	"github.com/kart-io/atlas/internal/model"
	"github.com/kart-io/atlas/internal/pkg/httputils"
	"github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/infra/middleware"
	"github.com/kart-io/atlas/pkg/store"
	"github.com/kart-io/atlas/pkg/utils/response"
)

// UserHandler handles user management requests.
type UserHandler struct {
	svc   *biz.UserService
	roles *biz.RoleService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *biz.UserService, roles *biz.RoleService) *UserHandler {
	return &UserHandler{svc: svc, roles: roles}
}

// CreateUserRequest is the request body for creating a user.
type CreateUserRequest struct {
	// Username must start with letter, 3-32 characters
	Username string `json:"username" validate:"required,username"`
	// Password must be at least 8 chars with letter and number
	Password string `json:"password" validate:"required,password"`
	// Email must be valid email format (optional)
	Email string `json:"email" validate:"omitempty,email"`
	// Mobile must be valid mobile number (optional)
	Mobile string `json:"mobile" validate:"omitempty,mobile"`
}

// Create handles user creation.
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputils.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}

	user := &model.User{
		Username: req.Username,
		Password: req.Password,
		Mobile:   req.Mobile,
		Status:   1,
	}
	if req.Email != "" {
		user.Email = &req.Email
	}

	if err := h.svc.Create(c.Request.Context(), user); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, user)
}

// List handles listing users with pagination.
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)

	count, users, err := h.svc.List(c.Request.Context(), store.WithPage(page, pageSize))
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, response.Page(users, count, page, pageSize))
}

// Get handles retrieving a user by id.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	user, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, user)
}

// UpdateUserRequest is the request body for updating a user.
type UpdateUserRequest struct {
	Email  string `json:"email" validate:"omitempty,email"`
	Mobile string `json:"mobile" validate:"omitempty,mobile"`
	Avatar string `json:"avatar" validate:"omitempty,max=255"`
	Status *int   `json:"status" validate:"omitempty,oneof=0 1"`
}

// Update handles user updates. Password changes go through the password
// endpoints, never through here.
func (h *UserHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputils.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}

	user, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	if req.Email != "" {
		user.Email = &req.Email
	}
	if req.Mobile != "" {
		user.Mobile = req.Mobile
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if req.Status != nil {
		user.Status = *req.Status
	}

	if err := h.svc.Update(c.Request.Context(), user); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, user)
}

// Delete handles user deletion.
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, "user deleted")
}

// ResetPasswordRequest is the request body for an administrative
// password reset.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,password"`
}

// ResetPassword handles an administrative password reset.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputils.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}

	if err := h.svc.ResetPassword(c.Request.Context(), id, req.Password); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, "password reset")
}

// Roles lists the roles assigned to a user.
func (h *UserHandler) Roles(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	roles, err := h.svc.Roles(c.Request.Context(), id)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, roles)
}

// AssignRoleRequest is the request body for assigning a role to a user.
type AssignRoleRequest struct {
	RoleID uint64 `json:"role_id" validate:"required"`
}

// AssignRole assigns a role to a user.
func (h *UserHandler) AssignRole(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputils.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}

	if err := h.roles.AssignToUser(c.Request.Context(), id, req.RoleID); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, "role assigned")
}

// RevokeRole revokes a role from a user.
func (h *UserHandler) RevokeRole(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	roleID, err := strconv.ParseUint(c.Param("role_id"), 10, 64)
	if err != nil || roleID == 0 {
		httputils.WriteResponse(c, errors.ErrInvalidParam.WithMessage("invalid role id in path"), nil)
		return
	}

	if err := h.roles.RevokeFromUser(c.Request.Context(), id, roleID); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, "role revoked")
}

// ProfileResponse is the response body for the current user's profile.
type ProfileResponse struct {
	User      *model.User   `json:"user"`
	Roles     []*model.Role `json:"roles"`
	Superuser bool          `json:"superuser"`
}

// Profile returns the authenticated user's profile with its roles.
func (h *UserHandler) Profile(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess == nil {
		httputils.WriteResponse(c, errors.ErrUnauthorized, nil)
		return
	}

	id, err := strconv.ParseUint(sess.UserID(), 10, 64)
	if err != nil {
		httputils.WriteResponse(c, errors.ErrInternal.WithMessage("malformed user id in session"), nil)
		return
	}

	user, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	roles, err := h.svc.Roles(c.Request.Context(), id)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, &ProfileResponse{
		User:      user,
		Roles:     roles,
		Superuser: sess.Superuser(),
	})
}

// ChangePasswordRequest is the request body for a self-service password
// change.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,password"`
}

// ChangePassword changes the authenticated user's own password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess == nil {
		httputils.WriteResponse(c, errors.ErrUnauthorized, nil)
		return
	}

	id, err := strconv.ParseUint(sess.UserID(), 10, 64)
	if err != nil {
		httputils.WriteResponse(c, errors.ErrInternal.WithMessage("malformed user id in session"), nil)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputils.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), id, req.OldPassword, req.NewPassword); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, "password changed")
}
