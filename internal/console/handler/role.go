package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/atlas/internal/console/biz"
	"github.com/kart-io/atlas/internal/model"
	"github.com/kart-io/atlas/internal/pkg/httputils"
	"github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/store"
	"github.com/kart-io/atlas/pkg/utils/response"
)

// RoleHandler handles role management requests.
type RoleHandler struct {
	svc *biz.RoleService
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(svc *biz.RoleService) *RoleHandler {
	return &RoleHandler{svc: svc}
}

// CreateRoleRequest is the request body for creating a role.
type CreateRoleRequest struct {
	// Code is the role's stable grant key, lowercase slug form
	Code string `json:"code" validate:"required,slug,max=32"`
	// Name is the human readable role name
	Name        string `json:"name" validate:"required,max=64"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

// Create handles role creation.
func (h *RoleHandler) Create(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputils.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}

	role := &model.Role{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Status:      1,
	}

	if err := h.svc.Create(c.Request.Context(), role); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, role)
}

// List handles listing roles with pagination.
func (h *RoleHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)

	count, roles, err := h.svc.List(c.Request.Context(), store.WithPage(page, pageSize))
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, response.Page(roles, count, page, pageSize))
}

// Get handles retrieving a role by id.
func (h *RoleHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	role, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, role)
}

// UpdateRoleRequest is the request body for updating a role. A non-empty
// code is passed through so attempts to change it surface the proper
// error instead of being silently dropped.
type UpdateRoleRequest struct {
	Code        string `json:"code" validate:"omitempty,slug,max=32"`
	Name        string `json:"name" validate:"omitempty,max=64"`
	Description string `json:"description" validate:"omitempty,max=255"`
	Status      *int   `json:"status" validate:"omitempty,oneof=0 1"`
}

// Update handles role updates.
func (h *RoleHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputils.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}

	role, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	if req.Code != "" {
		role.Code = req.Code
	}
	if req.Name != "" {
		role.Name = req.Name
	}
	if req.Description != "" {
		role.Description = req.Description
	}
	if req.Status != nil {
		role.Status = *req.Status
	}

	if err := h.svc.Update(c.Request.Context(), role); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, role)
}

// Delete handles role deletion.
func (h *RoleHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, "role deleted")
}

// Menus lists the menu ids granted to a role.
func (h *RoleHandler) Menus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	ids, err := h.svc.MenuIDs(c.Request.Context(), id)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, ids)
}

// GrantMenusRequest is the request body for replacing a role's menu
// grants. An empty list clears them.
type GrantMenusRequest struct {
	MenuIDs []uint64 `json:"menu_ids"`
}

// GrantMenus replaces the menu grants of a role.
func (h *RoleHandler) GrantMenus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	var req GrantMenusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputils.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}

	if err := h.svc.GrantMenus(c.Request.Context(), id, req.MenuIDs); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, "menus granted")
}

// APIs lists the API resource ids granted to a role.
func (h *RoleHandler) APIs(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	ids, err := h.svc.APIIDs(c.Request.Context(), id)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, ids)
}

// GrantAPIsRequest is the request body for replacing a role's API
// resource grants. An empty list clears them.
type GrantAPIsRequest struct {
	APIIDs []uint64 `json:"api_ids"`
}

// GrantAPIs replaces the API resource grants of a role.
func (h *RoleHandler) GrantAPIs(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	var req GrantAPIsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputils.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}

	if err := h.svc.GrantAPIs(c.Request.Context(), id, req.APIIDs); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, "apis granted")
}
