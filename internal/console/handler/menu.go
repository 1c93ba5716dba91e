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

// MenuHandler handles menu management requests.
type MenuHandler struct {
	svc *biz.MenuService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(svc *biz.MenuService) *MenuHandler {
	return &MenuHandler{svc: svc}
}

// MenuRequest is the request body for creating or updating a menu.
type MenuRequest struct {
	ParentID  uint64 `json:"parent_id"`
	Title     string `json:"title" validate:"required,max=64"`
	Path      string `json:"path" validate:"omitempty,nowhitespace,max=255"`
	Component string `json:"component" validate:"omitempty,max=255"`
	Redirect  string `json:"redirect" validate:"omitempty,max=255"`
	Icon      string `json:"icon" validate:"omitempty,max=64"`
	MenuType  int8   `json:"menu_type" validate:"omitempty,oneof=0 1 2"`
	Sort      int    `json:"sort"`
	Perms     string `json:"perms" validate:"omitempty,max=512"`
	Hidden    bool   `json:"hidden"`
	KeepAlive bool   `json:"keepalive"`
	Status    *int   `json:"status" validate:"omitempty,oneof=0 1"`
}

func (r *MenuRequest) apply(menu *model.Menu) {
	menu.ParentID = r.ParentID
	menu.Title = r.Title
	menu.Path = r.Path
	menu.Component = r.Component
	menu.Redirect = r.Redirect
	menu.Icon = r.Icon
	menu.MenuType = r.MenuType
	menu.Sort = r.Sort
	menu.Perms = r.Perms
	menu.Hidden = r.Hidden
	menu.KeepAlive = r.KeepAlive
	if r.Status != nil {
		menu.Status = *r.Status
	}
}

// Create handles menu creation.
func (h *MenuHandler) Create(c *gin.Context) {
	var req MenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputils.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}

	menu := &model.Menu{Status: 1}
	req.apply(menu)

	if err := h.svc.Create(c.Request.Context(), menu); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, menu)
}

// List handles listing menus. With ?all=true the full enabled set is
// returned unpaged, which feeds grant pickers in the admin UI.
func (h *MenuHandler) List(c *gin.Context) {
	if c.Query("all") == "true" {
		menus, err := h.svc.ListAll(c.Request.Context())
		if err != nil {
			httputils.WriteResponse(c, err, nil)
			return
		}
		httputils.WriteResponse(c, nil, menus)
		return
	}

	page, pageSize := pageParams(c)

	count, menus, err := h.svc.List(c.Request.Context(), store.WithPage(page, pageSize))
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, response.Page(menus, count, page, pageSize))
}

// Get handles retrieving a menu by id.
func (h *MenuHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	menu, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, menu)
}

// Update handles menu updates.
func (h *MenuHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	var req MenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputils.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}

	menu, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}
	req.apply(menu)

	if err := h.svc.Update(c.Request.Context(), menu); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, menu)
}

// Delete handles menu deletion.
func (h *MenuHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, "menu deleted")
}
