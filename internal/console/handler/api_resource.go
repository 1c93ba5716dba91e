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

// APIResourceHandler handles API resource management requests.
type APIResourceHandler struct {
	svc *biz.APIResourceService
}

// NewAPIResourceHandler creates a new APIResourceHandler.
func NewAPIResourceHandler(svc *biz.APIResourceService) *APIResourceHandler {
	return &APIResourceHandler{svc: svc}
}

// APIResourceRequest is the request body for creating or updating an API
// resource.
type APIResourceRequest struct {
	Method      string `json:"method" validate:"required,oneof=GET POST PUT PATCH DELETE HEAD OPTIONS get post put patch delete head options"`
	Path        string `json:"path" validate:"required,nowhitespace,startswith=/,max=255"`
	Group       string `json:"group" validate:"omitempty,max=64"`
	Description string `json:"description" validate:"omitempty,max=255"`
	Status      *int   `json:"status" validate:"omitempty,oneof=0 1"`
}

func (r *APIResourceRequest) apply(api *model.APIResource) {
	api.Method = r.Method
	api.Path = r.Path
	api.Group = r.Group
	api.Description = r.Description
	if r.Status != nil {
		api.Status = *r.Status
	}
}

// Create handles API resource creation.
func (h *APIResourceHandler) Create(c *gin.Context) {
	var req APIResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputils.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}

	api := &model.APIResource{Status: 1}
	req.apply(api)

	if err := h.svc.Create(c.Request.Context(), api); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, api)
}

// List handles listing API resources with pagination.
func (h *APIResourceHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)

	opts := []store.Option{store.WithPage(page, pageSize)}
	if group := c.Query("group"); group != "" {
		opts = append(opts, store.WithFilter(map[any]any{"group": group}))
	}

	count, apis, err := h.svc.List(c.Request.Context(), opts...)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, response.Page(apis, count, page, pageSize))
}

// Get handles retrieving an API resource by id.
func (h *APIResourceHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	api, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, api)
}

// Update handles API resource updates.
func (h *APIResourceHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	var req APIResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputils.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}

	api, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}
	req.apply(api)

	if err := h.svc.Update(c.Request.Context(), api); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, api)
}

// Delete handles API resource deletion.
func (h *APIResourceHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, "api resource deleted")
}
