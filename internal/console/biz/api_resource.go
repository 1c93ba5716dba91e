package biz

import (
	"context"
	"strings"

	"github.com/kart-io/atlas/internal/console/store"
	"github.com/kart-io/atlas/internal/model"
	"github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/security/session"
	storepkg "github.com/kart-io/atlas/pkg/store"
)

// APIResourceService handles API resource management business logic.
type APIResourceService struct {
	store     store.Factory
	sessions  *session.Manager
	superRole string
}

// NewAPIResourceService creates a new APIResourceService.
func NewAPIResourceService(store store.Factory, sessions *session.Manager, superuserRole string) *APIResourceService {
	return &APIResourceService{
		store:     store,
		sessions:  sessions,
		superRole: superuserRole,
	}
}

// Create registers a new guarded API endpoint.
func (s *APIResourceService) Create(ctx context.Context, api *model.APIResource) error {
	if err := validateAPIResource(api); err != nil {
		return err
	}

	if err := s.store.APIResources().Create(ctx, api); err != nil {
		return err
	}

	s.sessions.InvalidateRole(s.superRole)
	return nil
}

// Update updates an API resource and invalidates every session granted it.
func (s *APIResourceService) Update(ctx context.Context, api *model.APIResource) error {
	if err := validateAPIResource(api); err != nil {
		return err
	}

	current, err := s.store.APIResources().Get(ctx, api.ID)
	if err != nil {
		return err
	}
	api.CreatedAt = current.CreatedAt

	codes, err := s.store.Roles().CodesByAPIID(ctx, api.ID)
	if err != nil {
		return err
	}

	if err := s.store.APIResources().Update(ctx, api); err != nil {
		return err
	}

	s.invalidate(codes)
	return nil
}

// Delete deletes an API resource together with its grants.
func (s *APIResourceService) Delete(ctx context.Context, id uint64) error {
	codes, err := s.store.Roles().CodesByAPIID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.APIResources().Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(codes)
	return nil
}

// Get retrieves an API resource by id.
func (s *APIResourceService) Get(ctx context.Context, id uint64) (*model.APIResource, error) {
	return s.store.APIResources().Get(ctx, id)
}

// List lists API resources with the given query options.
func (s *APIResourceService) List(ctx context.Context, opts ...storepkg.Option) (int64, []*model.APIResource, error) {
	return s.store.APIResources().List(ctx, opts...)
}

func (s *APIResourceService) invalidate(codes []string) {
	seen := map[string]struct{}{s.superRole: {}}
	s.sessions.InvalidateRole(s.superRole)
	for _, code := range codes {
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		s.sessions.InvalidateRole(code)
	}
}

// validateAPIResource 约束路径模板形态，参数段统一 {param} 写法。
func validateAPIResource(api *model.APIResource) error {
	if strings.TrimSpace(api.Method) == "" {
		return errors.ErrMissingParam.WithMessage("method is required")
	}
	if !strings.HasPrefix(api.Path, "/") {
		return errors.ErrInvalidParam.WithMessage("path must start with /")
	}
	if strings.ContainsAny(api.Path, " \t") {
		return errors.ErrInvalidParam.WithMessage("path cannot contain whitespace")
	}
	return nil
}
