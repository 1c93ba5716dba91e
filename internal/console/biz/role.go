package biz

import (
	"context"
	"strconv"

	"github.com/kart-io/atlas/internal/console/store"
	"github.com/kart-io/atlas/internal/model"
	"github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/security/session"
	storepkg "github.com/kart-io/atlas/pkg/store"
)

// RoleService handles role management business logic. Every mutation that
// changes what a role grants fans out an invalidation to the sessions
// holding that role.
type RoleService struct {
	store     store.Factory
	sessions  *session.Manager
	superRole string
}

// NewRoleService creates a new RoleService.
func NewRoleService(store store.Factory, sessions *session.Manager, superuserRole string) *RoleService {
	return &RoleService{
		store:     store,
		sessions:  sessions,
		superRole: superuserRole,
	}
}

// Create creates a new role.
func (s *RoleService) Create(ctx context.Context, role *model.Role) error {
	return s.store.Roles().Create(ctx, role)
}

// Update updates a role. The code is the session index key and cannot
// change; toggling the status changes what the role grants, so holders
// get invalidated.
func (s *RoleService) Update(ctx context.Context, role *model.Role) error {
	current, err := s.store.Roles().GetByID(ctx, role.ID)
	if err != nil {
		return err
	}
	if role.Code != current.Code {
		return errors.ErrInvalidParam.WithMessage("role code cannot be changed")
	}

	role.CreatedAt = current.CreatedAt

	if err := s.store.Roles().Update(ctx, role); err != nil {
		return err
	}

	if role.Status != current.Status {
		s.sessions.InvalidateRole(role.Code)
	}
	return nil
}

// Delete deletes a role. A role still assigned to users cannot be
// deleted.
func (s *RoleService) Delete(ctx context.Context, id uint64) error {
	role, err := s.store.Roles().GetByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.store.Roles().CountUsers(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.ErrRoleInUse
	}

	if err := s.store.Roles().Delete(ctx, id); err != nil {
		return err
	}

	s.sessions.InvalidateRole(role.Code)
	return nil
}

// Get retrieves a role by code.
func (s *RoleService) Get(ctx context.Context, code string) (*model.Role, error) {
	return s.store.Roles().Get(ctx, code)
}

// GetByID retrieves a role by id.
func (s *RoleService) GetByID(ctx context.Context, id uint64) (*model.Role, error) {
	return s.store.Roles().GetByID(ctx, id)
}

// List lists roles with the given query options.
func (s *RoleService) List(ctx context.Context, opts ...storepkg.Option) (int64, []*model.Role, error) {
	return s.store.Roles().List(ctx, opts...)
}

// AssignToUser assigns a role to a user. Granting the superuser role
// forces re-login because the superuser flag is fixed at session creation;
// any other role refreshes the user's cached permissions in place.
func (s *RoleService) AssignToUser(ctx context.Context, userID, roleID uint64) error {
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return err
	}
	role, err := s.store.Roles().GetByID(ctx, roleID)
	if err != nil {
		return err
	}

	if err := s.store.Roles().AssignUser(ctx, userID, roleID); err != nil {
		return err
	}

	s.bumpUser(userID, role.Code)
	return nil
}

// RevokeFromUser revokes a role from a user.
func (s *RoleService) RevokeFromUser(ctx context.Context, userID, roleID uint64) error {
	role, err := s.store.Roles().GetByID(ctx, roleID)
	if err != nil {
		return err
	}

	if err := s.store.Roles().RevokeUser(ctx, userID, roleID); err != nil {
		return err
	}

	s.bumpUser(userID, role.Code)
	return nil
}

func (s *RoleService) bumpUser(userID uint64, roleCode string) {
	uid := strconv.FormatUint(userID, 10)
	if roleCode == s.superRole {
		s.sessions.RemoveUser(uid)
		return
	}
	s.sessions.InvalidateUser(uid)
}

// GrantMenus replaces the role's menu grants and invalidates its holders.
func (s *RoleService) GrantMenus(ctx context.Context, roleID uint64, menuIDs []uint64) error {
	role, err := s.store.Roles().GetByID(ctx, roleID)
	if err != nil {
		return err
	}

	if err := s.store.Roles().GrantMenus(ctx, roleID, menuIDs); err != nil {
		return err
	}

	s.sessions.InvalidateRole(role.Code)
	return nil
}

// GrantAPIs replaces the role's API resource grants and invalidates its
// holders.
func (s *RoleService) GrantAPIs(ctx context.Context, roleID uint64, apiIDs []uint64) error {
	role, err := s.store.Roles().GetByID(ctx, roleID)
	if err != nil {
		return err
	}

	if err := s.store.Roles().GrantAPIs(ctx, roleID, apiIDs); err != nil {
		return err
	}

	s.sessions.InvalidateRole(role.Code)
	return nil
}

// MenuIDs lists the menu ids granted to a role.
func (s *RoleService) MenuIDs(ctx context.Context, roleID uint64) ([]uint64, error) {
	if _, err := s.store.Roles().GetByID(ctx, roleID); err != nil {
		return nil, err
	}
	return s.store.Roles().MenuIDs(ctx, roleID)
}

// APIIDs lists the API resource ids granted to a role.
func (s *RoleService) APIIDs(ctx context.Context, roleID uint64) ([]uint64, error) {
	if _, err := s.store.Roles().GetByID(ctx, roleID); err != nil {
		return nil, err
	}
	return s.store.Roles().APIIDs(ctx, roleID)
}
