package biz

import (
	"context"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/kart-io/atlas/internal/console/store"
	"github.com/kart-io/atlas/internal/model"
	"github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/security/session"
	storepkg "github.com/kart-io/atlas/pkg/store"
)

// UserService handles user management business logic.
type UserService struct {
	store    store.Factory
	sessions *session.Manager
}

// NewUserService creates a new UserService.
func NewUserService(store store.Factory, sessions *session.Manager) *UserService {
	return &UserService{
		store:    store,
		sessions: sessions,
	}
}

// Create creates a new user with an encrypted password.
func (s *UserService) Create(ctx context.Context, user *model.User) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return errors.ErrInternal.WithCause(err)
	}
	user.Password = string(hashed)
	return s.store.Users().Create(ctx, user)
}

// Update updates an existing user. Passwords only change through
// ChangePassword and ResetPassword. Disabling an account terminates all of
// its live sessions.
func (s *UserService) Update(ctx context.Context, user *model.User) error {
	current, err := s.store.Users().GetByID(ctx, user.ID)
	if err != nil {
		return err
	}

	user.Password = current.Password
	user.CreatedAt = current.CreatedAt
	user.CreatedBy = current.CreatedBy

	if err := s.store.Users().Update(ctx, user); err != nil {
		return err
	}

	if current.Status == 1 && user.Status != 1 {
		s.sessions.RemoveUser(strconv.FormatUint(user.ID, 10))
	}
	return nil
}

// Delete deletes a user and terminates its live sessions.
func (s *UserService) Delete(ctx context.Context, id uint64) error {
	if err := s.store.Users().Delete(ctx, id); err != nil {
		return err
	}
	s.sessions.RemoveUser(strconv.FormatUint(id, 10))
	return nil
}

// Get retrieves a user by username.
func (s *UserService) Get(ctx context.Context, username string) (*model.User, error) {
	return s.store.Users().Get(ctx, username)
}

// GetByID retrieves a user by id.
func (s *UserService) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return s.store.Users().GetByID(ctx, id)
}

// List lists users with the given query options.
func (s *UserService) List(ctx context.Context, opts ...storepkg.Option) (int64, []*model.User, error) {
	return s.store.Users().List(ctx, opts...)
}

// Roles lists the enabled roles assigned to a user.
func (s *UserService) Roles(ctx context.Context, id uint64) ([]*model.Role, error) {
	return s.store.Roles().ListByUserID(ctx, id)
}

// ChangePassword changes a user's own password after validating the old
// one, then forces re-login by removing the user's sessions.
func (s *UserService) ChangePassword(ctx context.Context, id uint64, oldPassword, newPassword string) error {
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return errors.ErrInvalidCredentials
	}

	return s.setPassword(ctx, user, newPassword)
}

// ResetPassword sets a user's password without the old-password check.
// Administrative operation; guarded by route permissions.
func (s *UserService) ResetPassword(ctx context.Context, id uint64, newPassword string) error {
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.setPassword(ctx, user, newPassword)
}

func (s *UserService) setPassword(ctx context.Context, user *model.User, newPassword string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.ErrInternal.WithCause(err)
	}
	user.Password = string(hashed)

	if err := s.store.Users().Update(ctx, user); err != nil {
		return err
	}

	// 改密后所有既有会话强制重新登录
	s.sessions.RemoveUser(strconv.FormatUint(user.ID, 10))
	return nil
}
