// Package store implements the console's storage layer on top of GORM.
//
// Every method maps driver errors onto the stable errno space in
// pkg/errors, so the business layer never inspects gorm sentinel errors
// directly.
package store

import (
	"context"

	"github.com/kart-io/atlas/internal/model"
	"github.com/kart-io/atlas/pkg/store"
)

// Factory defines the factory interface for creating stores.
type Factory interface {
	Users() UserStore
	Roles() RoleStore
	Menus() MenuStore
	APIResources() APIResourceStore
	LoginLogs() LoginLogStore

	// TX runs fn inside a single database transaction. The factory passed
	// to fn is bound to the transaction handle.
	TX(ctx context.Context, fn func(Factory) error) error

	// AutoMigrate migrates the database schema.
	AutoMigrate() error

	Close() error
}

// UserStore defines the user storage interface.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uint64) error
	Get(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	List(ctx context.Context, opts ...store.Option) (int64, []*model.User, error)
}

// RoleStore defines the role storage interface, including user-role
// assignments and the menu / API resource grant relations.
type RoleStore interface {
	Create(ctx context.Context, role *model.Role) error
	Update(ctx context.Context, role *model.Role) error
	Delete(ctx context.Context, id uint64) error
	Get(ctx context.Context, code string) (*model.Role, error)
	GetByID(ctx context.Context, id uint64) (*model.Role, error)
	List(ctx context.Context, opts ...store.Option) (int64, []*model.Role, error)

	AssignUser(ctx context.Context, userID, roleID uint64) error
	RevokeUser(ctx context.Context, userID, roleID uint64) error
	ListByUserID(ctx context.Context, userID uint64) ([]*model.Role, error)
	CountUsers(ctx context.Context, roleID uint64) (int64, error)

	// GrantMenus replaces the role's menu grants with the given set.
	GrantMenus(ctx context.Context, roleID uint64, menuIDs []uint64) error
	// GrantAPIs replaces the role's API resource grants with the given set.
	GrantAPIs(ctx context.Context, roleID uint64, apiIDs []uint64) error
	MenuIDs(ctx context.Context, roleID uint64) ([]uint64, error)
	APIIDs(ctx context.Context, roleID uint64) ([]uint64, error)

	// CodesByMenuID lists the codes of roles granted the menu, used to
	// target session invalidation after menu mutations.
	CodesByMenuID(ctx context.Context, menuID uint64) ([]string, error)
	// CodesByAPIID lists the codes of roles granted the API resource.
	CodesByAPIID(ctx context.Context, apiID uint64) ([]string, error)
}

// MenuStore defines the menu storage interface.
type MenuStore interface {
	Create(ctx context.Context, menu *model.Menu) error
	Update(ctx context.Context, menu *model.Menu) error
	Delete(ctx context.Context, id uint64) error
	Get(ctx context.Context, id uint64) (*model.Menu, error)
	List(ctx context.Context, opts ...store.Option) (int64, []*model.Menu, error)

	// ListAll returns every enabled menu ordered by sort weight.
	ListAll(ctx context.Context) ([]*model.Menu, error)
	// ListByUserID returns the enabled menus granted to the user through
	// any of its roles.
	ListByUserID(ctx context.Context, userID uint64) ([]*model.Menu, error)
	// ListByRoleCodes returns the enabled menus granted to any of the
	// given role codes.
	ListByRoleCodes(ctx context.Context, codes []string) ([]*model.Menu, error)
	HasChildren(ctx context.Context, id uint64) (bool, error)
}

// APIResourceStore defines the API resource storage interface.
type APIResourceStore interface {
	Create(ctx context.Context, api *model.APIResource) error
	Update(ctx context.Context, api *model.APIResource) error
	Delete(ctx context.Context, id uint64) error
	Get(ctx context.Context, id uint64) (*model.APIResource, error)
	List(ctx context.Context, opts ...store.Option) (int64, []*model.APIResource, error)

	// ListAll returns every enabled API resource.
	ListAll(ctx context.Context) ([]*model.APIResource, error)
	// ListByUserID returns the enabled API resources granted to the user
	// through any of its roles.
	ListByUserID(ctx context.Context, userID uint64) ([]*model.APIResource, error)
	// ListByRoleCodes returns the enabled API resources granted to any of
	// the given role codes.
	ListByRoleCodes(ctx context.Context, codes []string) ([]*model.APIResource, error)
}

// LoginLogStore defines the login audit log storage interface.
type LoginLogStore interface {
	Create(ctx context.Context, log *model.LoginLog) error
	List(ctx context.Context, opts ...store.Option) (int64, []*model.LoginLog, error)
}
