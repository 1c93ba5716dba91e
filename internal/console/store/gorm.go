package store

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/kart-io/logger"

	"github.com/kart-io/atlas/internal/model"
	"github.com/kart-io/atlas/pkg/infra/datasource"
	dboptions "github.com/kart-io/atlas/pkg/options/db"
)

var (
	clientFactory Factory
	once          sync.Once
)

// datastore implements the Factory interface.
type datastore struct {
	db *gorm.DB
}

// New creates a storage factory over an existing database handle.
// Tests use it to run the full store against an in-memory SQLite.
func New(db *gorm.DB) Factory {
	return &datastore{db}
}

// GetFactory returns the shared storage factory, resolving the "primary"
// database instance of the configured driver from the datasource manager.
func GetFactory(dsManager *datasource.Manager, driver string) (Factory, error) {
	var err error

	once.Do(func() {
		var db *gorm.DB
		db, err = resolveDB(dsManager, driver)
		if err != nil {
			logger.Errorf("failed to get %s connection: %s", driver, err.Error())
			return
		}

		clientFactory = &datastore{db}
	})

	if clientFactory == nil || err != nil {
		return nil, fmt.Errorf("failed to get %s store factory: %w", driver, err)
	}

	return clientFactory, nil
}

// resolveDB 按配置的驱动取 primary 实例的 gorm 句柄。
func resolveDB(dsManager *datasource.Manager, driver string) (*gorm.DB, error) {
	switch driver {
	case dboptions.DriverMySQL:
		client, err := dsManager.GetMySQL("primary")
		if err != nil {
			return nil, err
		}
		return client.DB(), nil
	case dboptions.DriverPostgres:
		client, err := dsManager.GetPostgres("primary")
		if err != nil {
			return nil, err
		}
		return client.DB(), nil
	case dboptions.DriverSQLite:
		client, err := dsManager.GetSQLite("primary")
		if err != nil {
			return nil, err
		}
		return client.DB(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}
}

// Users returns the user store.
func (ds *datastore) Users() UserStore {
	return newUsers(ds.db)
}

// Roles returns the role store.
func (ds *datastore) Roles() RoleStore {
	return newRoles(ds.db)
}

// Menus returns the menu store.
func (ds *datastore) Menus() MenuStore {
	return newMenus(ds.db)
}

// APIResources returns the API resource store.
func (ds *datastore) APIResources() APIResourceStore {
	return newAPIResources(ds.db)
}

// LoginLogs returns the login log store.
func (ds *datastore) LoginLogs() LoginLogStore {
	return newLoginLogs(ds.db)
}

// TX runs fn inside a single database transaction.
func (ds *datastore) TX(ctx context.Context, fn func(Factory) error) error {
	return ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&datastore{tx})
	})
}

// AutoMigrate migrates the database schema.
func (ds *datastore) AutoMigrate() error {
	return ds.db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.UserRole{},
		&model.Menu{},
		&model.RoleMenu{},
		&model.APIResource{},
		&model.RoleAPI{},
		&model.LoginLog{},
	)
}

// Close closes the factory and underlying connections.
// Connection lifecycle belongs to the datasource manager.
func (ds *datastore) Close() error {
	return nil
}
