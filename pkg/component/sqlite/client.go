package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/kart-io/atlas/pkg/component/internal/gormlog"
	"github.com/kart-io/atlas/pkg/component/storage"
)

// Client wraps gorm.DB and provides a SQLite database client backed by the
// pure-Go driver, so binaries stay cgo-free. It implements the
// storage.Client interface.
//
// SQLite is the zero-dependency deployment mode: a single file (or an
// in-memory database for tests) instead of a database server.
type Client struct {
	db   *gorm.DB
	opts *Options
}

// Compile-time check that Client implements storage.Client.
var _ storage.Client = (*Client)(nil)

// New creates a new SQLite client from the provided options.
func New(opts *Options) (*Client, error) {
	return NewWithContext(context.Background(), opts)
}

// NewWithContext creates a new SQLite client with context support.
func NewWithContext(ctx context.Context, opts *Options) (*Client, error) {
	if opts == nil {
		return nil, fmt.Errorf("sqlite options cannot be nil")
	}

	if errs := opts.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid sqlite options: %w", utilerrors.NewAggregate(errs))
	}

	path := opts.Path
	if path == "" {
		path = InMemoryPath
	}

	gormLogger := gormlog.New(gormlog.LevelFromInt(opts.LogLevel), 200*time.Millisecond, true)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger,
		// 唯一键冲突统一翻译为 gorm.ErrDuplicatedKey，上层不感知方言差异
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// 内存数据库每个连接各自独立，必须限制为单连接
	maxOpen := opts.MaxOpenConnections
	if path == InMemoryPath || maxOpen <= 0 {
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}

	return &Client{
		db:   db,
		opts: opts,
	}, nil
}

// Name returns the storage type identifier.
// Implements storage.Client interface.
func (c *Client) Name() string {
	return "sqlite"
}

// Ping checks if the database is reachable.
// Implements storage.Client interface.
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database and releases the file handle.
// Implements storage.Client interface.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Health returns a HealthChecker function for SQLite health monitoring.
// Implements storage.Client interface.
func (c *Client) Health() storage.HealthChecker {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return c.Ping(ctx)
	}
}

// DB returns the underlying gorm.DB instance.
func (c *Client) DB() *gorm.DB {
	return c.db
}

// SqlDB returns the underlying sql.DB instance.
func (c *Client) SqlDB() (*sql.DB, error) {
	return c.db.DB()
}
