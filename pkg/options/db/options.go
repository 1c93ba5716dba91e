// Package db provides relational database configuration options.
//
// The package composes the per-driver option packages and selects one of
// them through the db.driver flag, so a service binary can switch between
// MySQL, PostgreSQL, and SQLite without code changes.
package db

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/kart-io/atlas/pkg/options"
	mysqlopts "github.com/kart-io/atlas/pkg/options/mysql"
	postgresopts "github.com/kart-io/atlas/pkg/options/postgres"
	sqliteopts "github.com/kart-io/atlas/pkg/options/sqlite"
)

// Supported driver names.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var _ options.IOptions = (*Options)(nil)

// Options 数据库配置，按 Driver 选择生效的驱动配置。
type Options struct {
	// Driver 数据库驱动：mysql、postgres 或 sqlite。
	Driver string `json:"driver" mapstructure:"driver"`

	// MySQL MySQL 连接配置，Driver 为 mysql 时生效。
	MySQL *mysqlopts.Options `json:"mysql" mapstructure:"mysql"`

	// Postgres PostgreSQL 连接配置，Driver 为 postgres 时生效。
	Postgres *postgresopts.Options `json:"postgres" mapstructure:"postgres"`

	// SQLite SQLite 连接配置，Driver 为 sqlite 时生效。
	SQLite *sqliteopts.Options `json:"sqlite" mapstructure:"sqlite"`
}

// NewOptions 创建默认数据库配置。
func NewOptions() *Options {
	return &Options{
		Driver:   DriverMySQL,
		MySQL:    mysqlopts.NewOptions(),
		Postgres: postgresopts.NewOptions(),
		SQLite:   sqliteopts.NewOptions(),
	}
}

// AddFlags adds flags for database options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	join := options.Join(prefixes...)

	fs.StringVar(&o.Driver, join+"db.driver", o.Driver, "Database driver (mysql|postgres|sqlite).")

	if o.MySQL == nil {
		o.MySQL = mysqlopts.NewOptions()
	}
	o.MySQL.AddFlags(fs, prefixes...)

	if o.Postgres == nil {
		o.Postgres = postgresopts.NewOptions()
	}
	o.Postgres.AddFlags(fs, prefixes...)

	if o.SQLite == nil {
		o.SQLite = sqliteopts.NewOptions()
	}
	o.SQLite.AddFlags(fs, prefixes...)
}

// Validate validates the database options.
// Only the options of the selected driver are checked.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	switch o.Driver {
	case DriverMySQL:
		return o.MySQL.Validate()
	case DriverPostgres:
		return o.Postgres.Validate()
	case DriverSQLite:
		return o.SQLite.Validate()
	default:
		return []error{fmt.Errorf("db.driver %q is not supported (mysql|postgres|sqlite)", o.Driver)}
	}
}

// Complete completes the options of the selected driver.
func (o *Options) Complete() error {
	switch o.Driver {
	case DriverMySQL:
		if o.MySQL == nil {
			o.MySQL = mysqlopts.NewOptions()
		}
		return o.MySQL.Complete()
	case DriverPostgres:
		if o.Postgres == nil {
			o.Postgres = postgresopts.NewOptions()
		}
		return o.Postgres.Complete()
	case DriverSQLite:
		if o.SQLite == nil {
			o.SQLite = sqliteopts.NewOptions()
		}
		return o.SQLite.Complete()
	default:
		return nil
	}
}
