// Package sqlite provides SQLite configuration options.
package sqlite

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/kart-io/atlas/pkg/options"
)

var _ options.IOptions = (*Options)(nil)

// InMemoryPath 内存数据库路径，进程退出后数据丢失。
const InMemoryPath = ":memory:"

// Options defines configuration options for SQLite.
type Options struct {
	// Path 数据库文件路径，":memory:" 表示内存数据库。
	Path string `json:"path" mapstructure:"path"`

	// MaxOpenConnections SQLite 只有一个写入者，连接池保持小规模。
	MaxOpenConnections int `json:"max-open-connections" mapstructure:"max-open-connections"`

	// LogLevel GORM 日志级别：1 silent、2 error、3 warn、4 info。
	LogLevel int `json:"log-level" mapstructure:"log-level"`
}

// NewOptions creates a new Options object with default values.
func NewOptions() *Options {
	return &Options{
		Path:               "data/atlas.db",
		MaxOpenConnections: 1,
		LogLevel:           1, // Silent
	}
}

// Complete fills in any fields not set that are required to have valid data.
func (o *Options) Complete() error {
	if o.Path == "" {
		o.Path = InMemoryPath
	}
	return nil
}

// Validate checks if the options are valid.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if o.MaxOpenConnections < 0 {
		errs = append(errs, fmt.Errorf("sqlite.max-open-connections cannot be negative, got %d", o.MaxOpenConnections))
	}
	return errs
}

// AddFlags adds flags for SQLite options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	join := options.Join(prefixes...)

	fs.StringVar(&o.Path, join+"sqlite.path", o.Path, "SQLite database file path (\":memory:\" for in-memory)")
	fs.IntVar(&o.MaxOpenConnections, join+"sqlite.max-open-connections", o.MaxOpenConnections, "SQLite max open connections")
	fs.IntVar(&o.LogLevel, join+"sqlite.log-level", o.LogLevel, "SQLite log level")
}
