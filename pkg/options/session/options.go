// Package session provides session cache configuration options.
package session

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/kart-io/atlas/pkg/options"
)

var _ options.IOptions = (*Options)(nil)

// Options 会话权限缓存配置。
type Options struct {
	// TTL 缓存资源（菜单、接口权限、聚合权限集）的有效期。
	// 0 使用默认值，负值表示永不过期。
	TTL time.Duration `json:"ttl" mapstructure:"ttl"`

	// FanoutWorkers 角色变更广播使用的工作协程数。
	FanoutWorkers int `json:"fanout-workers" mapstructure:"fanout-workers"`

	// SuperuserRole 超级管理员角色编码，持有该角色的会话跳过权限求值。
	SuperuserRole string `json:"superuser-role" mapstructure:"superuser-role"`
}

// NewOptions 创建默认会话缓存配置。
func NewOptions() *Options {
	return &Options{
		TTL:           10 * time.Minute,
		FanoutWorkers: 200,
		SuperuserRole: "super",
	}
}

// AddFlags adds flags for session options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	join := options.Join(prefixes...)

	fs.DurationVar(&o.TTL, join+"session.ttl", o.TTL, "TTL for cached session permission resources (0 for default, negative to never expire).")
	fs.IntVar(&o.FanoutWorkers, join+"session.fanout-workers", o.FanoutWorkers, "Worker goroutines used to fan out role invalidations to live sessions.")
	fs.StringVar(&o.SuperuserRole, join+"session.superuser-role", o.SuperuserRole, "Role code whose holders bypass permission evaluation.")
}

// Validate validates the session options.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if o.FanoutWorkers <= 0 {
		errs = append(errs, fmt.Errorf("session.fanout-workers must be positive, got %d", o.FanoutWorkers))
	}
	if o.SuperuserRole == "" {
		errs = append(errs, fmt.Errorf("session.superuser-role cannot be empty"))
	}
	return errs
}

// Complete completes the session options with defaults.
func (o *Options) Complete() error {
	return nil
}
