// Package middleware provides middleware configuration options.
package middleware

import (
	"github.com/spf13/pflag"
)

// 中间件名称常量。
const (
	MiddlewareRecovery  = "recovery"
	MiddlewareRequestID = "request-id"
	MiddlewareLogger    = "logger"
	MiddlewareCORS      = "cors"
	MiddlewareTimeout   = "timeout"
	MiddlewareHealth    = "health"
)

// Options 汇总所有中间件配置。
// 字段为 nil 表示对应中间件禁用；是否启用完全由字段是否赋值控制。
type Options struct {
	// Recovery panic 恢复中间件配置。
	Recovery *RecoveryOptions `json:"recovery,omitempty" mapstructure:"recovery"`

	// RequestID 请求 ID 中间件配置。
	RequestID *RequestIDOptions `json:"request-id,omitempty" mapstructure:"request-id"`

	// Logger 访问日志中间件配置。
	Logger *LoggerOptions `json:"logger,omitempty" mapstructure:"logger"`

	// CORS 跨域中间件配置。
	CORS *CORSOptions `json:"cors,omitempty" mapstructure:"cors"`

	// Timeout 请求超时中间件配置。
	Timeout *TimeoutOptions `json:"timeout,omitempty" mapstructure:"timeout"`

	// Health 健康检查端点配置。
	Health *HealthOptions `json:"health,omitempty" mapstructure:"health"`
}

// NewOptions 创建默认中间件选项。
// 默认启用 Recovery、RequestID、Logger 与 Health，CORS 与 Timeout 默认禁用。
func NewOptions() *Options {
	return &Options{
		Recovery:  NewRecoveryOptions(),
		RequestID: NewRequestIDOptions(),
		Logger:    NewLoggerOptions(),
		Health:    NewHealthOptions(),
	}
}

// enabled 返回所有已启用的中间件配置。
func (o *Options) enabled() []Config {
	var cfgs []Config
	if o.Recovery != nil {
		cfgs = append(cfgs, o.Recovery)
	}
	if o.RequestID != nil {
		cfgs = append(cfgs, o.RequestID)
	}
	if o.Logger != nil {
		cfgs = append(cfgs, o.Logger)
	}
	if o.CORS != nil {
		cfgs = append(cfgs, o.CORS)
	}
	if o.Timeout != nil {
		cfgs = append(cfgs, o.Timeout)
	}
	if o.Health != nil {
		cfgs = append(cfgs, o.Health)
	}
	return cfgs
}

// IsEnabled 检查指定中间件是否启用。
func (o *Options) IsEnabled(name string) bool {
	if o == nil {
		return false
	}

	switch name {
	case MiddlewareRecovery:
		return o.Recovery != nil
	case MiddlewareRequestID:
		return o.RequestID != nil
	case MiddlewareLogger:
		return o.Logger != nil
	case MiddlewareCORS:
		return o.CORS != nil
	case MiddlewareTimeout:
		return o.Timeout != nil
	case MiddlewareHealth:
		return o.Health != nil
	default:
		return false
	}
}

// AddFlags adds flags for all enabled middleware options.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	for _, cfg := range o.enabled() {
		cfg.AddFlags(fs, prefixes...)
	}
}

// Validate 验证所有启用的中间件配置。
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	for _, cfg := range o.enabled() {
		errs = append(errs, cfg.Validate()...)
	}
	return errs
}

// Complete 完成所有启用的中间件配置的默认值填充。
func (o *Options) Complete() error {
	if o == nil {
		return nil
	}

	for _, cfg := range o.enabled() {
		if err := cfg.Complete(); err != nil {
			return err
		}
	}
	return nil
}
