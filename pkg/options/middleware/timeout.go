package middleware

import (
	"errors"
	"time"

	"github.com/spf13/pflag"

	"github.com/kart-io/atlas/pkg/options"
)

// 确保 TimeoutOptions 实现 Config 接口。
var _ Config = (*TimeoutOptions)(nil)

// TimeoutOptions defines timeout middleware options.
type TimeoutOptions struct {
	// Timeout 单个请求的处理超时。
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`

	// SkipPaths 不应用超时控制的路径，例如长轮询端点。
	SkipPaths []string `json:"skip-paths" mapstructure:"skip-paths"`
}

// NewTimeoutOptions creates default timeout middleware options.
func NewTimeoutOptions() *TimeoutOptions {
	return &TimeoutOptions{
		Timeout:   30 * time.Second,
		SkipPaths: nil,
	}
}

// AddFlags adds flags for timeout options to the specified FlagSet.
func (o *TimeoutOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.DurationVar(&o.Timeout, options.Join(prefixes...)+"middleware.timeout.timeout", o.Timeout, "Per-request handling timeout.")
	fs.StringSliceVar(&o.SkipPaths, options.Join(prefixes...)+"middleware.timeout.skip-paths", o.SkipPaths, "Paths exempt from the request timeout.")
}

// Validate validates the timeout options.
func (o *TimeoutOptions) Validate() []error {
	if o == nil {
		return nil
	}
	var errs []error
	if o.Timeout <= 0 {
		errs = append(errs, errors.New("timeout middleware: timeout must be positive"))
	}
	return errs
}

// Complete completes the timeout options with defaults.
func (o *TimeoutOptions) Complete() error {
	if o.Timeout == 0 {
		o.Timeout = 30 * time.Second
	}
	return nil
}
