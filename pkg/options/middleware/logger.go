package middleware

import (
	"github.com/spf13/pflag"

	"github.com/kart-io/atlas/pkg/options"
)

// 确保 LoggerOptions 实现 Config 接口。
var _ Config = (*LoggerOptions)(nil)

// LoggerOptions defines access log middleware options.
type LoggerOptions struct {
	// SkipPaths 不记录访问日志的路径。
	SkipPaths []string `json:"skip-paths" mapstructure:"skip-paths"`

	// SlowThreshold 慢请求阈值，超过后以 WARN 级别记录。0 表示禁用。
	SlowThresholdMillis int `json:"slow-threshold-millis" mapstructure:"slow-threshold-millis"`
}

// NewLoggerOptions creates default logger middleware options.
func NewLoggerOptions() *LoggerOptions {
	return &LoggerOptions{
		SkipPaths:           []string{"/health", "/ready", "/live"},
		SlowThresholdMillis: 500,
	}
}

// AddFlags adds flags for logger options to the specified FlagSet.
func (o *LoggerOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringSliceVar(&o.SkipPaths, options.Join(prefixes...)+"middleware.logger.skip-paths", o.SkipPaths, "Paths to skip logging.")
	fs.IntVar(&o.SlowThresholdMillis, options.Join(prefixes...)+"middleware.logger.slow-threshold-millis", o.SlowThresholdMillis, "Requests slower than this many milliseconds are logged at WARN level (0 disables).")
}

// Validate validates the logger options.
func (o *LoggerOptions) Validate() []error {
	return nil
}

// Complete completes the logger options with defaults.
func (o *LoggerOptions) Complete() error {
	return nil
}
