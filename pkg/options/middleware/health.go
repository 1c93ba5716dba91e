package middleware

import (
	"errors"

	"github.com/spf13/pflag"

	"github.com/kart-io/atlas/pkg/options"
)

// 确保 HealthOptions 实现 Config 接口。
var _ Config = (*HealthOptions)(nil)

// HealthOptions defines health check endpoint options.
// 就绪检查的探测函数属于运行时依赖，通过注册端点时的参数注入。
type HealthOptions struct {
	Path          string `json:"path" mapstructure:"path"`
	LivenessPath  string `json:"liveness-path" mapstructure:"liveness-path"`
	ReadinessPath string `json:"readiness-path" mapstructure:"readiness-path"`
}

// NewHealthOptions creates default health check options.
func NewHealthOptions() *HealthOptions {
	return &HealthOptions{
		Path:          "/health",
		LivenessPath:  "/live",
		ReadinessPath: "/ready",
	}
}

// AddFlags adds flags for health check options to the specified FlagSet.
func (o *HealthOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	join := options.Join(prefixes...)

	fs.StringVar(&o.Path, join+"middleware.health.path", o.Path, "Health check endpoint path.")
	fs.StringVar(&o.LivenessPath, join+"middleware.health.liveness-path", o.LivenessPath, "Liveness probe path.")
	fs.StringVar(&o.ReadinessPath, join+"middleware.health.readiness-path", o.ReadinessPath, "Readiness probe path.")
}

// Validate validates the health check options.
func (o *HealthOptions) Validate() []error {
	if o == nil {
		return nil
	}
	if o.Path == "" && o.LivenessPath == "" && o.ReadinessPath == "" {
		return []error{errors.New("health check path is required")}
	}
	return nil
}

// Complete completes the health check options with defaults.
func (o *HealthOptions) Complete() error {
	return nil
}
