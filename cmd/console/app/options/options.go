// Package options contains flags and options for initializing the console server.
package options

import (
	"time"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/kart-io/atlas/internal/console"
	cliflag "github.com/kart-io/atlas/pkg/options/app"
	dbopts "github.com/kart-io/atlas/pkg/options/db"
	etcdopts "github.com/kart-io/atlas/pkg/options/etcd"
	jwtopts "github.com/kart-io/atlas/pkg/options/jwt"
	logopts "github.com/kart-io/atlas/pkg/options/logger"
	middlewareopts "github.com/kart-io/atlas/pkg/options/middleware"
	redisopts "github.com/kart-io/atlas/pkg/options/redis"
	httpopts "github.com/kart-io/atlas/pkg/options/server/http"
	sessionopts "github.com/kart-io/atlas/pkg/options/session"
	tracingopts "github.com/kart-io/atlas/pkg/options/tracing"
)

// ServerOptions contains the configuration options for the server.
type ServerOptions struct {
	// HTTPOptions contains HTTP server configuration.
	HTTPOptions *httpopts.Options `json:"http" mapstructure:"http"`

	// LogOptions contains logger configuration.
	LogOptions *logopts.Options `json:"log" mapstructure:"log"`

	// JWTOptions contains JWT authentication configuration.
	JWTOptions *jwtopts.Options `json:"jwt" mapstructure:"jwt"`

	// DBOptions contains relational database configuration.
	DBOptions *dbopts.Options `json:"db" mapstructure:"db"`

	// RedisOptions contains Redis configuration.
	RedisOptions *redisopts.Options `json:"redis" mapstructure:"redis"`

	// EtcdOptions contains etcd configuration for service registration.
	EtcdOptions *etcdopts.Options `json:"etcd" mapstructure:"etcd"`

	// TracingOptions contains OpenTelemetry tracing configuration.
	TracingOptions *tracingopts.Options `json:"tracing" mapstructure:"tracing"`

	// SessionOptions contains session cache configuration.
	SessionOptions *sessionopts.Options `json:"session" mapstructure:"session"`

	// RecoveryOptions contains recovery middleware configuration.
	RecoveryOptions *middlewareopts.RecoveryOptions `json:"recovery" mapstructure:"recovery"`

	// RequestIDOptions contains request ID middleware configuration.
	RequestIDOptions *middlewareopts.RequestIDOptions `json:"request-id" mapstructure:"request-id"`

	// LoggerOptions contains logger middleware configuration.
	LoggerOptions *middlewareopts.LoggerOptions `json:"logger" mapstructure:"logger"`

	// CORSOptions contains CORS middleware configuration.
	CORSOptions *middlewareopts.CORSOptions `json:"cors" mapstructure:"cors"`

	// TimeoutOptions contains timeout middleware configuration.
	TimeoutOptions *middlewareopts.TimeoutOptions `json:"timeout" mapstructure:"timeout"`

	// HealthOptions contains health check configuration.
	HealthOptions *middlewareopts.HealthOptions `json:"health" mapstructure:"health"`

	// ShutdownTimeout is the timeout for graceful shutdown.
	ShutdownTimeout time.Duration `json:"shutdown-timeout" mapstructure:"shutdown-timeout"`
}

// NewServerOptions creates a ServerOptions instance with default values.
func NewServerOptions() *ServerOptions {
	return &ServerOptions{
		HTTPOptions:      httpopts.NewOptions(),
		LogOptions:       logopts.NewOptions(),
		JWTOptions:       jwtopts.NewOptions(),
		DBOptions:        dbopts.NewOptions(),
		TracingOptions:   tracingopts.NewOptions(),
		SessionOptions:   sessionopts.NewOptions(),
		RecoveryOptions:  middlewareopts.NewRecoveryOptions(),
		RequestIDOptions: middlewareopts.NewRequestIDOptions(),
		LoggerOptions:    middlewareopts.NewLoggerOptions(),
		HealthOptions:    middlewareopts.NewHealthOptions(),
		ShutdownTimeout:  30 * time.Second,
		// RedisOptions, EtcdOptions, CORSOptions, TimeoutOptions 默认禁用（nil），
		// 配置文件里出现对应段落时启用。
	}
}

// Flags returns flags for a specific server by section name.
func (o *ServerOptions) Flags() (fss cliflag.NamedFlagSets) {
	o.HTTPOptions.AddFlags(fss.FlagSet("http"))
	o.LogOptions.AddFlags(fss.FlagSet("log"))
	o.JWTOptions.AddFlags(fss.FlagSet("jwt"))
	o.DBOptions.AddFlags(fss.FlagSet("db"))
	o.TracingOptions.AddFlags(fss.FlagSet("tracing"))
	o.SessionOptions.AddFlags(fss.FlagSet("session"))

	// misc flags
	fs := fss.FlagSet("misc")
	fs.DurationVar(&o.ShutdownTimeout, "shutdown-timeout", o.ShutdownTimeout, "Graceful shutdown timeout")

	return fss
}

// Complete completes all the required options.
func (o *ServerOptions) Complete() error {
	if err := o.HTTPOptions.Complete(); err != nil {
		return err
	}
	if err := o.JWTOptions.Complete(); err != nil {
		return err
	}
	if err := o.DBOptions.Complete(); err != nil {
		return err
	}
	if o.RedisOptions != nil {
		if err := o.RedisOptions.Complete(); err != nil {
			return err
		}
	}
	if o.EtcdOptions != nil {
		if err := o.EtcdOptions.Complete(); err != nil {
			return err
		}
	}
	if err := o.TracingOptions.Complete(); err != nil {
		return err
	}
	return o.SessionOptions.Complete()
}

// Validate checks whether the options in ServerOptions are valid.
func (o *ServerOptions) Validate() error {
	errs := []error{}

	errs = append(errs, o.HTTPOptions.Validate()...)
	errs = append(errs, o.LogOptions.Validate()...)
	errs = append(errs, o.JWTOptions.Validate()...)
	errs = append(errs, o.DBOptions.Validate()...)
	errs = append(errs, o.RedisOptions.Validate()...)
	errs = append(errs, o.EtcdOptions.Validate()...)
	errs = append(errs, o.TracingOptions.Validate()...)
	errs = append(errs, o.SessionOptions.Validate()...)

	return utilerrors.NewAggregate(errs)
}

// Config builds a console.Config based on ServerOptions.
func (o *ServerOptions) Config() (*console.Config, error) {
	return &console.Config{
		HTTPOptions:      o.HTTPOptions,
		LogOptions:       o.LogOptions,
		JWTOptions:       o.JWTOptions,
		DBOptions:        o.DBOptions,
		RedisOptions:     o.RedisOptions,
		EtcdOptions:      o.EtcdOptions,
		TracingOptions:   o.TracingOptions,
		SessionOptions:   o.SessionOptions,
		RecoveryOptions:  o.RecoveryOptions,
		RequestIDOptions: o.RequestIDOptions,
		LoggerOptions:    o.LoggerOptions,
		CORSOptions:      o.CORSOptions,
		TimeoutOptions:   o.TimeoutOptions,
		HealthOptions:    o.HealthOptions,
		ShutdownTimeout:  o.ShutdownTimeout,
	}, nil
}
