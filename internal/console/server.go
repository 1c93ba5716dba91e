// Package console provides the Atlas console server implementation.
package console

import (
	"context"
	"fmt"
	"time"

	"github.com/kart-io/logger"

	"github.com/kart-io/atlas/internal/console/biz"
	"github.com/kart-io/atlas/internal/console/handler"
	"github.com/kart-io/atlas/internal/console/router"
	"github.com/kart-io/atlas/internal/console/store"
	"github.com/kart-io/atlas/pkg/infra/app"
	"github.com/kart-io/atlas/pkg/infra/datasource"
	discovery "github.com/kart-io/atlas/pkg/infra/discovery/etcd"
	"github.com/kart-io/atlas/pkg/infra/pool"
	"github.com/kart-io/atlas/pkg/infra/server"
	"github.com/kart-io/atlas/pkg/infra/tracing"
	"github.com/kart-io/atlas/pkg/navigation"
	dbopts "github.com/kart-io/atlas/pkg/options/db"
	etcdopts "github.com/kart-io/atlas/pkg/options/etcd"
	jwtopts "github.com/kart-io/atlas/pkg/options/jwt"
	logopts "github.com/kart-io/atlas/pkg/options/logger"
	middlewareopts "github.com/kart-io/atlas/pkg/options/middleware"
	redisopts "github.com/kart-io/atlas/pkg/options/redis"
	httpopts "github.com/kart-io/atlas/pkg/options/server/http"
	sessionopts "github.com/kart-io/atlas/pkg/options/session"
	tracingopts "github.com/kart-io/atlas/pkg/options/tracing"
	"github.com/kart-io/atlas/pkg/security/auth/jwt"
	"github.com/kart-io/atlas/pkg/security/session"
)

// Name is the name of the application.
const Name = "atlas-console"

// Datasource instance names. The store layer resolves the relational
// database under "primary".
const (
	primaryInstance   = "primary"
	cacheInstance     = "cache"
	discoveryInstance = "discovery"
)

// Config contains application-related configurations.
type Config struct {
	HTTPOptions      *httpopts.Options
	LogOptions       *logopts.Options
	JWTOptions       *jwtopts.Options
	DBOptions        *dbopts.Options
	RedisOptions     *redisopts.Options // nil 时禁用，JWT 吊销列表退化为内存存储
	EtcdOptions      *etcdopts.Options  // nil 时禁用服务注册
	TracingOptions   *tracingopts.Options
	SessionOptions   *sessionopts.Options
	RecoveryOptions  *middlewareopts.RecoveryOptions
	RequestIDOptions *middlewareopts.RequestIDOptions
	LoggerOptions    *middlewareopts.LoggerOptions
	CORSOptions      *middlewareopts.CORSOptions
	TimeoutOptions   *middlewareopts.TimeoutOptions
	HealthOptions    *middlewareopts.HealthOptions
	ShutdownTimeout  time.Duration
}

// Server represents the console server.
type Server struct {
	srv    *server.Manager
	ds     *datasource.Manager
	tracer *tracing.Provider
	fanout *pool.Pool
	audit  *pool.Pool
}

// NewServer initializes and returns a new Server instance.
func (cfg *Config) NewServer(ctx context.Context) (*Server, error) {
	printBanner()

	// 1. 初始化日志
	cfg.LogOptions.AddInitialField("service.name", Name)
	cfg.LogOptions.AddInitialField("service.version", app.GetVersion())
	if err := cfg.LogOptions.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info("Starting console service...")

	// 2. 初始化链路追踪（未启用时为 noop provider）
	tracerProvider, err := tracing.NewProvider(cfg.TracingOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	// 3. 初始化数据源
	ds := datasource.NewManager()
	switch cfg.DBOptions.Driver {
	case dbopts.DriverMySQL:
		err = ds.RegisterMySQL(primaryInstance, cfg.DBOptions.MySQL)
	case dbopts.DriverPostgres:
		err = ds.RegisterPostgres(primaryInstance, cfg.DBOptions.Postgres)
	case dbopts.DriverSQLite:
		err = ds.RegisterSQLite(primaryInstance, cfg.DBOptions.SQLite)
	default:
		err = fmt.Errorf("unsupported database driver: %s", cfg.DBOptions.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to register database: %w", err)
	}
	if cfg.RedisOptions != nil {
		if err := ds.RegisterRedis(cacheInstance, cfg.RedisOptions); err != nil {
			return nil, fmt.Errorf("failed to register redis: %w", err)
		}
	}
	if cfg.EtcdOptions != nil {
		if err := ds.RegisterEtcd(discoveryInstance, cfg.EtcdOptions); err != nil {
			return nil, fmt.Errorf("failed to register etcd: %w", err)
		}
	}
	if err := ds.InitAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize datasources: %w", err)
	}
	logger.Infow("Datasource manager initialized", "driver", cfg.DBOptions.Driver)

	// 4. 初始化 Store 层
	storeFactory, err := store.GetFactory(ds, cfg.DBOptions.Driver)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	// 数据库迁移
	if err := storeFactory.AutoMigrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info("Database migration completed")

	// 5. 初始化 JWT 认证
	// Redis 可用时吊销列表放 Redis，多实例共享；否则退化为单机内存。
	jwtOptions := []jwt.Option{jwt.WithOptions(cfg.JWTOptions)}
	if cfg.RedisOptions != nil {
		cache, err := ds.GetRedis(cacheInstance)
		if err != nil {
			return nil, fmt.Errorf("failed to get redis client: %w", err)
		}
		jwtOptions = append(jwtOptions, jwt.WithStore(jwt.NewRedisStore(cache, "")))
	} else {
		jwtOptions = append(jwtOptions, jwt.WithStore(jwt.NewMemoryStore()))
	}
	jwtAuth, err := jwt.New(jwtOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize jwt: %w", err)
	}
	logger.Info("JWT authentication initialized")

	// 6. 初始化工作池
	fanoutCfg := pool.SessionPoolConfig()
	if cfg.SessionOptions.FanoutWorkers > 0 {
		fanoutCfg.Capacity = cfg.SessionOptions.FanoutWorkers
	}
	fanoutPool, err := pool.NewPool(string(pool.SessionPool), fanoutCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create session fanout pool: %w", err)
	}
	auditPool, err := pool.NewPool(string(pool.BackgroundPool), pool.BackgroundPoolConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create background pool: %w", err)
	}
	logger.Infow("Worker pools initialized", "fanout_capacity", fanoutCfg.Capacity)

	// 7. 初始化导航视图注册表
	registry := navigation.NewRegistry()
	registry.RegisterAll(defaultViewManifest())
	compiler := navigation.NewCompiler(registry)
	logger.Infow("View registry seeded", "views", registry.Len())

	// 8. 初始化会话层
	// NavigationService 同时是会话回源：缓存未命中时从库里拉权限。
	navigationService := biz.NewNavigationService(storeFactory, cfg.SessionOptions.SuperuserRole)
	sessions := session.NewManager(navigationService, session.ManagerConfig{
		TTL:      cfg.SessionOptions.TTL,
		Compiler: compiler,
		Fanout:   fanoutPool,
	})
	logger.Infow("Session manager initialized", "ttl", cfg.SessionOptions.TTL)

	// 9. 初始化 Biz 层
	superuserRole := cfg.SessionOptions.SuperuserRole
	authService := biz.NewAuthService(jwtAuth, storeFactory, sessions, superuserRole, auditPool)
	userService := biz.NewUserService(storeFactory, sessions)
	roleService := biz.NewRoleService(storeFactory, sessions, superuserRole)
	menuService := biz.NewMenuService(storeFactory, sessions, superuserRole)
	apiService := biz.NewAPIResourceService(storeFactory, sessions, superuserRole)
	logger.Info("Business layer initialized")

	// 10. 初始化 Handler 层
	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Navigation: handler.NewNavigationHandler(),
		User:       handler.NewUserHandler(userService, roleService),
		Role:       handler.NewRoleHandler(roleService),
		Menu:       handler.NewMenuHandler(menuService),
		API:        handler.NewAPIResourceHandler(apiService),
	}
	logger.Info("Handler layer initialized")

	// 11. 初始化服务器
	serverManager := server.NewManager(
		server.WithHTTPOptions(cfg.HTTPOptions),
		server.WithMiddleware(cfg.GetMiddlewareOptions()),
		server.WithShutdownTimeout(cfg.ShutdownTimeout),
	)

	// 12. 注册路由
	if err := router.Register(serverManager, jwtAuth, sessions, handlers); err != nil {
		return nil, fmt.Errorf("failed to register routes: %w", err)
	}

	// 13. 注册服务发现
	if cfg.EtcdOptions != nil {
		etcdClient, err := ds.GetEtcd(discoveryInstance)
		if err != nil {
			return nil, fmt.Errorf("failed to get etcd client: %w", err)
		}
		registrar := discovery.NewRegistrar(etcdClient, Name, cfg.HTTPOptions.Addr, "PathPrefix(`/api`)", cfg.EtcdOptions.LeaseTTL)
		serverManager.AddServer(registrar)
		logger.Infow("Service registration enabled", "endpoints", cfg.EtcdOptions.Endpoints)
	}

	logger.Info("Console service is ready")
	return &Server{
		srv:    serverManager,
		ds:     ds,
		tracer: tracerProvider,
		fanout: fanoutPool,
		audit:  auditPool,
	}, nil
}

// Run starts the server and listens for termination signals.
func (s *Server) Run(ctx context.Context) error {
	defer s.cleanup(ctx)
	return s.srv.Run()
}

// cleanup releases resources in reverse initialization order.
func (s *Server) cleanup(ctx context.Context) {
	if err := s.fanout.ReleaseTimeout(5 * time.Second); err != nil {
		logger.Warnw("Fanout pool release timed out", "error", err)
	}
	if err := s.audit.ReleaseTimeout(5 * time.Second); err != nil {
		logger.Warnw("Background pool release timed out", "error", err)
	}
	if err := s.ds.CloseAll(); err != nil {
		logger.Errorw("Failed to close datasources", "error", err)
	}
	if err := s.tracer.Shutdown(ctx); err != nil {
		logger.Errorw("Failed to shut down tracer provider", "error", err)
	}
}

// GetMiddlewareOptions builds middleware options from individual configurations.
func (cfg *Config) GetMiddlewareOptions() *middlewareopts.Options {
	return &middlewareopts.Options{
		Recovery:  cfg.RecoveryOptions,
		RequestID: cfg.RequestIDOptions,
		Logger:    cfg.LoggerOptions,
		CORS:      cfg.CORSOptions,
		Timeout:   cfg.TimeoutOptions,
		Health:    cfg.HealthOptions,
	}
}

func printBanner() {
	fmt.Printf("Starting %s...\n", Name)
}
