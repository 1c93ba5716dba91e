package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/kart-io/version"

	apierrors "github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/infra/middleware"
	mwopts "github.com/kart-io/atlas/pkg/options/middleware"
	httpopts "github.com/kart-io/atlas/pkg/options/server/http"
	"github.com/kart-io/atlas/pkg/utils/response"
)

// StructValidator validates request payloads bound by gin.
type StructValidator interface {
	Validate(obj interface{}) error
}

// ginValidator bridges StructValidator into gin's binding layer.
type ginValidator struct {
	validator StructValidator
}

func (v *ginValidator) ValidateStruct(obj interface{}) error {
	return v.validator.Validate(obj)
}

func (v *ginValidator) Engine() interface{} {
	return nil
}

// HTTPServer hosts the gin engine behind a net/http server.
type HTTPServer struct {
	opts   *httpopts.Options
	engine *gin.Engine
	server *http.Server
	health *middleware.HealthManager
}

// NewHTTPServer creates an HTTP server and applies the configured
// middleware to the engine.
func NewHTTPServer(serverOpts *httpopts.Options, middlewareOpts *mwopts.Options) *HTTPServer {
	if serverOpts == nil {
		serverOpts = httpopts.NewOptions()
	}
	if middlewareOpts == nil {
		middlewareOpts = mwopts.NewOptions()
	}

	gin.SetMode(gin.ReleaseMode)

	// 不使用 gin.Default:恢复与日志由自己的中间件栈提供。
	engine := gin.New()

	s := &HTTPServer{
		opts:   serverOpts,
		engine: engine,
	}

	// 中间件必须在注册任何路由组之前挂载,否则子组不会继承。
	s.applyMiddleware(middlewareOpts)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound,
			response.Err(apierrors.ErrRouteNotFound).
				WithRequestID(middleware.GetRequestID(c)).
				WithTimestamp(time.Now().UnixMilli()))
	})

	return s
}

// Name returns the server name.
func (s *HTTPServer) Name() string {
	return "http[gin]"
}

// Engine returns the underlying gin engine for route registration.
func (s *HTTPServer) Engine() *gin.Engine {
	return s.engine
}

// Health returns the health manager, or nil when health endpoints are
// disabled.
func (s *HTTPServer) Health() *middleware.HealthManager {
	return s.health
}

// SetValidator installs a global validator for gin request binding.
func (s *HTTPServer) SetValidator(v StructValidator) {
	binding.Validator = &ginValidator{validator: v}
}

// applyMiddleware mounts the configured middleware in a fixed order:
// Recovery 最先执行以兜住后续所有 panic,RequestID 其次为日志提供关联键。
// Tracing、Auth、Authz 依赖运行时对象,由应用通过 Engine().Use 自行挂载。
func (s *HTTPServer) applyMiddleware(opts *mwopts.Options) {
	_ = opts.Complete()

	if opts.Recovery != nil {
		s.engine.Use(middleware.RecoveryWithOptions(*opts.Recovery, nil))
	}
	if opts.RequestID != nil {
		s.engine.Use(middleware.RequestIDWithOptions(*opts.RequestID))
	}
	if opts.Logger != nil {
		s.engine.Use(middleware.LoggerWithOptions(*opts.Logger))
	}
	if opts.CORS != nil {
		s.engine.Use(middleware.CORSWithOptions(*opts.CORS))
	}
	if opts.Timeout != nil {
		s.engine.Use(middleware.TimeoutWithOptions(*opts.Timeout))
	}
	if opts.Health != nil {
		s.health = middleware.RegisterHealthRoutesWithOptions(s.engine, *opts.Health, nil)
		s.health.SetVersion(version.Get().GitVersion)
	}
}

// Start begins serving. It returns once the listener goroutine is
// running; bind errors surface through the returned channel select.
func (s *HTTPServer) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  s.opts.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// Stop shuts the server down gracefully, draining in-flight requests
// until ctx expires.
func (s *HTTPServer) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	if s.health != nil {
		// 先把就绪探针拨下,让负载均衡停止转发新请求。
		s.health.SetReady(false)
	}
	return s.server.Shutdown(ctx)
}

var _ Runnable = (*HTTPServer)(nil)
