package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/kart-io/atlas/pkg/infra/middleware"
	options "github.com/kart-io/atlas/pkg/options/server"
)

// Options is re-exported from pkg/options/server for convenience.
type Options = options.Options

// Option is re-exported from pkg/options/server for convenience.
type Option = options.Option

// NewOptions is re-exported from pkg/options/server for convenience.
var NewOptions = options.NewOptions

// Re-export option functions.
var (
	WithHTTPOptions     = options.WithHTTPOptions
	WithMiddleware      = options.WithMiddleware
	WithShutdownTimeout = options.WithShutdownTimeout
)

// Manager owns the HTTP server plus any auxiliary Runnables and drives
// them through a single lifecycle.
type Manager struct {
	opts       *options.Options
	httpServer *HTTPServer
	servers    []Runnable
	mu         sync.Mutex
	started    bool
}

// NewManager creates a server manager with the given options.
func NewManager(opts ...options.Option) *Manager {
	serverOpts := options.NewOptions()
	for _, opt := range opts {
		opt(serverOpts)
	}

	return &Manager{
		opts:       serverOpts,
		httpServer: NewHTTPServer(serverOpts.HTTP, serverOpts.Middleware),
		servers:    make([]Runnable, 0),
	}
}

// HTTPServer returns the managed HTTP server.
func (m *Manager) HTTPServer() *HTTPServer {
	return m.httpServer
}

// Engine returns the gin engine for route registration.
func (m *Manager) Engine() *gin.Engine {
	return m.httpServer.Engine()
}

// Health returns the health manager, or nil when health endpoints are
// disabled.
func (m *Manager) Health() *middleware.HealthManager {
	return m.httpServer.Health()
}

// AddServer adds an auxiliary server to the manager. It is started
// after the HTTP server and stopped before it.
func (m *Manager) AddServer(server Runnable) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.servers = append(m.servers, server)
}

// Start starts the HTTP server and all auxiliary servers. On failure
// everything already started is stopped before returning.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return fmt.Errorf("server manager already started")
	}
	m.started = true
	m.mu.Unlock()

	if err := m.httpServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	logger.Infow("HTTP server started", "addr", m.opts.HTTP.Addr)

	for i, server := range m.servers {
		if err := server.Start(ctx); err != nil {
			// 回滚已启动的部分,保持失败后进程无残留监听。
			for j := i - 1; j >= 0; j-- {
				_ = m.servers[j].Stop(ctx)
			}
			_ = m.httpServer.Stop(ctx)
			return fmt.Errorf("failed to start server %s: %w", server.Name(), err)
		}
		logger.Infow("Auxiliary server started", "name", server.Name())
	}

	if m.Health() != nil {
		m.Health().SetReady(true)
	}
	return nil
}

// Stop stops all servers gracefully, auxiliary servers first.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return nil
	}
	m.started = false
	m.mu.Unlock()

	var errs []error

	for _, server := range m.servers {
		if err := server.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop server %s: %w", server.Name(), err))
		}
	}

	if err := m.httpServer.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop HTTP server: %w", err))
	}
	logger.Info("HTTP server stopped")

	return utilerrors.NewAggregate(errs)
}

// Run starts all servers and blocks until an interrupt signal arrives,
// then shuts down within the configured timeout.
func (m *Manager) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := m.Start(ctx); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), m.opts.ShutdownTimeout)
	defer shutdownCancel()

	return m.Stop(shutdownCtx)
}
