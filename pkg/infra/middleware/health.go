package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	mwopts "github.com/kart-io/atlas/pkg/options/middleware"
)

// HealthStatus represents the health status.
type HealthStatus string

const (
	// HealthStatusUp indicates the service is healthy.
	HealthStatusUp HealthStatus = "UP"
	// HealthStatusDown indicates the service is unhealthy.
	HealthStatusDown HealthStatus = "DOWN"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  HealthStatus           `json:"status"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
	Version string                 `json:"version,omitempty"`
}

// CheckResult represents an individual health check result.
type CheckResult struct {
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// HealthChecker is a function that performs a health check.
type HealthChecker func() error

// HealthManager manages health checks. Safe for concurrent use.
type HealthManager struct {
	mu       sync.RWMutex
	checkers map[string]HealthChecker
	ready    bool
	version  string
}

// NewHealthManager creates a new health manager.
func NewHealthManager() *HealthManager {
	return &HealthManager{
		checkers: make(map[string]HealthChecker),
		ready:    true,
	}
}

// SetVersion sets the service version reported by the health endpoint.
func (h *HealthManager) SetVersion(version string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.version = version
}

// RegisterChecker registers a named health checker.
func (h *HealthManager) RegisterChecker(name string, checker HealthChecker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = checker
}

// SetReady flips the readiness status. 优雅关闭前先置为 false，
// 让负载均衡摘除实例后再停止接收请求。
func (h *HealthManager) SetReady(ready bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ready = ready
}

// IsReady returns the readiness status.
func (h *HealthManager) IsReady() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ready
}

// Check runs all registered checkers and aggregates the result.
func (h *HealthManager) Check() HealthResponse {
	h.mu.RLock()
	defer h.mu.RUnlock()

	resp := HealthResponse{
		Status:  HealthStatusUp,
		Version: h.version,
	}

	if len(h.checkers) > 0 {
		resp.Checks = make(map[string]CheckResult, len(h.checkers))
		for name, checker := range h.checkers {
			if err := checker(); err != nil {
				resp.Status = HealthStatusDown
				resp.Checks[name] = CheckResult{
					Status:  HealthStatusDown,
					Message: err.Error(),
				}
			} else {
				resp.Checks[name] = CheckResult{Status: HealthStatusUp}
			}
		}
	}

	return resp
}

// RegisterHealthRoutesWithOptions 注册健康检查路由端点。
//
// 参数：
//   - engine: Gin 引擎
//   - opts: Health 配置选项（纯配置，可 JSON 序列化）
//   - checkers: 命名的健康检查函数（运行时依赖），如 "mysql"、"redis"
//
// 返回 HealthManager，调用方可以在优雅关闭时通过 SetReady(false) 摘流。
func RegisterHealthRoutesWithOptions(engine *gin.Engine, opts mwopts.HealthOptions, checkers map[string]HealthChecker) *HealthManager {
	manager := NewHealthManager()
	for name, checker := range checkers {
		manager.RegisterChecker(name, checker)
	}

	// Health check endpoint: aggregates all checkers.
	if opts.Path != "" {
		engine.GET(opts.Path, func(c *gin.Context) {
			resp := manager.Check()
			status := http.StatusOK
			if resp.Status == HealthStatusDown {
				status = http.StatusServiceUnavailable
			}
			c.JSON(status, resp)
		})
	}

	// Liveness probe: OK as long as the process is serving.
	if opts.LivenessPath != "" {
		engine.GET(opts.LivenessPath, func(c *gin.Context) {
			c.JSON(http.StatusOK, HealthResponse{Status: HealthStatusUp})
		})
	}

	// Readiness probe: OK only when ready and all checkers pass.
	if opts.ReadinessPath != "" {
		engine.GET(opts.ReadinessPath, func(c *gin.Context) {
			if !manager.IsReady() {
				c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: HealthStatusDown})
				return
			}
			resp := manager.Check()
			status := http.StatusOK
			if resp.Status == HealthStatusDown {
				status = http.StatusServiceUnavailable
			}
			c.JSON(status, resp)
		})
	}

	return manager
}
