package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	mwopts "github.com/kart-io/atlas/pkg/options/middleware"
)

func healthEngine(checkers map[string]HealthChecker) (*gin.Engine, *HealthManager) {
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	opts := mwopts.HealthOptions{
		Path:          "/health",
		LivenessPath:  "/live",
		ReadinessPath: "/ready",
	}
	manager := RegisterHealthRoutesWithOptions(r, opts, checkers)
	return r, manager
}

func TestHealth_AllUp(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r, _ := healthEngine(map[string]HealthChecker{
		"mysql": func() error { return nil },
		"redis": func() error { return nil },
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Status != HealthStatusUp {
		t.Errorf("status = %q, want %q", resp.Status, HealthStatusUp)
	}
	if len(resp.Checks) != 2 {
		t.Errorf("checks = %d, want 2", len(resp.Checks))
	}
}

func TestHealth_CheckerFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r, _ := healthEngine(map[string]HealthChecker{
		"mysql": func() error { return fmt.Errorf("connection refused") },
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Checks["mysql"].Status != HealthStatusDown {
		t.Errorf("mysql check status = %q, want %q", resp.Checks["mysql"].Status, HealthStatusDown)
	}
	if resp.Checks["mysql"].Message != "connection refused" {
		t.Errorf("mysql check message = %q", resp.Checks["mysql"].Message)
	}
}

func TestHealth_LivenessAlwaysUp(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r, _ := healthEngine(map[string]HealthChecker{
		"mysql": func() error { return fmt.Errorf("down") },
	})

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("liveness status = %d, want %d even when checks fail", w.Code, http.StatusOK)
	}
}

func TestHealth_ReadinessDrain(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r, manager := healthEngine(nil)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("initial readiness = %d, want %d", w.Code, http.StatusOK)
	}

	manager.SetReady(false)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("drained readiness = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}

func TestHealth_Version(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r, manager := healthEngine(nil)
	manager.SetVersion("v1.2.3")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Version != "v1.2.3" {
		t.Errorf("version = %q, want v1.2.3", resp.Version)
	}
}
