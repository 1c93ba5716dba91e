package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/atlas/pkg/errors"
	mwopts "github.com/kart-io/atlas/pkg/options/middleware"
	"github.com/kart-io/atlas/pkg/utils/response"
)

func TestTimeout_FastHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.Use(Timeout(time.Second))
	r.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestTimeout_SlowHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.Use(Timeout(20 * time.Millisecond))
	r.GET("/test", func(c *gin.Context) {
		select {
		case <-time.After(time.Second):
		case <-c.Request.Context().Done():
		}
	})

	r.ServeHTTP(w, req)

	if w.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusGatewayTimeout)
	}

	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Code != errors.ErrTimeout.Code {
		t.Errorf("envelope code = %d, want %d", resp.Code, errors.ErrTimeout.Code)
	}
}

func TestTimeout_SkipPath(t *testing.T) {
	gin.SetMode(gin.TestMode)

	opts := mwopts.TimeoutOptions{
		Timeout:   20 * time.Millisecond,
		SkipPaths: []string{"/slow"},
	}

	req := httptest.NewRequest(http.MethodGet, "/slow", nil)
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.Use(TimeoutWithOptions(opts))
	r.GET("/slow", func(c *gin.Context) {
		time.Sleep(50 * time.Millisecond)
		c.Status(http.StatusOK)
	})

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d for skipped path", w.Code, http.StatusOK)
	}
}

func TestTimeout_HandlerContextCancelled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cancelled := make(chan bool, 1)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.Use(Timeout(20 * time.Millisecond))
	r.GET("/test", func(c *gin.Context) {
		select {
		case <-c.Request.Context().Done():
			cancelled <- true
		case <-time.After(time.Second):
			cancelled <- false
		}
	})

	r.ServeHTTP(w, req)

	select {
	case ok := <-cancelled:
		if !ok {
			t.Error("expected handler context to be cancelled on timeout")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler never observed cancellation")
	}
}
