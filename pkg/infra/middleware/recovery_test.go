package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/atlas/pkg/errors"
	mwopts "github.com/kart-io/atlas/pkg/options/middleware"
	"github.com/kart-io/atlas/pkg/utils/response"
)

func TestRecovery_NoPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handlerCalled := false
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.Use(Recovery())
	r.GET("/test", func(_ *gin.Context) {
		handlerCalled = true
	})

	r.ServeHTTP(w, req)

	if !handlerCalled {
		t.Error("expected handler to be called when no panic occurs")
	}
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRecovery_CatchesPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.Use(Recovery())
	r.GET("/test", func(_ *gin.Context) {
		panic("test panic")
	})

	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}

	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Code != errors.ErrInternal.Code {
		t.Errorf("envelope code = %d, want %d", resp.Code, errors.ErrInternal.Code)
	}
}

func TestRecovery_StackTraceVisibility(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name             string
		enableStackTrace bool
		wantStackInBody  bool
	}{
		{"stack trace enabled", true, true},
		{"stack trace disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := mwopts.RecoveryOptions{EnableStackTrace: tt.enableStackTrace}

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()
			_, r := gin.CreateTestContext(w)
			r.Use(RecoveryWithOptions(opts, nil))
			r.GET("/test", func(_ *gin.Context) {
				panic("boom")
			})

			r.ServeHTTP(w, req)

			hasStack := strings.Contains(w.Body.String(), "goroutine")
			if hasStack != tt.wantStackInBody {
				t.Errorf("stack in body = %v, want %v", hasStack, tt.wantStackInBody)
			}
		})
	}
}

func TestRecovery_OnPanicHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var gotValue interface{}
	var gotStack []byte
	onPanic := func(_ *gin.Context, err interface{}, stack []byte) {
		gotValue = err
		gotStack = stack
	}

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.Use(RecoveryWithOptions(mwopts.RecoveryOptions{}, onPanic))
	r.GET("/test", func(_ *gin.Context) {
		panic("custom handler")
	})

	r.ServeHTTP(w, req)

	if gotValue != "custom handler" {
		t.Errorf("panic value = %v, want %q", gotValue, "custom handler")
	}
	if len(gotStack) == 0 {
		t.Error("expected non-empty stack trace")
	}
}
