package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/security/auth"
)

// stubAuthenticator verifies a single known token.
type stubAuthenticator struct {
	token  string
	claims *auth.Claims
}

func (s *stubAuthenticator) Sign(_ context.Context, _ string, _ ...auth.SignOption) (auth.Token, error) {
	return nil, errors.ErrNotImplemented
}

func (s *stubAuthenticator) Verify(_ context.Context, tokenString string) (*auth.Claims, error) {
	if tokenString != s.token {
		return nil, errors.ErrInvalidToken
	}
	return s.claims, nil
}

func (s *stubAuthenticator) Refresh(_ context.Context, _ string) (auth.Token, error) {
	return nil, errors.ErrNotImplemented
}

func (s *stubAuthenticator) Revoke(_ context.Context, _ string) error {
	return nil
}

func authRouter(cfg AuthConfig, authenticator auth.Authenticator, handler gin.HandlerFunc) *gin.Engine {
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.Use(Auth(cfg, authenticator))
	r.GET("/test", handler)
	r.GET("/public", handler)
	return r
}

func TestAuth_MissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	authn := &stubAuthenticator{token: "good", claims: &auth.Claims{Subject: "u1"}}
	r := authRouter(NewAuthConfig(), authn, func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	authn := &stubAuthenticator{token: "good", claims: &auth.Claims{Subject: "u1"}}
	r := authRouter(NewAuthConfig(), authn, func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer bad")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuth_ValidTokenInjectsClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)

	authn := &stubAuthenticator{token: "good", claims: &auth.Claims{Subject: "u1"}}

	var gotSubject string
	r := authRouter(NewAuthConfig(), authn, func(c *gin.Context) {
		if claims := auth.ClaimsFromContext(c.Request.Context()); claims != nil {
			gotSubject = claims.Subject
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotSubject != "u1" {
		t.Errorf("claims subject = %q, want u1", gotSubject)
	}
}

func TestAuth_SkipPath(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := NewAuthConfig()
	cfg.SkipPaths = []string{"/public"}
	authn := &stubAuthenticator{token: "good", claims: &auth.Claims{Subject: "u1"}}
	r := authRouter(cfg, authn, func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d for skipped path", w.Code, http.StatusOK)
	}
}

func TestAuth_QueryLookup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := NewAuthConfig()
	cfg.TokenLookup = "query:token"
	authn := &stubAuthenticator{token: "good", claims: &auth.Claims{Subject: "u1"}}
	r := authRouter(cfg, authn, func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/test?token=good", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestAuth_NilAuthenticator(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := authRouter(NewAuthConfig(), nil, func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer anything")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
