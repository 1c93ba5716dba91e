package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kart-io/atlas/pkg/security/auth"
	"github.com/kart-io/atlas/pkg/security/auth/jwt"
)

const exampleKey = "example-secret-key-at-least-64-chars-long-for-hmac-algorithms!!!"

// Example shows the full token lifecycle: sign, verify, and context injection.
func Example() {
	ctx := context.Background()

	authn, err := jwt.New(
		jwt.WithKey(exampleKey),
		jwt.WithSigningMethod("HS256"),
		jwt.WithExpired(time.Hour),
		jwt.WithIssuer("atlas"),
	)
	if err != nil {
		fmt.Println("init failed:", err)
		return
	}

	token, err := authn.Sign(ctx, "operator-1",
		auth.WithSessionID("sess-42"),
		auth.WithExtra(map[string]interface{}{"role": "viewer"}),
	)
	if err != nil {
		fmt.Println("sign failed:", err)
		return
	}

	claims, err := authn.Verify(ctx, token.GetAccessToken())
	if err != nil {
		fmt.Println("verify failed:", err)
		return
	}

	// 中间件验证通过后，把身份信息注入请求 context
	ctx = auth.InjectAuth(ctx, claims, token.GetAccessToken())

	fmt.Println(auth.SubjectFromContext(ctx))
	fmt.Println(auth.ClaimsFromContext(ctx).SessionID())
	// Output:
	// operator-1
	// sess-42
}

func TestInjectAuth(t *testing.T) {
	claims := &auth.Claims{Subject: "operator-9"}
	ctx := auth.InjectAuth(context.Background(), claims, "raw-token")

	if got := auth.SubjectFromContext(ctx); got != "operator-9" {
		t.Errorf("SubjectFromContext() = %q, want %q", got, "operator-9")
	}
	if got := auth.TokenFromContext(ctx); got != "raw-token" {
		t.Errorf("TokenFromContext() = %q, want %q", got, "raw-token")
	}
	if got := auth.ClaimsFromContext(ctx); got != claims {
		t.Errorf("ClaimsFromContext() returned different claims")
	}
}

func TestInjectAuth_NilClaims(t *testing.T) {
	ctx := auth.InjectAuth(context.Background(), nil, "raw-token")

	if got := auth.SubjectFromContext(ctx); got != "" {
		t.Errorf("SubjectFromContext() = %q, want empty", got)
	}
	if got := auth.ClaimsFromContext(ctx); got != nil {
		t.Errorf("ClaimsFromContext() = %v, want nil", got)
	}
}

func TestMustSubjectFromContext_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for missing subject")
		}
	}()
	auth.MustSubjectFromContext(context.Background())
}

func TestMustClaimsFromContext_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for missing claims")
		}
	}()
	auth.MustClaimsFromContext(context.Background())
}
