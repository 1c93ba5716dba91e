package authz

import (
	"testing"
)

func TestEvaluateDirectMembership(t *testing.T) {
	s := NewSet("system:user:add", "GET /api/v1/users")

	if !Evaluate(s, false, ModeAll, "system:user:add") {
		t.Error("direct token membership should be granted")
	}
	if !Evaluate(s, false, ModeAll, "GET /api/v1/users") {
		t.Error("direct route membership should be granted")
	}
	if Evaluate(s, false, ModeAll, "system:user:del") {
		t.Error("absent token must be denied")
	}
}

func TestOpaqueTokensNeverPatternMatch(t *testing.T) {
	s := NewSet("system:user:*")
	if Evaluate(s, false, ModeAll, "system:user:add") {
		t.Error("opaque tokens must only match by string equality")
	}
}

func TestParameterizedPermissionCoversLiteral(t *testing.T) {
	s := NewSet("GET /users/{id}")

	if !Evaluate(s, false, ModeAll, "GET /users/42") {
		t.Error("GET /users/{id} should authorize GET /users/42")
	}
	if Evaluate(s, false, ModeAll, "GET /users/42/roles") {
		t.Error("segment counts differ, must be denied")
	}
	if Evaluate(s, false, ModeAll, "POST /users/42") {
		t.Error("method mismatch must be denied")
	}
}

func TestWildcardSegment(t *testing.T) {
	s := NewSet("GET /a/*")

	if !Evaluate(s, false, ModeAll, "GET /a/anything") {
		t.Error("GET /a/* should authorize GET /a/anything")
	}
	if Evaluate(s, false, ModeAll, "GET /a/b/c") {
		t.Error("a trailing wildcard never swallows extra segments")
	}
	if Evaluate(s, false, ModeAll, "GET /a") {
		t.Error("missing segment must be denied")
	}
}

func TestNormalizationRecheck(t *testing.T) {
	s := NewSet("GET /users/{userId}")

	// Same template under a different parameter name.
	if !Evaluate(s, false, ModeAll, "GET /users/{id}") {
		t.Error("equivalent parameterized templates should match")
	}
}

func TestParameterizedRequirementNeedsPatternPermission(t *testing.T) {
	s := NewSet("GET /users/42")

	if Evaluate(s, false, ModeAll, "GET /users/{id}") {
		t.Error("a parameterized requirement must not match a literal permission")
	}

	wild := NewSet("GET /users/*")
	if !Evaluate(wild, false, ModeAll, "GET /users/{id}") {
		t.Error("a wildcard permission segment covers a parameterized requirement")
	}
}

func TestModes(t *testing.T) {
	s := NewSet("GET /a", "GET /b")

	tests := []struct {
		name     string
		mode     Mode
		required []string
		want     bool
	}{
		{"all present", ModeAll, []string{"GET /a", "GET /b"}, true},
		{"all partial", ModeAll, []string{"GET /a", "GET /c"}, false},
		{"any partial", ModeAny, []string{"GET /a", "GET /c"}, true},
		{"any none", ModeAny, []string{"GET /c", "GET /d"}, false},
		{"exact present", ModeExact, []string{"GET /a"}, true},
		{"exact absent", ModeExact, []string{"GET /c"}, false},
		{"exact multiple", ModeExact, []string{"GET /a", "GET /b"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(s, false, tt.mode, tt.required...); got != tt.want {
				t.Errorf("Evaluate(%v, %v) = %v, want %v", tt.mode, tt.required, got, tt.want)
			}
		})
	}
}

func TestExactSkipsPatternMatching(t *testing.T) {
	s := NewSet("GET /users/{id}")

	if Evaluate(s, false, ModeExact, "GET /users/42") {
		t.Error("exact mode must not pattern-match")
	}
	if !Evaluate(s, false, ModeExact, "GET /users/{id}") {
		t.Error("exact mode should match the literal serialized form")
	}
}

func TestSuperuserBypassesEverything(t *testing.T) {
	empty := NewSet()

	if !Evaluate(empty, true, ModeAll, "GET /anything") {
		t.Error("superuser must bypass ALL")
	}
	if !Evaluate(empty, true, ModeAny, "no such perm") {
		t.Error("superuser must bypass ANY")
	}
	if !Evaluate(empty, true, ModeExact, "GET /a", "GET /b") {
		t.Error("superuser must bypass EXACT arity rules")
	}
	if !Evaluate(empty, true, ModeAll, "") {
		t.Error("superuser must bypass malformed requirements")
	}
}

func TestEmptyRequirementAllowed(t *testing.T) {
	s := NewSet("GET /a")
	if !Evaluate(s, false, ModeAll) {
		t.Error("empty requirement should be granted")
	}
	if !Evaluate(NewSet(), false, ModeAny) {
		t.Error("empty requirement should be granted even with empty set")
	}
}

func TestMalformedRequirementDenied(t *testing.T) {
	s := NewSet("GET /a")

	for _, req := range []string{"", "   ", "GET users", "G3T /users"} {
		if Evaluate(s, false, ModeAll, req) {
			t.Errorf("malformed requirement %q must be denied", req)
		}
	}
}

func TestNilSetDenies(t *testing.T) {
	if Evaluate(nil, false, ModeAll, "GET /a") {
		t.Error("nil set must deny")
	}
	if !Evaluate(nil, true, ModeAll, "GET /a") {
		t.Error("superuser must be granted even with nil set")
	}
}

func TestMultiParamTemplates(t *testing.T) {
	s := NewSet("PUT /users/{id}/roles/{roleId}")

	if !Evaluate(s, false, ModeAll, "PUT /users/7/roles/3") {
		t.Error("multi-parameter template should cover literal path")
	}
	if Evaluate(s, false, ModeAll, "PUT /users/7/roles") {
		t.Error("shorter path must be denied")
	}
	if !Evaluate(s, false, ModeAll, "PUT /users/{uid}/roles/{rid}") {
		t.Error("renamed parameters should still match")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"all", ModeAll},
		{"ANY", ModeAny},
		{" exact ", ModeExact},
		{"", ModeAll},
		{"bogus", ModeAll},
	}

	for _, tt := range tests {
		if got := ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
