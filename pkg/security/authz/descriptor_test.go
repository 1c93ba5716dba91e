package authz

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind Kind
		str  string
	}{
		{"opaque token", "system:user:add", KindToken, "system:user:add"},
		{"simple route", "GET /api/v1/users", KindRoute, "GET /api/v1/users"},
		{"lowercase method normalized", "get /api/v1/users", KindRoute, "GET /api/v1/users"},
		{"parameterized route", "GET /users/{id}", KindRoute, "GET /users/{id}"},
		{"wildcard route", "DELETE /a/*", KindRoute, "DELETE /a/*"},
		{"surrounding spaces trimmed", "  POST /login  ", KindRoute, "POST /login"},
		{"empty", "", KindMalformed, ""},
		{"blank", "   ", KindMalformed, ""},
		{"missing slash", "GET users", KindMalformed, "GET users"},
		{"numeric method", "G3T /users", KindMalformed, "G3T /users"},
		{"path with spaces", "GET /a b/c", KindMalformed, "GET /a b/c"},
		{"token with tab", "bad\ttoken", KindMalformed, "bad\ttoken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Parse(tt.in)
			if d.Kind() != tt.kind {
				t.Errorf("Parse(%q).Kind() = %v, want %v", tt.in, d.Kind(), tt.kind)
			}
			if d.String() != tt.str {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.in, d.String(), tt.str)
			}
		})
	}
}

func TestRoute(t *testing.T) {
	d := Route("get", "/api/v1/menus")
	if d.Kind() != KindRoute {
		t.Fatalf("Kind = %v, want KindRoute", d.Kind())
	}
	if d.Method() != "GET" {
		t.Errorf("Method = %q, want GET", d.Method())
	}
	if d.Path() != "/api/v1/menus" {
		t.Errorf("Path = %q", d.Path())
	}
}

func TestNormalized(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"GET /users/{id}", "GET /users/*"},
		{"GET /users/{id}/roles/{roleId}", "GET /users/*/roles/*"},
		{"GET /users/42", "GET /users/42"},
		{"GET /a/*", "GET /a/*"},
		{"system:user:add", "system:user:add"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Parse(tt.in).Normalized().String()
			if got != tt.want {
				t.Errorf("Normalized(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSetDropsMalformed(t *testing.T) {
	s := NewSet("GET /ok", "not a path", "")
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
	// Malformed strings never match, not even by string equality.
	if Evaluate(s, false, ModeAll, "not a path") {
		t.Error("malformed requirement must not match a malformed set entry")
	}
}

func TestSetListSorted(t *testing.T) {
	s := NewSet("system:z", "system:a", "GET /b", "GET /a")
	list := s.List()
	for i := 1; i < len(list); i++ {
		if list[i-1] > list[i] {
			t.Fatalf("List() not sorted: %v", list)
		}
	}
}

func TestSetTokens(t *testing.T) {
	s := NewSet("system:user:add", "GET /users", "system:user:del")
	tokens := s.Tokens()
	if len(tokens) != 2 {
		t.Fatalf("Tokens() = %v, want 2 entries", tokens)
	}
	if tokens[0] != "system:user:add" || tokens[1] != "system:user:del" {
		t.Errorf("Tokens() = %v", tokens)
	}
}

func TestSetUnion(t *testing.T) {
	a := NewSet("GET /a")
	b := NewSet("GET /b", "GET /a")
	u := a.Union(b)
	if u.Len() != 2 {
		t.Errorf("Union Len = %d, want 2", u.Len())
	}
	if !u.Contains("GET /a") || !u.Contains("GET /b") {
		t.Errorf("Union missing members: %v", u.List())
	}
}
