// Package authz implements the Atlas permission evaluation engine.
//
// A permission descriptor is either an opaque token ("system:user:add") or a
// route descriptor: an HTTP method plus a path template, serialized as
// "{METHOD} {path}" (for example "GET /api/v1/users/{id}"). Path templates
// may contain parameter segments ("{id}") and wildcard segments ("*").
//
// Evaluation is a pure function of the aggregate permission set and the
// requirement: no I/O, no clock, no global state. Anything that does not
// parse as one of the two shapes never matches (fail closed).
package authz

import (
	"strings"
)

// Wildcard is the segment that matches any single path segment.
const Wildcard = "*"

// Kind classifies a parsed descriptor.
type Kind int

const (
	// KindMalformed marks strings that parse as neither shape.
	// Malformed descriptors never match anything.
	KindMalformed Kind = iota

	// KindToken is an opaque permission code without whitespace.
	KindToken

	// KindRoute is a method plus path template.
	KindRoute
)

// Descriptor is a single parsed permission descriptor.
type Descriptor struct {
	kind     Kind
	raw      string
	method   string
	path     string
	segments []string
}

// Parse parses a permission descriptor string.
// The method of a route descriptor is normalized to upper case; everything
// else is kept as written so serialization stays stable.
func Parse(s string) Descriptor {
	s = strings.TrimSpace(s)
	if s == "" {
		return Descriptor{kind: KindMalformed, raw: s}
	}

	idx := strings.IndexByte(s, ' ')
	if idx < 0 {
		// No separator: opaque token, unless it contains other whitespace.
		if strings.ContainsAny(s, "\t\n\r") {
			return Descriptor{kind: KindMalformed, raw: s}
		}
		return Descriptor{kind: KindToken, raw: s}
	}

	method := strings.ToUpper(s[:idx])
	path := strings.TrimSpace(s[idx+1:])
	if !isMethod(method) || !strings.HasPrefix(path, "/") || strings.ContainsAny(path, " \t\n\r") {
		return Descriptor{kind: KindMalformed, raw: s}
	}

	return Descriptor{
		kind:     KindRoute,
		raw:      s,
		method:   method,
		path:     path,
		segments: splitPath(path),
	}
}

// Route builds a route descriptor from a method and path template.
func Route(method, path string) Descriptor {
	return Parse(strings.ToUpper(strings.TrimSpace(method)) + " " + strings.TrimSpace(path))
}

// Kind returns the descriptor kind.
func (d Descriptor) Kind() Kind {
	return d.kind
}

// Method returns the HTTP method of a route descriptor, "" otherwise.
func (d Descriptor) Method() string {
	return d.method
}

// Path returns the path template of a route descriptor, "" otherwise.
func (d Descriptor) Path() string {
	return d.path
}

// String returns the canonical serialized form: the raw token for opaque
// tokens, "{METHOD} {path}" for route descriptors.
func (d Descriptor) String() string {
	if d.kind == KindRoute {
		return d.method + " " + d.path
	}
	return d.raw
}

// Normalized returns a copy with every parameter segment replaced by the
// wildcard. Tokens and malformed descriptors are returned unchanged.
func (d Descriptor) Normalized() Descriptor {
	if d.kind != KindRoute || !d.hasParams() {
		return d
	}

	segs := make([]string, len(d.segments))
	changed := false
	for i, seg := range d.segments {
		if isParam(seg) {
			segs[i] = Wildcard
			changed = true
		} else {
			segs[i] = seg
		}
	}
	if !changed {
		return d
	}

	path := "/" + strings.Join(segs, "/")
	return Descriptor{
		kind:     KindRoute,
		raw:      d.method + " " + path,
		method:   d.method,
		path:     path,
		segments: segs,
	}
}

func (d Descriptor) hasParams() bool {
	for _, seg := range d.segments {
		if isParam(seg) {
			return true
		}
	}
	return false
}

// isMethod reports whether s looks like an HTTP method token.
func isMethod(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// isParam reports whether a path segment is a "{name}" parameter.
func isParam(seg string) bool {
	return len(seg) >= 2 && seg[0] == '{' && seg[len(seg)-1] == '}'
}

// splitPath splits a path template into segments. The leading slash is
// dropped; "/" yields no segments.
func splitPath(path string) []string {
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
