package authz

import (
	"strings"
)

// Mode selects how a multi-descriptor requirement combines.
type Mode string

const (
	// ModeAll grants only when every required descriptor is satisfied.
	ModeAll Mode = "all"

	// ModeAny grants when at least one required descriptor is satisfied.
	ModeAny Mode = "any"

	// ModeExact grants only when the requirement is a single descriptor
	// that is directly present in the set. No pattern matching.
	ModeExact Mode = "exact"
)

// ParseMode maps a string to a Mode, defaulting to ModeAll.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeAny:
		return ModeAny
	case ModeExact:
		return ModeExact
	default:
		return ModeAll
	}
}

// Evaluate reports whether the permission set satisfies the requirement.
//
// A superuser is granted before any descriptor inspection. An empty
// requirement is granted: elements that declare no permission are visible
// to every authenticated subject. Otherwise each descriptor is checked
// per checkOne and combined according to mode.
func Evaluate(set *Set, superuser bool, mode Mode, required ...string) bool {
	if superuser {
		return true
	}
	if len(required) == 0 {
		return true
	}

	switch mode {
	case ModeAny:
		for _, r := range required {
			if checkOne(set, Parse(r)) {
				return true
			}
		}
		return false
	case ModeExact:
		if len(required) != 1 {
			return false
		}
		d := Parse(required[0])
		if d.Kind() == KindMalformed {
			return false
		}
		return set.Contains(d.String())
	default: // ModeAll
		for _, r := range required {
			if !checkOne(set, Parse(r)) {
				return false
			}
		}
		return true
	}
}

// checkOne decides a single descriptor against the set:
//
//  1. direct membership
//  2. opaque tokens stop here: no pattern matching on codes
//  3. wildcard-normalize the requirement and re-check membership
//  4. segment-wise route fallback
//  5. deny
func checkOne(set *Set, d Descriptor) bool {
	if set == nil || d.Kind() == KindMalformed {
		return false
	}

	if set.Contains(d.String()) {
		return true
	}

	if d.Kind() == KindToken {
		return false
	}

	if norm := d.Normalized(); norm.String() != d.String() && set.containsNormalized(norm.String()) {
		return true
	}

	for _, perm := range set.routes {
		if routeMatch(perm, d) {
			return true
		}
	}
	return false
}

// routeMatch reports whether a granted route permission covers the required
// route descriptor. Methods must be equal and segment counts must be equal:
// a trailing wildcard never swallows additional segments.
func routeMatch(perm, req Descriptor) bool {
	if perm.method != req.method {
		return false
	}
	if len(perm.segments) != len(req.segments) {
		return false
	}
	for i := range perm.segments {
		if !segmentMatch(perm.segments[i], req.segments[i]) {
			return false
		}
	}
	return true
}

// segmentMatch compares one permission segment against one requirement
// segment. A wildcard or parameter in the permission matches anything; a
// parameter in the requirement is only covered by a parameter or wildcard,
// never by a differing literal.
func segmentMatch(permSeg, reqSeg string) bool {
	if permSeg == Wildcard || isParam(permSeg) {
		return true
	}
	if isParam(reqSeg) {
		return false
	}
	return permSeg == reqSeg
}
