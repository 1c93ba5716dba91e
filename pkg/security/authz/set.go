package authz

import (
	"sort"
)

// Set is an aggregate permission set: the union of opaque permission codes
// and route descriptors granted to a subject. A Set is immutable after
// construction from the caller's point of view; Add is only used while
// building.
type Set struct {
	// direct holds canonical serialized forms for O(1) membership.
	direct map[string]struct{}

	// normalized holds serialized forms with parameters rewritten to the
	// wildcard, for the normalization re-check.
	normalized map[string]struct{}

	// routes holds parsed route descriptors for the segment-wise fallback.
	routes []Descriptor
}

// NewSet builds a Set from serialized permission strings.
// Malformed entries are dropped: they can never match, so keeping them
// would only create accidental string-equality grants.
func NewSet(perms ...string) *Set {
	s := &Set{
		direct:     make(map[string]struct{}, len(perms)),
		normalized: make(map[string]struct{}, len(perms)),
	}
	for _, p := range perms {
		s.Add(p)
	}
	return s
}

// Add parses and inserts one permission string.
func (s *Set) Add(perm string) {
	d := Parse(perm)
	if d.Kind() == KindMalformed {
		return
	}

	key := d.String()
	if _, ok := s.direct[key]; ok {
		return
	}
	s.direct[key] = struct{}{}
	s.normalized[d.Normalized().String()] = struct{}{}
	if d.Kind() == KindRoute {
		s.routes = append(s.routes, d)
	}
}

// Contains reports direct membership of the canonical serialized form.
func (s *Set) Contains(serialized string) bool {
	if s == nil {
		return false
	}
	_, ok := s.direct[serialized]
	return ok
}

// containsNormalized reports membership in the wildcard-normalized index.
func (s *Set) containsNormalized(serialized string) bool {
	_, ok := s.normalized[serialized]
	return ok
}

// Len returns the number of distinct permissions in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.direct)
}

// List returns a sorted snapshot of the serialized permissions.
func (s *Set) List() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.direct))
	for p := range s.direct {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Tokens returns the sorted opaque permission codes in the set.
// Route descriptors are excluded.
func (s *Set) Tokens() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.direct))
	for p := range s.direct {
		if Parse(p).Kind() == KindToken {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// Union returns a new Set containing the permissions of both sets.
func (s *Set) Union(other *Set) *Set {
	merged := NewSet()
	if s != nil {
		for p := range s.direct {
			merged.Add(p)
		}
	}
	if other != nil {
		for p := range other.direct {
			merged.Add(p)
		}
	}
	return merged
}
