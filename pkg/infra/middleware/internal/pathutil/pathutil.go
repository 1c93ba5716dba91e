// Package pathutil provides path matching helpers shared by HTTP middleware.
package pathutil

import "strings"

// Matcher reports whether a request path matches the configured skip rules.
type Matcher func(path string) bool

// NewPathMatcher builds a Matcher from exact paths and path prefixes.
// Exact paths are matched via a map lookup, prefixes via strings.HasPrefix.
func NewPathMatcher(paths, prefixes []string) Matcher {
	exact := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if p != "" {
			exact[p] = struct{}{}
		}
	}

	// 预过滤空前缀，避免每次请求都命中。
	prefixList := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		if p != "" {
			prefixList = append(prefixList, p)
		}
	}

	return func(path string) bool {
		if _, ok := exact[path]; ok {
			return true
		}
		for _, prefix := range prefixList {
			if strings.HasPrefix(path, prefix) {
				return true
			}
		}
		return false
	}
}

// ShouldSkip is a one-shot convenience wrapper around NewPathMatcher.
// Middleware that matches on every request should build a Matcher once instead.
func ShouldSkip(path string, paths, prefixes []string) bool {
	for _, p := range paths {
		if p == path {
			return true
		}
	}
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
