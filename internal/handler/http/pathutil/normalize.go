// Package pathutil maps request paths onto a bounded set of metric labels.
package pathutil

import "strings"

// Other labels every path outside the known routes.
const Other = "other"

var knownRoutes = map[string]struct{}{
	"/api/news":        {},
	"/api/news/health": {},
	"/metrics":         {},
	"/health":          {},
	"/health/ready":    {},
}

// NormalizePath returns path when it is a known route and Other otherwise, so
// scanners probing random URLs cannot inflate label cardinality. Query strings
// and a trailing slash are ignored.
//
//	NormalizePath("/api/news")         // "/api/news"
//	NormalizePath("/api/news/")        // "/api/news"
//	NormalizePath("/wp-login.php")     // "other"
func NormalizePath(path string) string {
	if i := strings.IndexByte(path, '?'); i != -1 {
		path = path[:i]
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	if _, ok := knownRoutes[path]; ok {
		return path
	}
	return Other
}
