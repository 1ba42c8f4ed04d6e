// Package imageurl turns evidence image paths into absolute URLs.
package imageurl

import "strings"

//nolint:gochecknoglobals // configuration data, effectively const
var absoluteSchemes = []string{"http://", "https://"}

// DefaultOrigins are the local analysis backends, primary first.
func DefaultOrigins() []string {
	return []string{
		"http://127.0.0.1:8000",
		"http://localhost:8000",
		"http://127.0.0.1:5000",
		"http://localhost:5000",
	}
}

// Resolver joins relative paths onto the primary origin. Only Origins[0] is ever used; the rest are
// kept for collaborators that probe candidates at request time.
type Resolver struct {
	Origins []string
}

// New returns a resolver over a copy of origins.
func New(origins []string) *Resolver {
	return &Resolver{Origins: append([]string(nil), origins...)}
}

// Primary returns the origin used for resolution, or "" when none is configured.
func (r *Resolver) Primary() string {
	if r == nil || len(r.Origins) == 0 {
		return ""
	}

	return r.Origins[0]
}

// Resolve returns an absolute URL for path. Empty paths resolve to "". Absolute URLs are returned
// unchanged. Without a configured origin the path is returned as is.
func (r *Resolver) Resolve(path string) string {
	if path == "" {
		return ""
	}

	for _, scheme := range absoluteSchemes {
		if strings.HasPrefix(path, scheme) {
			return path
		}
	}

	origin := r.Primary()
	if origin == "" {
		return path
	}

	return strings.TrimSuffix(origin, "/") + "/" + strings.TrimPrefix(path, "/")
}
