// Package discovery enumerates the transform classes a profiler can track.
package discovery

import "augkit/transform"

// Target pairs a class with the tracked methods it actually defines.
type Target struct {
	Class   *transform.Class
	Methods []transform.Method
}

// Discover returns, in registry order, every class defining at least one of
// methods. It has no side effects.
func Discover(reg *transform.Registry, methods []transform.Method) []Target {
	var out []Target
	for _, c := range reg.Classes() {
		var found []transform.Method
		for _, m := range methods {
			if c.Has(m) {
				found = append(found, m)
			}
		}
		if len(found) > 0 {
			out = append(out, Target{Class: c, Methods: found})
		}
	}
	return out
}
