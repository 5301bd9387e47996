// Package resolve rewrites relative import paths into absolute module
// paths and matches them against the set of known modules.
package resolve

import (
	"github.com/ritzau/layerlint/pkg/model"
)

// Resolve rewrites one flat segment path into an absolute segment list,
// relative to the importing module's own segments. The second return is
// false when nothing resolvable remains (empty path, or markers only).
//
// A leading root marker makes the rest absolute from the tree root.
// Otherwise each leading parent marker pops one segment off the
// importer's position, clamped at the root, and a following self marker
// is dropped. Trailing wildcard/self markers denote the module itself
// and are stripped before matching.
func Resolve(path model.Path, current []string) ([]string, bool) {
	if len(path) == 0 {
		return nil, false
	}

	var base []string
	rest := path

	if rest[0].Kind == model.SegmentRoot {
		rest = rest[1:]
	} else {
		base = append(base, current...)
		for len(rest) > 0 && rest[0].Kind == model.SegmentParent {
			if len(base) > 0 {
				base = base[:len(base)-1]
			}
			rest = rest[1:]
		}
		if len(rest) > 0 && rest[0].Kind == model.SegmentSelf {
			rest = rest[1:]
		}
	}

	resolved := base
	for _, seg := range rest {
		switch seg.Kind {
		case model.SegmentIdent:
			resolved = append(resolved, seg.Name)
		case model.SegmentWildcard:
			resolved = append(resolved, "*")
		case model.SegmentSelf:
			resolved = append(resolved, "self")
		default:
			// root/parent past the head have no meaning; skip
		}
	}

	resolved = stripTrailingMarkers(resolved)
	if len(resolved) == 0 {
		return nil, false
	}
	return resolved, true
}

// stripTrailingMarkers drops trailing "*" and "self" segments: they
// point at the module itself, not a sub-target inside it.
func stripTrailingMarkers(segments []string) []string {
	for len(segments) > 0 {
		last := segments[len(segments)-1]
		if last != "*" && last != "self" {
			break
		}
		segments = segments[:len(segments)-1]
	}
	return segments
}

// Match finds the longest known module identity that is a prefix of the
// absolute segment path. Trying the full path first and dropping one
// trailing segment at a time resolves imports of a symbol inside a
// module to the module that defines it. Returns false when no known
// module is a prefix, which is the normal case for external crates.
func Match(segments []string, modules map[model.ModuleID]bool) (model.ModuleID, bool) {
	for end := len(segments); end > 0; end-- {
		candidate := model.ModuleFromSegments(segments[:end])
		if modules[candidate] {
			return candidate, true
		}
	}
	return "", false
}
