package parser

import (
	"github.com/ritzau/layerlint/pkg/model"
)

// ParseTree expands a token stream into the set of flat segment paths
// the declaration names. Grouping nests to arbitrary depth: a group
// mid-path shares the prefix before it with every path produced inside,
// and sibling groups at one level are separated by commas.
//
// Malformed input degrades instead of failing: an unmatched close-group
// ends the enclosing parse early and whatever paths were accumulated
// are still emitted.
func ParseTree(tokens []Token) []model.Path {
	paths, _ := parseEntries(tokens, nil, 0)
	return paths
}

// parseEntries consumes comma-separated entries until the stream ends
// or the current group closes, returning the expanded paths and the
// index of the next unconsumed token.
func parseEntries(tokens []Token, prefix model.Path, idx int) ([]model.Path, int) {
	var results []model.Path
	var path model.Path

	for idx < len(tokens) {
		tok := tokens[idx]
		switch tok.Kind {
		case TokenComma:
			if len(path) > 0 {
				results = append(results, concat(prefix, path))
				path = nil
			}
			idx++
		case TokenCloseGroup:
			if len(path) > 0 {
				results = append(results, concat(prefix, path))
			}
			return results, idx + 1
		case TokenOpenGroup:
			nested, next := parseEntries(tokens, concat(prefix, path), idx+1)
			results = append(results, nested...)
			path = nil
			idx = next
		case TokenPathSep:
			// structural, contributes no segment
			idx++
		default:
			path = append(path, segment(tok))
			idx++
		}
	}

	if len(path) > 0 {
		results = append(results, concat(prefix, path))
	}
	return results, idx
}

// segment maps a token to its path segment, turning the reserved
// keywords into marker segments.
func segment(tok Token) model.Segment {
	if tok.Kind == TokenWildcard {
		return model.Wildcard
	}
	switch tok.Text {
	case "crate":
		return model.Root
	case "super":
		return model.Parent
	case "self":
		return model.Self
	default:
		return model.Ident(tok.Text)
	}
}

// concat returns a fresh slice; entries at one nesting level must not
// alias each other's backing arrays.
func concat(prefix, path model.Path) model.Path {
	out := make(model.Path, 0, len(prefix)+len(path))
	out = append(out, prefix...)
	return append(out, path...)
}
