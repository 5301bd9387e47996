package parser

import (
	"testing"

	"github.com/ritzau/layerlint/pkg/model"
)

func expandBody(t *testing.T, body string) []string {
	t.Helper()
	paths := ParseTree(Tokenize(body))
	rendered := make([]string, len(paths))
	for i, p := range paths {
		rendered[i] = p.String()
	}
	return rendered
}

func TestParseTreeSimplePath(t *testing.T) {
	paths := expandBody(t, "a::b::c")
	if len(paths) != 1 || paths[0] != "a::b::c" {
		t.Errorf("Expected [a::b::c], got %v", paths)
	}
}

func TestParseTreeNestedGroups(t *testing.T) {
	paths := expandBody(t, "a::{b, c::{d, e}}")

	want := []string{"a::b", "a::c::d", "a::c::e"}
	if len(paths) != len(want) {
		t.Fatalf("Expected %d paths, got %d: %v", len(want), len(paths), paths)
	}
	for i, p := range paths {
		if p != want[i] {
			t.Errorf("Path %d = %q, want %q", i, p, want[i])
		}
	}
}

func TestParseTreeGroupMidPath(t *testing.T) {
	// The prefix before a group is shared by every path inside it,
	// including paths that continue after nested expansion.
	paths := expandBody(t, "a::{b::c, b::d}::e")

	// Trailing segments after a close-group start a fresh entry; the
	// original grammar never produces them, but they must not crash.
	if len(paths) < 2 {
		t.Fatalf("Expected at least the 2 grouped paths, got %v", paths)
	}
	if paths[0] != "a::b::c" || paths[1] != "a::b::d" {
		t.Errorf("Grouped paths = %v, want [a::b::c a::b::d ...]", paths)
	}
}

func TestParseTreeSiblingGroups(t *testing.T) {
	paths := expandBody(t, "a::{b, c}, d::{e, f}")

	want := []string{"a::b", "a::c", "d::e", "d::f"}
	if len(paths) != len(want) {
		t.Fatalf("Expected %d paths, got %d: %v", len(want), len(paths), paths)
	}
	for i, p := range paths {
		if p != want[i] {
			t.Errorf("Path %d = %q, want %q", i, p, want[i])
		}
	}
}

func TestParseTreeDeepNesting(t *testing.T) {
	paths := expandBody(t, "a::{b::{c::{d, e}, f}, g}")

	want := []string{"a::b::c::d", "a::b::c::e", "a::b::f", "a::g"}
	if len(paths) != len(want) {
		t.Fatalf("Expected %d paths, got %d: %v", len(want), len(paths), paths)
	}
	for i, p := range paths {
		if p != want[i] {
			t.Errorf("Path %d = %q, want %q", i, p, want[i])
		}
	}
}

func TestParseTreeMarkerEntries(t *testing.T) {
	// self and wildcard are valid terminal entries inside a group
	paths := ParseTree(Tokenize("a::{self, b, *}"))

	if len(paths) != 3 {
		t.Fatalf("Expected 3 paths, got %d", len(paths))
	}
	if paths[0][1].Kind != model.SegmentSelf {
		t.Errorf("Expected self marker, got %v", paths[0][1])
	}
	if paths[2][1].Kind != model.SegmentWildcard {
		t.Errorf("Expected wildcard marker, got %v", paths[2][1])
	}
}

func TestParseTreeKeywordSegments(t *testing.T) {
	paths := ParseTree(Tokenize("crate::a::b"))
	if len(paths) != 1 {
		t.Fatalf("Expected 1 path, got %d", len(paths))
	}
	if paths[0][0].Kind != model.SegmentRoot {
		t.Errorf("Expected root marker first, got %v", paths[0][0])
	}

	paths = ParseTree(Tokenize("super::super::x"))
	if len(paths) != 1 || paths[0][0].Kind != model.SegmentParent || paths[0][1].Kind != model.SegmentParent {
		t.Errorf("Expected two leading parent markers, got %v", paths)
	}
}

func TestParseTreeUnbalanced(t *testing.T) {
	// An unmatched close-group ends the parse early; accumulated paths
	// are still emitted instead of dropping the whole statement.
	paths := expandBody(t, "a::{b, c}}")
	want := []string{"a::b", "a::c"}
	if len(paths) != len(want) {
		t.Fatalf("Expected %d paths, got %d: %v", len(want), len(paths), paths)
	}

	// An unclosed group still yields its entries seen so far
	paths = expandBody(t, "a::{b, c")
	if len(paths) != 2 || paths[0] != "a::b" || paths[1] != "a::c" {
		t.Errorf("Expected [a::b a::c], got %v", paths)
	}
}

func TestTokenizeSkipsUnknownBytes(t *testing.T) {
	tokens := Tokenize("a?::b")
	if len(tokens) != 3 {
		t.Fatalf("Expected 3 tokens, got %d: %v", len(tokens), tokens)
	}
	if tokens[0].Text != "a" || tokens[1].Kind != TokenPathSep || tokens[2].Text != "b" {
		t.Errorf("Unexpected token stream: %v", tokens)
	}
}
