package parser

import (
	"reflect"
	"testing"
)

func TestStripComments(t *testing.T) {
	text := "use a::b; // trailing\n/* use c::d; */\nuse e::f; /* inline */ use g;"
	stripped := StripComments(text)

	imports := ExtractImports(stripped)
	for _, imp := range imports {
		if imp == "use c::d;" {
			t.Error("commented-out import should not survive comment stripping")
		}
	}
}

func TestExtractImports(t *testing.T) {
	text := `
//! module docs with use inside: use fake::path;
use crate::types::Message;

pub use error::{Error, Result};

pub(crate) use shared::build_http_client;

fn main() {
    let x = 1; // use nothing;
}

use std::collections::{
    HashMap,
    HashSet,
};
`
	imports := ExtractImports(text)
	if len(imports) != 4 {
		t.Fatalf("Expected 4 import declarations, got %d: %v", len(imports), imports)
	}

	// Multi-line declarations are matched whole, up to the terminator
	last := Compress(imports[3])
	want := "use std::collections::{ HashMap, HashSet, };"
	if last != want {
		t.Errorf("Expected %q, got %q", want, last)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		stmt     string
		expected string
	}{
		{"use a::b;", "a::b"},
		{"pub use a::b;", "a::b"},
		{"pub(crate) use shared::http;", "shared::http"},
		{"pub(super) use inner::thing;", "inner::thing"},
		{"use a::b as c;", "a::b"},
		{"use a::{b as c, d as e};", "a::{b, d}"},
		{"  use   a::b ;  ", "a::b"},
	}

	for _, tt := range tests {
		result := Normalize(tt.stmt)
		if result != tt.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tt.stmt, result, tt.expected)
		}
	}
}

func TestParseStatement(t *testing.T) {
	stmt := ParseStatement("pub use a::{b, c};")

	if stmt.Text != "pub use a::{b, c};" {
		t.Errorf("Expected raw compressed text as evidence, got %q", stmt.Text)
	}
	if len(stmt.Paths) != 2 {
		t.Fatalf("Expected 2 paths, got %d", len(stmt.Paths))
	}

	want := [][]string{{"a", "b"}, {"a", "c"}}
	for i, path := range stmt.Paths {
		var names []string
		for _, seg := range path {
			names = append(names, seg.Name)
		}
		if !reflect.DeepEqual(names, want[i]) {
			t.Errorf("Path %d = %v, want %v", i, names, want[i])
		}
	}
}
