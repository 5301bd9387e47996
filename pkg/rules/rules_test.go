package rules

import (
	"testing"

	"github.com/ritzau/layerlint/pkg/model"
)

func layerTable() *LayerTable {
	return NewLayerTable([]string{"stream", "providers", "types", "utils"})
}

func TestClassify(t *testing.T) {
	table := layerTable()

	tests := []struct {
		source   model.ModuleID
		target   model.ModuleID
		expected model.Classification
	}{
		{"utils::json", "stream", model.Violating},
		{"stream", "utils::json", model.Conforming},
		{"stream::sender", "stream::receiver", model.Conforming}, // same rank
		{"providers", "types", model.Conforming},
		{"types", "providers", model.Violating},
		{"stream", "vendor", model.Inapplicable},
		{"vendor", "stream", model.Inapplicable},
		{"vendor", "extras", model.Inapplicable},
	}

	for _, tt := range tests {
		result := table.Classify(tt.source, tt.target)
		if result != tt.expected {
			t.Errorf("Classify(%s, %s) = %s, want %s", tt.source, tt.target, result, tt.expected)
		}
	}
}

func TestClassifyIsPure(t *testing.T) {
	table := layerTable()
	for i := 0; i < 3; i++ {
		if got := table.Classify("utils::json", "stream"); got != model.Violating {
			t.Fatalf("Run %d: Classify = %s, want %s", i, got, model.Violating)
		}
	}
}

func TestRank(t *testing.T) {
	table := layerTable()

	if r, ok := table.Rank("stream"); !ok || r != 0 {
		t.Errorf("Rank(stream) = %d, %v; want 0, true", r, ok)
	}
	if r, ok := table.Rank("utils"); !ok || r != 3 {
		t.Errorf("Rank(utils) = %d, %v; want 3, true", r, ok)
	}
	if _, ok := table.Rank("vendor"); ok {
		t.Error("Rank(vendor) should not be registered")
	}
}

func TestRule(t *testing.T) {
	table := layerTable()
	want := "stream → providers → types → utils"
	if table.Rule() != want {
		t.Errorf("Rule() = %q, want %q", table.Rule(), want)
	}
}
