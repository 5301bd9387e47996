package render

import (
	"strings"
	"testing"

	"github.com/ritzau/layerlint/pkg/analysis"
	"github.com/ritzau/layerlint/pkg/rules"
)

func testResult() *analysis.Result {
	files := []analysis.SourceFile{
		{Rel: "stream/mod.rs", Path: "src/stream/mod.rs", Text: "use crate::types::Message;"},
		{Rel: "types/mod.rs", Path: "src/types/mod.rs", Text: ""},
		{Rel: "utils/mod.rs", Path: "src/utils/mod.rs", Text: "use crate::stream::Sender;"},
	}
	layers := rules.NewLayerTable([]string{"stream", "providers", "types", "utils"})
	return analysis.Run(files, layers)
}

func TestBuildDOTStructure(t *testing.T) {
	dot := BuildDOT(testResult())

	for _, want := range []string{
		"digraph dependencies {",
		"rankdir=LR;",
		`"stream";`,
		`"types";`,
		`"utils";`,
		`"stream" -> "types" [color="#2e7d32", label="ok", penwidth=1.2];`,
		`"utils" -> "stream" [color="#c62828", label="violation", penwidth=2.0];`,
		"subgraph cluster_legend {",
		"stream → providers → types → utils",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q", want)
		}
	}

	if !strings.HasSuffix(dot, "}\n") {
		t.Error("DOT output should end with closing brace")
	}
}

func TestBuildDOTNodeOrder(t *testing.T) {
	dot := BuildDOT(testResult())

	// Node declarations appear sorted by module name.
	stream := strings.Index(dot, `"stream";`)
	types := strings.Index(dot, `"types";`)
	utils := strings.Index(dot, `"utils";`)
	if stream < 0 || types < 0 || utils < 0 {
		t.Fatal("Missing node declarations")
	}
	if !(stream < types && types < utils) {
		t.Error("Node declarations out of sorted order")
	}
}

func TestBuildDOTDeterministic(t *testing.T) {
	result := testResult()
	first := BuildDOT(result)
	for i := 0; i < 5; i++ {
		if got := BuildDOT(result); got != first {
			t.Fatalf("DOT output differs on rerun %d", i)
		}
	}

	// A fresh pipeline run over the same input renders identically too.
	if got := BuildDOT(testResult()); got != first {
		t.Error("DOT output differs across pipeline runs")
	}
}
