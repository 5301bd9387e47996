// Package render produces the textual graph description consumed by an
// external graph-layout tool (graphviz).
package render

import (
	"fmt"
	"strings"

	"github.com/ritzau/layerlint/pkg/analysis"
	"github.com/ritzau/layerlint/pkg/model"
)

// Edge colors by classification.
const (
	ColorOK        = "#2e7d32"
	ColorViolation = "#c62828"
	ColorNA        = "#616161"
)

// BuildDOT renders the module graph as a Graphviz digraph: every module
// as a node, every classified edge with color/label/penwidth, and a
// legend cluster. Nodes and edges come pre-sorted from the analysis
// result, so output is byte-identical across reruns.
func BuildDOT(result *analysis.Result) string {
	var b strings.Builder

	b.WriteString("digraph dependencies {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, fontname=\"Helvetica\", fontsize=10];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=9, arrowsize=0.7];\n")

	for _, module := range result.Modules {
		fmt.Fprintf(&b, "  %q;\n", string(module))
	}

	for _, edge := range result.Edges {
		color, penwidth := style(edge.Classification)
		fmt.Fprintf(&b, "  %q -> %q [color=%q, label=%q, penwidth=%s];\n",
			string(edge.Source), string(edge.Target),
			color, edge.Classification.Label(), penwidth)
	}

	b.WriteString("  subgraph cluster_legend {\n")
	b.WriteString("    label=\"Legend\";\n")
	b.WriteString("    fontsize=10;\n")
	b.WriteString("    legend [shape=plaintext, label=<\n")
	b.WriteString("      <table border=\"0\" cellborder=\"1\" cellspacing=\"0\" cellpadding=\"4\">\n")
	fmt.Fprintf(&b, "        <tr><td><font color=%q>ok</font></td><td>dependency follows intended layer order</td></tr>\n", ColorOK)
	fmt.Fprintf(&b, "        <tr><td><font color=%q>violation</font></td><td>lower layer depends on higher (%s)</td></tr>\n", ColorViolation, result.Rule)
	fmt.Fprintf(&b, "        <tr><td><font color=%q>n/a</font></td><td>outside layer set</td></tr>\n", ColorNA)
	b.WriteString("      </table>\n")
	b.WriteString("    >];\n")
	b.WriteString("  }\n")
	b.WriteString("}\n")

	return b.String()
}

func style(c model.Classification) (color, penwidth string) {
	switch c {
	case model.Violating:
		return ColorViolation, "2.0"
	case model.Conforming:
		return ColorOK, "1.2"
	default:
		return ColorNA, "1.0"
	}
}
