// Package analysis runs the full layering pipeline: index modules,
// extract and expand imports, resolve targets, accumulate edges, and
// classify them against the configured layer order.
package analysis

import (
	"github.com/ritzau/layerlint/pkg/cycles"
	"github.com/ritzau/layerlint/pkg/graph"
	"github.com/ritzau/layerlint/pkg/index"
	"github.com/ritzau/layerlint/pkg/logging"
	"github.com/ritzau/layerlint/pkg/model"
	"github.com/ritzau/layerlint/pkg/parser"
	"github.com/ritzau/layerlint/pkg/rules"
)

// SourceFile is one input to the pipeline: Rel locates the file inside
// the analyzed source root and drives its module identity; Path is how
// the file appears in evidence and reports (typically prefixed with the
// source directory).
type SourceFile struct {
	Rel  string
	Path string
	Text string
}

// Result is the frozen outcome of one pipeline run. It is never
// mutated after Run returns.
type Result struct {
	Modules     []model.ModuleID              `json:"modules"`
	ModuleFiles map[model.ModuleID][]string   `json:"moduleFiles"`
	Edges       []*model.Edge                 `json:"edges"`
	Cycles      []cycles.ModuleCycle          `json:"cycles"`
	Rule        string                        `json:"rule"`
}

// Run executes the pipeline over the given file set. The computation is
// a pure function of the inputs: re-running on identical input yields
// an identical result, and file order never matters because edge
// evidence merges commutatively.
func Run(files []SourceFile, layers *rules.LayerTable) *Result {
	rels := make([]string, 0, len(files))
	for _, f := range files {
		rels = append(rels, f.Rel)
	}
	idx := index.Build(rels)

	builder := graph.NewBuilder(idx.ModuleSet())
	for _, file := range files {
		module, ok := idx.Module(file.Rel)
		if !ok {
			// library root file, not a module
			continue
		}
		for _, raw := range parser.ExtractImports(file.Text) {
			stmt := parser.ParseStatement(raw)
			for _, path := range stmt.Paths {
				builder.Add(module, path, stmt.Text, file.Path)
			}
		}
	}

	edges := builder.Edges()
	for _, edge := range edges {
		edge.Classification = layers.Classify(edge.Source, edge.Target)
	}

	modules := idx.Modules()
	moduleFiles := make(map[model.ModuleID][]string, len(modules))
	for _, m := range modules {
		moduleFiles[m] = idx.Files(m)
	}

	mg := graph.BuildModuleGraph(modules, edges)
	moduleCycles := cycles.FindModuleCycles(mg)

	logging.Debug("analysis complete",
		"modules", len(modules),
		"edges", len(edges),
		"cycles", len(moduleCycles),
	)

	return &Result{
		Modules:     modules,
		ModuleFiles: moduleFiles,
		Edges:       edges,
		Cycles:      moduleCycles,
		Rule:        layers.Rule(),
	}
}

// Violations returns the violating edges in frozen order.
func (r *Result) Violations() []*model.Edge {
	var violations []*model.Edge
	for _, edge := range r.Edges {
		if edge.Classification == model.Violating {
			violations = append(violations, edge)
		}
	}
	return violations
}

// HasViolations reports whether any violating edge exists; it drives
// the process exit code.
func (r *Result) HasViolations() bool {
	return len(r.Violations()) > 0
}
