// Package graph accumulates resolved module dependencies into a
// deduplicated edge set with evidence, and exposes the result as a
// directed graph for cycle analysis.
package graph

import (
	"sort"

	"github.com/ritzau/layerlint/pkg/model"
	"github.com/ritzau/layerlint/pkg/resolve"
)

// Builder aggregates (source module, import path) observations into
// edges keyed by (source, target). Evidence merging is a commutative
// set union, so the file processing order never affects the frozen
// edge set.
type Builder struct {
	modules map[model.ModuleID]bool
	edges   map[edgeKey]*model.Evidence
}

type edgeKey struct {
	source model.ModuleID
	target model.ModuleID
}

// NewBuilder creates a builder that resolves targets against the given
// set of known module identities.
func NewBuilder(modules map[model.ModuleID]bool) *Builder {
	return &Builder{
		modules: modules,
		edges:   make(map[edgeKey]*model.Evidence),
	}
}

// Add records one import observation: a flat segment path seen in the
// given statement of the given file, imported from source. Paths that
// resolve outside the analyzed tree, degenerate paths, and self-imports
// all drop silently; no edge is the only failure signal.
func (b *Builder) Add(source model.ModuleID, path model.Path, statement, file string) {
	segments, ok := resolve.Resolve(path, source.Segments())
	if !ok {
		return
	}
	target, ok := resolve.Match(segments, b.modules)
	if !ok || target == source {
		return
	}

	key := edgeKey{source: source, target: target}
	evidence, ok := b.edges[key]
	if !ok {
		evidence = model.NewEvidence()
		b.edges[key] = evidence
	}
	evidence.Add(statement, file)
}

// Merge folds another builder's edges into this one. Used when per-file
// accumulation is fanned out and reduced.
func (b *Builder) Merge(other *Builder) {
	for key, evidence := range other.edges {
		existing, ok := b.edges[key]
		if !ok {
			existing = model.NewEvidence()
			b.edges[key] = existing
		}
		existing.Merge(evidence)
	}
}

// Edges freezes the accumulated set into a deterministic slice, sorted
// by (source, target). Classification is left for the caller.
func (b *Builder) Edges() []*model.Edge {
	edges := make([]*model.Edge, 0, len(b.edges))
	for key, evidence := range b.edges {
		edges = append(edges, &model.Edge{
			Source:   key.source,
			Target:   key.target,
			Evidence: evidence,
		})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	return edges
}

// Len returns the number of distinct edges accumulated so far.
func (b *Builder) Len() int {
	return len(b.edges)
}
