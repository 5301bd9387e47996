// Package rules evaluates the layered-architecture rule over module
// dependency edges.
package rules

import (
	"strings"

	"github.com/ritzau/layerlint/pkg/model"
)

// LayerTable maps layer names to their total-order ranks. Dependencies
// must flow from lower-ranked layers toward equal-or-higher ranks.
type LayerTable struct {
	ranks map[string]int
	order []string
}

// NewLayerTable builds a table from an ordered layer list; rank is the
// position in the list.
func NewLayerTable(order []string) *LayerTable {
	ranks := make(map[string]int, len(order))
	for i, name := range order {
		ranks[name] = i
	}
	return &LayerTable{ranks: ranks, order: append([]string(nil), order...)}
}

// Rank returns the rank registered for a layer name.
func (t *LayerTable) Rank(layer string) (int, bool) {
	r, ok := t.ranks[layer]
	return r, ok
}

// Order returns the configured layer names, earliest first.
func (t *LayerTable) Order() []string {
	return append([]string(nil), t.order...)
}

// Rule renders the layer order as a human-readable rule string, e.g.
// "stream → providers → types → utils".
func (t *LayerTable) Rule() string {
	return strings.Join(t.order, " → ")
}

// Classify labels a dependency from source to target. A module's layer
// is determined by its top-level segment alone; if either side has no
// registered layer the rule doesn't apply.
func (t *LayerTable) Classify(source, target model.ModuleID) model.Classification {
	sourceRank, ok := t.ranks[source.TopLevel()]
	if !ok {
		return model.Inapplicable
	}
	targetRank, ok := t.ranks[target.TopLevel()]
	if !ok {
		return model.Inapplicable
	}
	if sourceRank <= targetRank {
		return model.Conforming
	}
	return model.Violating
}
