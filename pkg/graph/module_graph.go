package graph

import (
	"github.com/ritzau/layerlint/pkg/model"
	"gonum.org/v1/gonum/graph/simple"
)

// ModuleGraph is the module-level dependency graph backed by a gonum
// directed graph, used for cycle detection.
type ModuleGraph struct {
	graph  *simple.DirectedGraph
	ids    map[model.ModuleID]int64
	byID   map[int64]model.ModuleID
	nextID int64
}

// NewModuleGraph creates an empty module graph.
func NewModuleGraph() *ModuleGraph {
	return &ModuleGraph{
		graph: simple.NewDirectedGraph(),
		ids:   make(map[model.ModuleID]int64),
		byID:  make(map[int64]model.ModuleID),
	}
}

// AddModule adds a module node to the graph if not already present.
func (mg *ModuleGraph) AddModule(module model.ModuleID) {
	if _, exists := mg.ids[module]; exists {
		return
	}
	mg.ids[module] = mg.nextID
	mg.byID[mg.nextID] = module
	mg.graph.AddNode(simple.Node(mg.nextID))
	mg.nextID++
}

// AddDependency adds a directed edge from source to target, creating
// the nodes as needed.
func (mg *ModuleGraph) AddDependency(source, target model.ModuleID) {
	mg.AddModule(source)
	mg.AddModule(target)

	sourceID := mg.ids[source]
	targetID := mg.ids[target]
	if sourceID == targetID {
		return
	}
	if !mg.graph.HasEdgeFromTo(sourceID, targetID) {
		mg.graph.SetEdge(mg.graph.NewEdge(mg.graph.Node(sourceID), mg.graph.Node(targetID)))
	}
}

// Module returns the identity for a gonum node ID.
func (mg *ModuleGraph) Module(id int64) (model.ModuleID, bool) {
	m, ok := mg.byID[id]
	return m, ok
}

// Graph returns the underlying directed graph.
func (mg *ModuleGraph) Graph() *simple.DirectedGraph {
	return mg.graph
}

// BuildModuleGraph constructs a module graph from the frozen edge set
// plus the full node list, so isolated modules still appear.
func BuildModuleGraph(modules []model.ModuleID, edges []*model.Edge) *ModuleGraph {
	mg := NewModuleGraph()
	for _, m := range modules {
		mg.AddModule(m)
	}
	for _, e := range edges {
		mg.AddDependency(e.Source, e.Target)
	}
	return mg
}
