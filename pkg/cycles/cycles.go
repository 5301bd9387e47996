// Package cycles detects circular dependencies between modules using
// Tarjan's strongly connected components algorithm.
package cycles

import (
	"sort"

	"github.com/ritzau/layerlint/pkg/graph"
	"github.com/ritzau/layerlint/pkg/model"
	gonumgraph "gonum.org/v1/gonum/graph"
)

// ModuleCycle is a set of modules that depend on each other circularly.
type ModuleCycle struct {
	Modules []model.ModuleID `json:"modules"`
}

// FindModuleCycles returns every dependency cycle in the module graph.
// Cycle membership is sorted so output is deterministic.
func FindModuleCycles(mg *graph.ModuleGraph) []ModuleCycle {
	sccs := stronglyConnected(mg.Graph())

	cycles := make([]ModuleCycle, 0)
	for _, scc := range sccs {
		modules := make([]model.ModuleID, 0, len(scc))
		for _, id := range scc {
			if m, ok := mg.Module(id); ok {
				modules = append(modules, m)
			}
		}
		if len(modules) > 1 {
			sort.Slice(modules, func(i, j int) bool { return modules[i] < modules[j] })
			cycles = append(cycles, ModuleCycle{Modules: modules})
		}
	}

	sort.Slice(cycles, func(i, j int) bool { return cycles[i].Modules[0] < cycles[j].Modules[0] })
	return cycles
}

// tarjan holds the traversal state for one SCC computation.
type tarjan struct {
	graph   gonumgraph.Directed
	index   int
	stack   []int64
	onStack map[int64]bool
	indices map[int64]int
	lowLink map[int64]int
	sccs    [][]int64
}

// stronglyConnected finds all SCCs with more than one node.
func stronglyConnected(g gonumgraph.Directed) [][]int64 {
	t := &tarjan{
		graph:   g,
		onStack: make(map[int64]bool),
		indices: make(map[int64]int),
		lowLink: make(map[int64]int),
	}

	nodes := g.Nodes()
	for nodes.Next() {
		id := nodes.Node().ID()
		if _, visited := t.indices[id]; !visited {
			t.strongConnect(id)
		}
	}
	return t.sccs
}

func (t *tarjan) strongConnect(nodeID int64) {
	t.indices[nodeID] = t.index
	t.lowLink[nodeID] = t.index
	t.index++

	t.stack = append(t.stack, nodeID)
	t.onStack[nodeID] = true

	successors := t.graph.From(nodeID)
	for successors.Next() {
		succID := successors.Node().ID()
		if _, visited := t.indices[succID]; !visited {
			t.strongConnect(succID)
			t.lowLink[nodeID] = min(t.lowLink[nodeID], t.lowLink[succID])
		} else if t.onStack[succID] {
			t.lowLink[nodeID] = min(t.lowLink[nodeID], t.indices[succID])
		}
	}

	// Root of an SCC: pop the stack down to this node.
	if t.lowLink[nodeID] == t.indices[nodeID] {
		var scc []int64
		for {
			w := t.stack[len(t.stack)-1]
			t.stack = t.stack[:len(t.stack)-1]
			t.onStack[w] = false
			scc = append(scc, w)
			if w == nodeID {
				break
			}
		}
		if len(scc) > 1 {
			t.sccs = append(t.sccs, scc)
		}
	}
}
