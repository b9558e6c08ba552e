package graph

import (
	"maps"
	"slices"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/matzehuels/partynet/pkg/prefs"
)

// Edge is a weighted directed edge between two party codes.
type Edge struct {
	From  int `json:"from"`
	To    int `json:"to"`
	Count int `json:"count"`
}

// Graph is the directed preference graph.
type Graph struct {
	g     *simple.WeightedDirectedGraph
	loops map[int]int
}

// Build creates a graph from aggregated edge counts.
// Entries with a non-positive count are ignored.
func Build(counts map[prefs.Edge]int) *Graph {
	out := &Graph{
		g:     simple.NewWeightedDirectedGraph(0, 0),
		loops: make(map[int]int),
	}

	for _, e := range slices.SortedFunc(maps.Keys(counts), prefs.CompareEdges) {
		n := counts[e]
		if n <= 0 {
			continue
		}
		out.ensureNode(e.From)
		out.ensureNode(e.To)
		if e.From == e.To {
			out.loops[e.From] = n
			continue
		}
		out.g.SetWeightedEdge(out.g.NewWeightedEdge(simple.Node(e.From), simple.Node(e.To), float64(n)))
	}
	return out
}

func (g *Graph) ensureNode(code int) {
	if g.g.Node(int64(code)) == nil {
		g.g.AddNode(simple.Node(code))
	}
}

// Gonum returns the underlying gonum graph. Loops are not part of it.
func (g *Graph) Gonum() *simple.WeightedDirectedGraph { return g.g }

// Has reports whether code is a node.
func (g *Graph) Has(code int) bool { return g.g.Node(int64(code)) != nil }

// Nodes returns the party codes in ascending order.
func (g *Graph) Nodes() []int {
	var codes []int
	it := g.g.Nodes()
	for it.Next() {
		codes = append(codes, int(it.Node().ID()))
	}
	slices.Sort(codes)
	return codes
}

// Edges returns every edge, loops included, ordered by source then target.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	it := g.g.WeightedEdges()
	for it.Next() {
		e := it.WeightedEdge()
		edges = append(edges, Edge{
			From:  int(e.From().ID()),
			To:    int(e.To().ID()),
			Count: int(e.Weight()),
		})
	}
	for code, n := range g.loops {
		edges = append(edges, Edge{From: code, To: code, Count: n})
	}
	slices.SortFunc(edges, func(a, b Edge) int {
		return prefs.CompareEdges(prefs.Edge{From: a.From, To: a.To}, prefs.Edge{From: b.From, To: b.To})
	})
	return edges
}

// Loops returns the self-preference counts keyed by party code.
func (g *Graph) Loops() map[int]int { return g.loops }

// Weight returns the count of the edge from -> to.
func (g *Graph) Weight(from, to int) (int, bool) {
	if from == to {
		n, ok := g.loops[from]
		return n, ok
	}
	if !g.g.HasEdgeFromTo(int64(from), int64(to)) {
		return 0, false
	}
	w, _ := g.g.Weight(int64(from), int64(to))
	return int(w), true
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return g.g.Nodes().Len() }

// EdgeCount returns the number of distinct directed edges, loops included.
func (g *Graph) EdgeCount() int { return g.g.Edges().Len() + len(g.loops) }
