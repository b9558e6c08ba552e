package layout

import (
	"context"
	"maps"
	"math"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	gonumlayout "gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/partynet/pkg/errors"
	pgraph "github.com/matzehuels/partynet/pkg/graph"
)

// Default force parameters.
const (
	DefaultSeed      = uint64(16)
	DefaultRepulsion = 10.0
	DefaultUpdates   = 200
	DefaultRate      = 0.05
	DefaultTheta     = 0.2
)

// Positions maps party codes to layout coordinates.
type Positions map[int]r2.Vec

// Options configures [Spring]. Zero fields take the Default* values.
type Options struct {
	Seed      uint64
	Repulsion float64
	Updates   int
	Rate      float64
	Theta     float64
}

// SetDefaults fills zero fields with defaults.
func (o *Options) SetDefaults() {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Repulsion == 0 {
		o.Repulsion = DefaultRepulsion
	}
	if o.Updates == 0 {
		o.Updates = DefaultUpdates
	}
	if o.Rate == 0 {
		o.Rate = DefaultRate
	}
	if o.Theta == 0 {
		o.Theta = DefaultTheta
	}
}

// Validate rejects parameters the algorithm cannot work with.
func (o Options) Validate() error {
	switch {
	case o.Repulsion < 0 || math.IsNaN(o.Repulsion) || math.IsInf(o.Repulsion, 0):
		return errors.New(errors.ErrCodeInvalidInput, "invalid repulsion: %v", o.Repulsion)
	case o.Updates < 0:
		return errors.New(errors.ErrCodeInvalidInput, "invalid update count: %d", o.Updates)
	case o.Rate < 0 || math.IsNaN(o.Rate):
		return errors.New(errors.ErrCodeInvalidInput, "invalid rate: %v", o.Rate)
	case o.Theta < 0 || o.Theta > 1:
		return errors.New(errors.ErrCodeInvalidInput, "invalid theta: %v (must be within [0, 1])", o.Theta)
	}
	return nil
}

// Spring computes a force-directed layout of g.
func Spring(ctx context.Context, g *pgraph.Graph, opts Options) (Positions, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	codes := g.Nodes()
	pos := make(Positions, len(codes))
	switch len(codes) {
	case 0:
		return pos, nil
	case 1:
		pos[codes[0]] = r2.Vec{}
		return pos, nil
	}

	view := newOrderedView(g.Gonum())
	eades := gonumlayout.EadesR2{
		Updates:   opts.Updates,
		Repulsion: opts.Repulsion,
		Rate:      opts.Rate,
		Theta:     opts.Theta,
		Src:       rand.NewPCG(opts.Seed, opts.Seed^0xdeadbeef),
	}
	o := gonumlayout.NewOptimizerR2(view, eades.Update)
	for o.Update() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	for _, code := range codes {
		v := o.Coord2(int64(code))
		if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
			return nil, errors.New(errors.ErrCodeInternal, "layout diverged at party %d", code)
		}
		pos[code] = v
	}
	return Rescale(pos), nil
}

// Rescale centres positions on their mean and scales them uniformly so
// that the largest coordinate magnitude is 1.
func Rescale(pos Positions) Positions {
	out := make(Positions, len(pos))
	if len(pos) == 0 {
		return out
	}

	codes := slices.Sorted(maps.Keys(pos))
	var mean r2.Vec
	for _, code := range codes {
		mean = r2.Add(mean, pos[code])
	}
	n := float64(len(pos))
	mean = r2.Vec{X: mean.X / n, Y: mean.Y / n}

	var lim float64
	for _, v := range pos {
		d := r2.Sub(v, mean)
		lim = max(lim, math.Abs(d.X), math.Abs(d.Y))
	}
	for code, v := range pos {
		d := r2.Sub(v, mean)
		if lim > 0 {
			d = r2.Scale(1/lim, d)
		}
		out[code] = d
	}
	return out
}

// =============================================================================
// Deterministic graph view
// =============================================================================

// orderedView presents a gonum graph with nodes iterated in ascending ID
// order and edge weights scaled into (0, 1]. The scaling keeps the
// logarithmic attraction stable for large survey counts.
type orderedView struct {
	*simple.WeightedDirectedGraph
	maxWeight float64
}

func newOrderedView(g *simple.WeightedDirectedGraph) *orderedView {
	v := &orderedView{WeightedDirectedGraph: g, maxWeight: 1}
	it := g.WeightedEdges()
	for it.Next() {
		v.maxWeight = max(v.maxWeight, it.WeightedEdge().Weight())
	}
	return v
}

func sortedNodes(it graph.Nodes) graph.Nodes {
	nodes := graph.NodesOf(it)
	slices.SortFunc(nodes, func(a, b graph.Node) int {
		switch {
		case a.ID() < b.ID():
			return -1
		case a.ID() > b.ID():
			return 1
		}
		return 0
	})
	return iterator.NewOrderedNodes(nodes)
}

func (v *orderedView) Nodes() graph.Nodes { return sortedNodes(v.WeightedDirectedGraph.Nodes()) }

func (v *orderedView) From(id int64) graph.Nodes {
	return sortedNodes(v.WeightedDirectedGraph.From(id))
}

func (v *orderedView) Weight(xid, yid int64) (float64, bool) {
	w, ok := v.WeightedDirectedGraph.Weight(xid, yid)
	if !ok || !v.HasEdgeFromTo(xid, yid) {
		return 0, false
	}
	return w / v.maxWeight, true
}
