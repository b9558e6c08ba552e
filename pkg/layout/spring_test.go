package layout

import (
	"context"
	stderrors "errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/partynet/pkg/errors"
	"github.com/matzehuels/partynet/pkg/graph"
	"github.com/matzehuels/partynet/pkg/prefs"
)

func sampleGraph() *graph.Graph {
	return graph.Build(map[prefs.Edge]int{
		{From: 1, To: 2}: 30,
		{From: 2, To: 1}: 25,
		{From: 3, To: 4}: 12,
		{From: 4, To: 3}: 9,
		{From: 3, To: 5}: 4,
		{From: 5, To: 3}: 6,
		{From: 6, To: 4}: 2,
		{From: 6, To: 6}: 1,
		{From: 7, To: 1}: 3,
	})
}

func TestSpringDeterministic(t *testing.T) {
	ctx := context.Background()
	a, err := Spring(ctx, sampleGraph(), Options{})
	if err != nil {
		t.Fatalf("Spring: %v", err)
	}
	for i := 0; i < 3; i++ {
		b, err := Spring(ctx, sampleGraph(), Options{})
		if err != nil {
			t.Fatalf("Spring: %v", err)
		}
		if diff := cmp.Diff(a, b); diff != "" {
			t.Fatalf("run %d differs (-first +later):\n%s", i, diff)
		}
	}
}

func TestSpringSeedMatters(t *testing.T) {
	ctx := context.Background()
	a, err := Spring(ctx, sampleGraph(), Options{Seed: 16})
	if err != nil {
		t.Fatalf("Spring: %v", err)
	}
	b, err := Spring(ctx, sampleGraph(), Options{Seed: 17})
	if err != nil {
		t.Fatalf("Spring: %v", err)
	}
	if cmp.Equal(a, b) {
		t.Error("different seeds should give different layouts")
	}
}

func TestSpringCoversAllNodes(t *testing.T) {
	g := sampleGraph()
	pos, err := Spring(context.Background(), g, Options{})
	if err != nil {
		t.Fatalf("Spring: %v", err)
	}
	if len(pos) != g.NodeCount() {
		t.Fatalf("len(pos) = %d, want %d", len(pos), g.NodeCount())
	}
	for _, code := range g.Nodes() {
		v, ok := pos[code]
		if !ok {
			t.Errorf("no position for %d", code)
			continue
		}
		if math.Abs(v.X) > 1+1e-9 || math.Abs(v.Y) > 1+1e-9 {
			t.Errorf("position of %d = %v, outside [-1, 1]", code, v)
		}
	}
}

func TestSpringSmallGraphs(t *testing.T) {
	ctx := context.Background()

	pos, err := Spring(ctx, graph.Build(nil), Options{})
	if err != nil || len(pos) != 0 {
		t.Errorf("empty graph: Spring = %v, %v", pos, err)
	}

	pos, err = Spring(ctx, graph.Build(map[prefs.Edge]int{{From: 4, To: 4}: 2}), Options{})
	if err != nil {
		t.Fatalf("loop-only graph: %v", err)
	}
	if diff := cmp.Diff(Positions{4: {}}, pos); diff != "" {
		t.Errorf("single node mismatch (-want +got):\n%s", diff)
	}

	pos, err = Spring(ctx, graph.Build(map[prefs.Edge]int{{From: 1, To: 2}: 1}), Options{})
	if err != nil {
		t.Fatalf("two nodes: %v", err)
	}
	if pos[1] == pos[2] {
		t.Errorf("two nodes share a position: %v", pos[1])
	}
}

func TestSpringCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Spring(ctx, sampleGraph(), Options{})
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{}, false},
		{"negative repulsion", Options{Repulsion: -1}, true},
		{"negative updates", Options{Updates: -5}, true},
		{"theta above one", Options{Theta: 1.5}, true},
		{"nan rate", Options{Rate: math.NaN()}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Spring(context.Background(), sampleGraph(), tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Spring error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("code = %v, want INVALID_INPUT", errors.GetCode(err))
			}
		})
	}
}

func TestRescale(t *testing.T) {
	got := Rescale(Positions{
		1: {X: 2, Y: 2},
		2: {X: 6, Y: 2},
		3: {X: 4, Y: 5},
	})
	want := Positions{
		1: {X: -1, Y: -0.5},
		2: {X: 1, Y: -0.5},
		3: {X: 0, Y: 1},
	}
	opt := cmp.Comparer(func(a, b r2.Vec) bool {
		return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
	})
	if diff := cmp.Diff(want, got, opt); diff != "" {
		t.Errorf("Rescale mismatch (-want +got):\n%s", diff)
	}
}
