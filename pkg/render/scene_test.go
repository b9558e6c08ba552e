package render

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/partynet/pkg/errors"
	"github.com/matzehuels/partynet/pkg/graph"
	"github.com/matzehuels/partynet/pkg/layout"
	"github.com/matzehuels/partynet/pkg/prefs"
	"github.com/matzehuels/partynet/pkg/style"
)

// fixture is a three-party network: LDP and Komeito name each other,
// CDP names LDP and itself.
func fixture() Input {
	return Input{
		Graph: graph.Build(map[prefs.Edge]int{
			{From: 1, To: 2}: 4,
			{From: 2, To: 1}: 3,
			{From: 3, To: 1}: 1,
			{From: 3, To: 3}: 2,
		}),
		Tally: &prefs.Tally{
			Candidates: map[int]int{1: 10, 2: 3, 3: 5, 10: 7},
			Incumbents: map[int]int{1: 4, 2: 1},
		},
		Styles: &style.Styles{
			Names:  map[int]string{1: "自民党", 2: "公明党", 3: "立憲民主党", 10: "諸派"},
			Colors: map[int]string{1: "#d7033a", 2: "#f55881", 3: "#004098", 10: "#777777"},
		},
		Positions: layout.Positions{
			1: {X: -1, Y: 0},
			2: {X: 1, Y: 0.5},
			3: {X: 0, Y: -1},
		},
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestNodeArea(t *testing.T) {
	tests := []struct {
		incumbents int
		want       float64
	}{
		{0, 0},
		{1, 20},
		{4, 80},
		{120, 2400},
	}
	for _, tt := range tests {
		if got := NodeArea(tt.incumbents); got != tt.want {
			t.Errorf("NodeArea(%d) = %v, want %v", tt.incumbents, got, tt.want)
		}
	}
}

func TestEdgeWidth(t *testing.T) {
	got, err := EdgeWidth(4, 10)
	if err != nil {
		t.Fatalf("EdgeWidth: %v", err)
	}
	if got != 4.0 {
		t.Errorf("EdgeWidth(4, 10) = %v, want 4.0", got)
	}

	if _, err := EdgeWidth(1, 0); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("EdgeWidth(1, 0) err = %v, want INTERNAL_ERROR", err)
	}
}

func TestBuildScene(t *testing.T) {
	s, err := BuildScene(fixture(), SceneOptions{})
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}

	if s.Width != 800 {
		t.Errorf("Width = %v, want 800", s.Width)
	}
	if s.Height <= 600 {
		t.Errorf("Height = %v, want room for title and caption beyond 600", s.Height)
	}
	if len(s.Nodes) != 3 {
		t.Fatalf("len(Nodes) = %d, want 3 (party 10 has no edges)", len(s.Nodes))
	}
	if len(s.Edges) != 4 {
		t.Fatalf("len(Edges) = %d, want 4", len(s.Edges))
	}
	if s.Title.Value != DefaultTitle || len(s.Caption) != 2 {
		t.Errorf("title/caption = %q / %d lines", s.Title.Value, len(s.Caption))
	}

	ldp := s.Nodes[0]
	if ldp.Code != 1 || ldp.Label.Value != "自民党" || ldp.Color != "#d7033a" {
		t.Errorf("node 0 = %+v", ldp)
	}
	wantRadius := math.Sqrt(80/math.Pi) * 100 / 72
	if !near(ldp.Radius, wantRadius) {
		t.Errorf("LDP radius = %v, want %v", ldp.Radius, wantRadius)
	}
	if s.Nodes[2].Radius != 0 {
		t.Errorf("CDP has no incumbents, radius = %v, want 0", s.Nodes[2].Radius)
	}

	// Layout x=-1 sits left of x=1; layout y up is pixel y down.
	if !(s.Nodes[0].Center.X < s.Nodes[1].Center.X) {
		t.Error("x axis not preserved")
	}
	if !(s.Nodes[1].Center.Y < s.Nodes[2].Center.Y) {
		t.Error("y axis not flipped")
	}

	e := s.Edges[0]
	if e.From != 1 || e.To != 2 || e.Count != 4 {
		t.Fatalf("edge 0 = %d->%d x%d", e.From, e.To, e.Count)
	}
	if e.WidthPt != 4.0 || !near(e.Width, 4.0*100/72) {
		t.Errorf("edge 1->2 width = %vpt / %vpx, want 4pt", e.WidthPt, e.Width)
	}
	if !near(e.Ratio, 0.4) {
		t.Errorf("edge 1->2 ratio = %v, want 0.4", e.Ratio)
	}
	if e.Color != DefaultEdgeColor {
		t.Errorf("edge color = %q, want %q", e.Color, DefaultEdgeColor)
	}
}

func TestBuildSceneTrimsToNodes(t *testing.T) {
	s, err := BuildScene(fixture(), SceneOptions{})
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}
	ldp, komeito := s.Nodes[0], s.Nodes[1]
	e := s.Edges[0]

	if d := r2.Norm(r2.Sub(e.Curve.P0, ldp.Center)); math.Abs(d-ldp.Radius) > 0.01 {
		t.Errorf("edge starts %v from the source centre, want radius %v", d, ldp.Radius)
	}
	if d := r2.Norm(r2.Sub(e.Arrow[0], komeito.Center)); math.Abs(d-komeito.Radius) > 0.01 {
		t.Errorf("arrow tip %v from the target centre, want radius %v", d, komeito.Radius)
	}
	if !e.Stroke {
		t.Error("distant nodes should have a stroked edge")
	}
}

func TestBuildSceneReciprocalEdgesBendApart(t *testing.T) {
	s, err := BuildScene(fixture(), SceneOptions{})
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}
	var fwd, back Edge
	for _, e := range s.Edges {
		switch {
		case e.From == 1 && e.To == 2:
			fwd = e
		case e.From == 2 && e.To == 1:
			back = e
		}
	}
	a, b := s.Nodes[0].Center, s.Nodes[1].Center
	side := func(p r2.Vec) float64 {
		d := r2.Sub(b, a)
		v := r2.Sub(p, a)
		return d.X*v.Y - d.Y*v.X
	}
	if side(fwd.Curve.C1)*side(back.Curve.C1) >= 0 {
		t.Error("reciprocal edges should bend to opposite sides of the chord")
	}
}

func TestBuildSceneLoop(t *testing.T) {
	s, err := BuildScene(fixture(), SceneOptions{})
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}
	last := s.Edges[len(s.Edges)-1]
	if !last.Loop || last.From != 3 || last.To != 3 {
		t.Fatalf("last edge = %+v, want loop on 3", last)
	}
	cdp := s.Nodes[2]
	if last.Curve.C1.Y >= cdp.Center.Y || last.Curve.C2.Y >= cdp.Center.Y {
		t.Error("loop should rise above the node")
	}
}

func TestBuildSceneFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		code   errors.Code
	}{
		{
			name:   "missing color",
			mutate: func(in *Input) { delete(in.Styles.Colors, 2) },
			code:   errors.ErrCodeUnknownParty,
		},
		{
			name:   "missing name",
			mutate: func(in *Input) { delete(in.Styles.Names, 3) },
			code:   errors.ErrCodeUnknownParty,
		},
		{
			name:   "missing position",
			mutate: func(in *Input) { delete(in.Positions, 1) },
			code:   errors.ErrCodeInternal,
		},
		{
			name:   "source without candidates",
			mutate: func(in *Input) { delete(in.Tally.Candidates, 3) },
			code:   errors.ErrCodeInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := fixture()
			tt.mutate(&in)
			_, err := BuildScene(in, SceneOptions{})
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %v", err, tt.code)
			}
		})
	}
}

func TestContentBounds(t *testing.T) {
	s, err := BuildScene(fixture(), SceneOptions{})
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}
	lo, hi := s.ContentBounds()
	for _, n := range s.Nodes {
		if n.Center.X < lo.X || n.Center.X > hi.X || n.Center.Y < lo.Y || n.Center.Y > hi.Y {
			t.Errorf("node %d at %v outside bounds [%v, %v]", n.Code, n.Center, lo, hi)
		}
	}
	if lo.Y > s.Title.At.Y || hi.Y < s.Caption[1].At.Y {
		t.Errorf("bounds [%v, %v] should include title and caption", lo, hi)
	}
}
