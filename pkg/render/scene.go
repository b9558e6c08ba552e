package render

import (
	"math"
	"unicode/utf8"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/partynet/pkg/errors"
	"github.com/matzehuels/partynet/pkg/graph"
	"github.com/matzehuels/partynet/pkg/layout"
	"github.com/matzehuels/partynet/pkg/prefs"
	"github.com/matzehuels/partynet/pkg/style"
)

// =============================================================================
// Chart Constants
// =============================================================================

const (
	// NodeAreaScale is the node area in square points per incumbent.
	NodeAreaScale = 20.0

	// EdgeWidthScale is the edge width in points for a ratio of 1.
	EdgeWidthScale = 10.0

	DefaultDPI          = 100.0
	DefaultWidthInches  = 8.0
	DefaultHeightInches = 6.0
	DefaultCurvature    = 0.3
	DefaultArrowSize    = 30.0 // points
	DefaultEdgeColor    = "#cccccc"
	DefaultBackground   = "#ffffff"
	DefaultTextColor    = "#000000"

	LabelFontSize   = 10.0
	TitleFontSize   = 20.0
	CaptionFontSize = 10.0
)

// DefaultTitle is the chart title.
const DefaultTitle = "各政党の候補者はどの政党と連携したいか?"

// DefaultCaption returns the two caption lines printed under the chart.
func DefaultCaption() []string {
	return []string{
		"データ: 読売新聞 衆院選2024 候補者アンケート (23日15時30分時点)",
		"点の大きさは前職議員の数、矢印の太さは各党候補者の回答割合に対応",
	}
}

// NodeArea returns the marker area in square points for a party with the
// given number of incumbents.
func NodeArea(incumbents int) float64 {
	return NodeAreaScale * float64(incumbents)
}

// EdgeWidth returns the line width in points of an edge stated count times
// by a party with the given number of candidates.
func EdgeWidth(count, candidates int) (float64, error) {
	if candidates <= 0 {
		return 0, errors.New(errors.ErrCodeInternal, "edge source has %d candidates", candidates)
	}
	return EdgeWidthScale * float64(count) / float64(candidates), nil
}

// =============================================================================
// Scene
// =============================================================================

// SceneOptions configures [BuildScene]. Zero fields take defaults.
type SceneOptions struct {
	Title        string
	Caption      []string
	DPI          float64
	WidthInches  float64
	HeightInches float64
	Curvature    float64
	ArrowSize    float64
	EdgeColor    string
}

// SetDefaults fills zero fields with defaults.
func (o *SceneOptions) SetDefaults() {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Caption == nil {
		o.Caption = DefaultCaption()
	}
	if o.DPI == 0 {
		o.DPI = DefaultDPI
	}
	if o.WidthInches == 0 {
		o.WidthInches = DefaultWidthInches
	}
	if o.HeightInches == 0 {
		o.HeightInches = DefaultHeightInches
	}
	if o.Curvature == 0 {
		o.Curvature = DefaultCurvature
	}
	if o.ArrowSize == 0 {
		o.ArrowSize = DefaultArrowSize
	}
	if o.EdgeColor == "" {
		o.EdgeColor = DefaultEdgeColor
	}
}

// Input is everything a scene is built from.
type Input struct {
	Graph     *graph.Graph
	Tally     *prefs.Tally
	Styles    *style.Styles
	Positions layout.Positions
}

// Scene is the fully resolved drawing in pixel coordinates, y down.
type Scene struct {
	Width, Height float64
	DPI           float64
	Background    string
	TextColor     string

	Title       Text
	Caption     []Text
	Nodes       []Node
	Edges       []Edge
	plotCenter  r2.Vec
	plotHalfExt r2.Vec
}

// Text is a string centred on At.
type Text struct {
	Value string
	At    r2.Vec
	Size  float64 // points
}

// Node is a party marker.
type Node struct {
	Code       int
	Label      Text
	Color      string
	Center     r2.Vec
	Radius     float64 // pixels
	Area       float64 // square points
	Incumbents int
	Candidates int
}

// Edge is a drawn directed edge.
type Edge struct {
	From, To int
	Count    int
	Ratio    float64
	Width    float64 // pixels
	WidthPt  float64
	Color    string
	Loop     bool
	// Stroke is false when the nodes are so close that only the
	// arrowhead fits.
	Stroke bool
	Curve  Cubic
	Arrow  [3]r2.Vec
}

// PointsToPixels converts a length in points to pixels.
func (s *Scene) PointsToPixels(pt float64) float64 { return pt * s.DPI / 72 }

// BuildScene resolves geometry for every node and edge of in.Graph.
//
// It fails with UNKNOWN_PARTY when a node has no name or color and with
// INTERNAL_ERROR when a node has no position or an edge source has no
// candidates.
func BuildScene(in Input, opts SceneOptions) (*Scene, error) {
	opts.SetDefaults()
	codes := in.Graph.Nodes()
	if err := in.Styles.Require(codes); err != nil {
		return nil, err
	}
	for _, code := range codes {
		if _, ok := in.Positions[code]; !ok {
			return nil, errors.New(errors.ErrCodeInternal, "party %d has no layout position", code)
		}
	}

	pt := opts.DPI / 72
	s := &Scene{
		Width:      opts.WidthInches * opts.DPI,
		DPI:        opts.DPI,
		Background: DefaultBackground,
		TextColor:  DefaultTextColor,
	}

	titleBand := TitleFontSize * pt * 2.2
	captionLine := CaptionFontSize * pt * 1.5
	captionBand := captionLine*float64(len(opts.Caption)) + CaptionFontSize*pt*2
	plotHeight := opts.HeightInches * opts.DPI
	s.Height = titleBand + plotHeight + captionBand

	var maxRadius float64
	for _, code := range codes {
		maxRadius = max(maxRadius, radiusPx(NodeArea(in.Tally.Incumbents[code]), pt))
	}
	pad := max(maxRadius+LabelFontSize*pt, 40)
	s.plotCenter = r2.Vec{X: s.Width / 2, Y: titleBand + plotHeight/2}
	s.plotHalfExt = r2.Vec{X: max(s.Width/2-pad, 1), Y: max(plotHeight/2-pad, 1)}

	s.Title = Text{Value: opts.Title, At: r2.Vec{X: s.Width / 2, Y: titleBand / 2}, Size: TitleFontSize}
	for i, line := range opts.Caption {
		s.Caption = append(s.Caption, Text{
			Value: line,
			At:    r2.Vec{X: s.Width / 2, Y: titleBand + plotHeight + CaptionFontSize*pt + captionLine*(float64(i)+0.5)},
			Size:  CaptionFontSize,
		})
	}

	index := make(map[int]int, len(codes))
	for _, code := range codes {
		name, _ := in.Styles.Name(code)
		color, _ := in.Styles.Color(code)
		area := NodeArea(in.Tally.Incumbents[code])
		center := s.project(in.Positions[code])
		index[code] = len(s.Nodes)
		s.Nodes = append(s.Nodes, Node{
			Code:       code,
			Label:      Text{Value: name, At: center, Size: LabelFontSize},
			Color:      color,
			Center:     center,
			Radius:     radiusPx(area, pt),
			Area:       area,
			Incumbents: in.Tally.Incumbents[code],
			Candidates: in.Tally.Candidates[code],
		})
	}

	headLen := 0.4 * opts.ArrowSize * pt
	headHalf := 0.2 * opts.ArrowSize * pt
	for _, ge := range in.Graph.Edges() {
		widthPt, err := EdgeWidth(ge.Count, in.Tally.Candidates[ge.From])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "edge %d -> %d", ge.From, ge.To)
		}
		e := Edge{
			From:    ge.From,
			To:      ge.To,
			Count:   ge.Count,
			Ratio:   float64(ge.Count) / float64(in.Tally.Candidates[ge.From]),
			WidthPt: widthPt,
			Width:   widthPt * pt,
			Color:   opts.EdgeColor,
		}
		src, dst := s.Nodes[index[ge.From]], s.Nodes[index[ge.To]]
		if ge.From == ge.To {
			e.Loop = true
			e.Stroke = true
			e.Curve, e.Arrow = loopGeometry(src.Center, src.Radius, headLen, headHalf)
		} else {
			e.Curve, e.Arrow, e.Stroke = edgeGeometry(src, dst, opts.Curvature, headLen, headHalf)
		}
		s.Edges = append(s.Edges, e)
	}
	return s, nil
}

// project maps layout coordinates in [-1, 1] to pixels, y up to y down.
func (s *Scene) project(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: s.plotCenter.X + p.X*s.plotHalfExt.X,
		Y: s.plotCenter.Y - p.Y*s.plotHalfExt.Y,
	}
}

func radiusPx(areaPt2, pt float64) float64 {
	if areaPt2 <= 0 {
		return 0
	}
	return math.Sqrt(areaPt2/math.Pi) * pt
}

func edgeGeometry(src, dst Node, rad, headLen, headHalf float64) (Cubic, [3]r2.Vec, bool) {
	q := arc3(src.Center, dst.Center, rad)

	t0 := q.exitParam(src.Center, src.Radius, 0)
	tip := q.entryParam(dst.Center, dst.Radius, 1)
	if tip <= t0 {
		t0, tip = 0, 1
	}
	tipPt := q.at(tip)
	base := q.entryParam(tipPt, headLen, tip)

	dir := r2.Sub(tipPt, q.at(base))
	if base <= t0 {
		dir = r2.Sub(tipPt, q.at(t0))
		sub := q.sub(t0, tip)
		return cubicFromQuad(sub.p0, sub.c, sub.p2), arrowHead(tipPt, dir, headLen, headHalf), false
	}
	sub := q.sub(t0, base)
	return cubicFromQuad(sub.p0, sub.c, sub.p2), arrowHead(tipPt, dir, headLen, headHalf), true
}

// loopGeometry draws a self edge as a teardrop above the node.
func loopGeometry(center r2.Vec, radius, headLen, headHalf float64) (Cubic, [3]r2.Vec) {
	r := max(radius, 6)
	reach := max(3*r, 2.5*headLen)
	start := r2.Add(center, r2.Vec{X: -r * math.Cos(math.Pi/3), Y: -r * math.Sin(math.Pi/3)})
	tip := r2.Add(center, r2.Vec{X: r * math.Cos(math.Pi/3), Y: -r * math.Sin(math.Pi/3)})
	c1 := r2.Add(start, r2.Vec{X: -0.8 * reach, Y: -reach})
	c2 := r2.Add(tip, r2.Vec{X: 0.8 * reach, Y: -reach})

	dir := unit(r2.Sub(tip, c2))
	end := r2.Sub(tip, r2.Scale(headLen, dir))
	curve := Cubic{P0: start, C1: c1, C2: r2.Sub(c2, r2.Scale(headLen, dir)), P3: end}
	return curve, arrowHead(tip, dir, headLen, headHalf)
}

// ContentBounds returns the bounding box of everything drawn, with text
// extents estimated from character counts.
func (s *Scene) ContentBounds() (lo, hi r2.Vec) {
	b := emptyRect()
	for _, n := range s.Nodes {
		b.addBox(n.Center, n.Radius, n.Radius)
		s.addText(&b, n.Label)
	}
	for _, e := range s.Edges {
		half := e.Width / 2
		for _, p := range []r2.Vec{e.Curve.P0, e.Curve.C1, e.Curve.C2, e.Curve.P3} {
			b.addBox(p, half, half)
		}
		for _, p := range e.Arrow {
			b.add(p)
		}
	}
	s.addText(&b, s.Title)
	for _, c := range s.Caption {
		s.addText(&b, c)
	}
	if b.empty {
		return r2.Vec{}, r2.Vec{X: s.Width, Y: s.Height}
	}
	return b.min, b.max
}

func (s *Scene) addText(b *rect, t Text) {
	if t.Value == "" {
		return
	}
	w, h := s.estimateText(t)
	b.addBox(t.At, w/2, h/2)
}

// estimateText approximates the rendered size of t in pixels: full-width
// runes take one em, others roughly half.
func (s *Scene) estimateText(t Text) (w, h float64) {
	em := s.PointsToPixels(t.Size)
	for _, r := range t.Value {
		if utf8.RuneLen(r) > 1 {
			w += em
		} else {
			w += 0.6 * em
		}
	}
	return w, 1.2 * em
}
