package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/partynet/pkg/errors"
	"github.com/matzehuels/partynet/pkg/fonts"
)

// ToDOT converts the scene to Graphviz DOT. Node positions are pinned in
// points with the y axis flipped, so neato reproduces the scene layout.
func ToDOT(s *Scene) string {
	toPt := 72 / s.DPI

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  graph [bgcolor=%q, outputorder=edgesfirst, splines=curved, label=%q, labelloc=t, fontsize=%.0f, fontname=%q];\n",
		s.Background, s.Title.Value, TitleFontSize, fonts.FontFamily)
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fixedsize=true, penwidth=0, fontsize=%.0f, fontname=%q];\n",
		LabelFontSize, fonts.FontFamily)
	buf.WriteString("\n")

	for _, n := range s.Nodes {
		x := n.Center.X * toPt
		y := (s.Height - n.Center.Y) * toPt
		attrs := fmt.Sprintf("label=%q, pos=\"%.2f,%.2f!\"", n.Label.Value, x, y)
		if n.Radius > 0 {
			attrs += fmt.Sprintf(", width=%.3f, fillcolor=%q", 2*n.Radius/s.DPI, n.Color)
		} else {
			attrs += ", shape=plaintext, width=0, height=0"
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", strconv.Itoa(n.Code), attrs)
	}

	buf.WriteString("\n")
	for _, e := range s.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [penwidth=%.2f, color=%q, arrowsize=%.2f, weight=%d];\n",
			strconv.Itoa(e.From), strconv.Itoa(e.To), e.WidthPt, e.Color, DefaultArrowSize*0.4/10, e.Count)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderGraphvizSVG lays out a DOT graph with neato and renders it to SVG.
func RenderGraphvizSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg tag with one whose width and
// height match the viewBox, dropping its pt units.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
