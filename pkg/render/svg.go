package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/partynet/pkg/fonts"
)

// svgMargin is the space in pixels around the fitted viewBox.
const svgMargin = 10.0

// RenderSVG draws the scene as a standalone SVG document whose viewBox is
// fitted to the content.
func RenderSVG(s *Scene) []byte {
	lo, hi := s.ContentBounds()
	x, y := lo.X-svgMargin, lo.Y-svgMargin
	w, h := hi.X-lo.X+2*svgMargin, hi.Y-lo.Y+2*svgMargin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		x, y, w, h, w, h)
	fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n", x, y, w, h, s.Background)

	buf.WriteString(`  <g class="edges">` + "\n")
	for _, e := range s.Edges {
		renderSVGEdge(&buf, e)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="nodes">` + "\n")
	for _, n := range s.Nodes {
		if n.Radius <= 0 {
			continue
		}
		fmt.Fprintf(&buf, `    <circle id="party-%d" cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
			n.Code, n.Center.X, n.Center.Y, n.Radius, n.Color)
	}
	buf.WriteString("  </g>\n")

	fmt.Fprintf(&buf, `  <g class="labels" font-family="%s" fill="%s" text-anchor="middle" dominant-baseline="central">`+"\n",
		EscapeXML(fonts.FallbackFontFamily), s.TextColor)
	for _, n := range s.Nodes {
		renderSVGText(&buf, s, n.Label)
	}
	renderSVGText(&buf, s, s.Title)
	for _, c := range s.Caption {
		renderSVGText(&buf, s, c)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderSVGEdge(buf *bytes.Buffer, e Edge) {
	fmt.Fprintf(buf, `    <g class="edge" data-from="%d" data-to="%d" data-count="%d">`+"\n", e.From, e.To, e.Count)
	if e.Stroke {
		c := e.Curve
		fmt.Fprintf(buf, `      <path d="M %.2f %.2f C %.2f %.2f, %.2f %.2f, %.2f %.2f" fill="none" stroke="%s" stroke-width="%.2f"/>`+"\n",
			c.P0.X, c.P0.Y, c.C1.X, c.C1.Y, c.C2.X, c.C2.Y, c.P3.X, c.P3.Y, e.Color, e.Width)
	}
	a := e.Arrow
	fmt.Fprintf(buf, `      <polygon points="%.2f,%.2f %.2f,%.2f %.2f,%.2f" fill="%s"/>`+"\n",
		a[0].X, a[0].Y, a[1].X, a[1].Y, a[2].X, a[2].Y, e.Color)
	buf.WriteString("    </g>\n")
}

func renderSVGText(buf *bytes.Buffer, s *Scene, t Text) {
	if t.Value == "" {
		return
	}
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="%.1f">%s</text>`+"\n",
		t.At.X, t.At.Y, s.PointsToPixels(t.Size), EscapeXML(t.Value))
}

// EscapeXML escapes s for use in XML text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
