package render

import (
	"bytes"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/partynet/pkg/errors"
	"github.com/matzehuels/partynet/pkg/fonts"
)

// DefaultCropPadding is the margin in pixels kept around cropped content.
const DefaultCropPadding = 10

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	font    *fonts.Font
	crop    bool
	padding int
}

// WithFont sets the label font. Without it the embedded fallback is used.
func WithFont(f *fonts.Font) PNGOption { return func(r *pngRenderer) { r.font = f } }

// WithCropPadding sets the margin kept around cropped content.
func WithCropPadding(px int) PNGOption { return func(r *pngRenderer) { r.padding = px } }

// WithoutCrop keeps the full canvas.
func WithoutCrop() PNGOption { return func(r *pngRenderer) { r.crop = false } }

// RenderPNG rasterises the scene and encodes it as PNG.
func RenderPNG(s *Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{crop: true, padding: DefaultCropPadding}
	for _, opt := range opts {
		opt(&r)
	}
	if r.font == nil {
		r.font = fonts.Embedded()
	}

	img, err := r.draw(s)
	if err != nil {
		return nil, err
	}
	if r.crop {
		img = cropToContent(img, r.padding)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func (r pngRenderer) draw(s *Scene) (image.Image, error) {
	faces := make(map[float64]font.Face)
	defer func() {
		for _, f := range faces {
			f.Close()
		}
	}()
	face := func(size float64) (font.Face, error) {
		if f, ok := faces[size]; ok {
			return f, nil
		}
		f, err := r.font.Face(size, s.DPI)
		if err != nil {
			return nil, err
		}
		faces[size] = f
		return f, nil
	}

	dc := gg.NewContext(int(s.Width+0.5), int(s.Height+0.5))
	dc.SetHexColor(s.Background)
	dc.Clear()

	dc.SetLineCapButt()
	for _, e := range s.Edges {
		dc.SetHexColor(e.Color)
		if e.Stroke {
			c := e.Curve
			dc.SetLineWidth(e.Width)
			dc.MoveTo(c.P0.X, c.P0.Y)
			dc.CubicTo(c.C1.X, c.C1.Y, c.C2.X, c.C2.Y, c.P3.X, c.P3.Y)
			dc.Stroke()
		}
		dc.MoveTo(e.Arrow[0].X, e.Arrow[0].Y)
		dc.LineTo(e.Arrow[1].X, e.Arrow[1].Y)
		dc.LineTo(e.Arrow[2].X, e.Arrow[2].Y)
		dc.ClosePath()
		dc.Fill()
	}

	for _, n := range s.Nodes {
		if n.Radius <= 0 {
			continue
		}
		dc.SetHexColor(n.Color)
		dc.DrawCircle(n.Center.X, n.Center.Y, n.Radius)
		dc.Fill()
	}

	texts := make([]Text, 0, len(s.Nodes)+len(s.Caption)+1)
	for _, n := range s.Nodes {
		texts = append(texts, n.Label)
	}
	texts = append(texts, s.Title)
	texts = append(texts, s.Caption...)

	dc.SetHexColor(s.TextColor)
	for _, t := range texts {
		if t.Value == "" {
			continue
		}
		f, err := face(t.Size)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(f)
		dc.DrawStringAnchored(t.Value, t.At.X, t.At.Y, 0.5, 0.5)
	}
	return dc.Image(), nil
}

// cropToContent trims uniform border color from img, keeping padding
// pixels around the content. Blank images are returned unchanged.
func cropToContent(img image.Image, padding int) image.Image {
	b := img.Bounds()
	if b.Empty() {
		return img
	}
	bg := color.NRGBAModel.Convert(img.At(b.Min.X, b.Min.Y))

	content := image.Rectangle{}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if color.NRGBAModel.Convert(img.At(x, y)) == bg {
				continue
			}
			content = content.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	if content.Empty() {
		return img
	}
	return imaging.Crop(img, content.Inset(-padding).Intersect(b))
}
