package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/partynet/pkg/errors"
	"github.com/matzehuels/partynet/pkg/fonts"
	"github.com/matzehuels/partynet/pkg/graph"
	"github.com/matzehuels/partynet/pkg/observability"
	"github.com/matzehuels/partynet/pkg/render"
)

// Render builds the scene of an analyzed result and encodes every format
// in opts.Formats into result.Artifacts. Nothing is written.
func (r *Runner) Render(ctx context.Context, result *Result, opts Options) (err error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	if result.Positions == nil {
		return errors.New(errors.ErrCodeInternal, "render before layout")
	}
	scene, err := render.BuildScene(render.Input{
		Graph:     result.Graph,
		Tally:     result.Tally,
		Styles:    result.Styles,
		Positions: result.Positions,
	}, render.SceneOptions{})
	if err != nil {
		return err
	}
	result.Scene = scene

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := r.renderFormat(ctx, format, result, opts)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return errors.Wrap(code, err, "render %s", format)
		}
		result.Artifacts[format] = data
		r.Logger.Debug("rendered", "format", format, "bytes", len(data))
	}
	return nil
}

func (r *Runner) renderFormat(ctx context.Context, format string, result *Result, opts Options) ([]byte, error) {
	s := result.Scene
	switch format {
	case FormatPNG:
		f, err := fonts.Resolver{
			Fs:         r.Fs,
			Path:       opts.FontPath,
			SkipSystem: r.SkipSystemFonts,
			Logger:     r.Logger,
		}.Resolve()
		if err != nil {
			return nil, err
		}
		return render.RenderPNG(s, render.WithFont(f))
	case FormatSVG:
		return render.RenderSVG(s), nil
	case FormatDOT:
		return []byte(render.ToDOT(s)), nil
	case FormatGraphvizSVG:
		return render.RenderGraphvizSVG(ctx, render.ToDOT(s))
	case FormatJSON:
		doc := render.Document(s, result.Positions, result.GraphHash, opts.Seed)
		result.Document = &doc
		return graph.MarshalDocument(doc)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unsupported format: %s", format)
}
