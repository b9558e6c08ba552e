package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/partynet/pkg/graph"
	"github.com/matzehuels/partynet/pkg/observability"
	"github.com/matzehuels/partynet/pkg/prefs"
	"github.com/matzehuels/partynet/pkg/style"
	"github.com/matzehuels/partynet/pkg/survey"
)

// Load reads the questionnaire table named by opts.Input.
func (r *Runner) Load(ctx context.Context, opts Options) (*survey.Table, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Input)
	start := time.Now()

	table, err := survey.Load(r.Fs, opts.Input, opts.SurveyOptions())
	if err != nil {
		hooks.OnLoadComplete(ctx, opts.Input, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnLoadComplete(ctx, opts.Input, table.Len(), time.Since(start), nil)
	return table, nil
}

// Palette returns the default palette, merged with opts.PalettePath when
// set.
func (r *Runner) Palette(opts Options) (style.Palette, error) {
	if opts.PalettePath == "" {
		return style.DefaultPalette(), nil
	}
	p, err := style.LoadPalette(r.Fs, opts.PalettePath)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded palette", "path", opts.PalettePath, "entries", len(p))
	return p, nil
}

func (r *Runner) analyze(records []survey.Record, opts Options, result *Result) error {
	palette, err := r.Palette(opts)
	if err != nil {
		return err
	}
	styles, err := style.Resolve(records, palette)
	if err != nil {
		return err
	}

	tally, err := prefs.Aggregate(records, opts.Extractor())
	if err != nil {
		return err
	}
	g := graph.Build(tally.Edges)

	result.Tally = tally
	result.Styles = styles
	result.Graph = g
	result.GraphHash = g.Hash()
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	r.Logger.Debug("tallied preferences",
		"pairs", len(tally.Edges),
		"parties", len(tally.Candidates),
		"dedupe", opts.DedupeSlots)
	return nil
}
