package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/matzehuels/partynet/pkg/observability"
)

// Runner executes the pipeline against a filesystem. Create it with
// [NewRunner]; both fields must be set.
//
// The Runner holds no run state; multiple goroutines can use the same
// Runner with different options.
type Runner struct {
	Fs     afero.Fs
	Logger *log.Logger

	// SkipSystemFonts disables the CJK font search and renders PNG labels
	// with the embedded font unless Options.FontPath is set.
	SkipSystemFonts bool
}

// NewRunner creates a runner. A nil fs means the OS filesystem and a nil
// logger means log.Default().
func NewRunner(fs afero.Fs, logger *log.Logger) *Runner {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Fs: fs, Logger: logger}
}

// Execute runs the complete load → analyze → layout → render → write
// pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	result, err := r.Analyze(ctx, opts)
	if err != nil {
		return nil, err
	}
	r.prepare(&opts)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	layoutStart := time.Now()
	pos, err := r.Layout(ctx, result.Graph, opts)
	if err != nil {
		return nil, err
	}
	result.Positions = pos
	result.Stats.LayoutTime = time.Since(layoutStart)

	r.Logger.Info("computed layout",
		"nodes", len(pos),
		"seed", opts.Seed,
		"duration", result.Stats.LayoutTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	renderStart := time.Now()
	if err := r.Render(ctx, result, opts); err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	writeStart := time.Now()
	if err := r.Write(ctx, result, opts); err != nil {
		return nil, err
	}
	result.Stats.WriteTime = time.Since(writeStart)

	return result, nil
}

// Analyze loads the survey and derives the tally, network and styles
// without laying out or rendering anything.
func (r *Runner) Analyze(ctx context.Context, opts Options) (*Result, error) {
	r.prepare(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
		Paths:     make(map[string]string),
	}

	loadStart := time.Now()
	table, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Records = table.Len()
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Info("loaded survey",
		"path", opts.Input,
		"records", table.Len(),
		"duration", result.Stats.LoadTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	analyzeStart := time.Now()
	err = r.analyze(table.Records(), opts, result)
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	observability.Pipeline().OnExtractComplete(ctx, result.Stats.EdgeCount, result.Stats.NodeCount,
		result.Stats.AnalyzeTime, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("built network",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.AnalyzeTime)
	for _, c := range result.Styles.Conflicts {
		r.Logger.Warn("party listed under several names",
			"code", c.Code, "kept", c.Kept, "ignored", c.Ignored, "record", c.RecordID)
	}
	return result, nil
}

// prepare applies defaults and the runner's logger.
func (r *Runner) prepare(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	opts.SetDefaults()
}
