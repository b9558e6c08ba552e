package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/partynet/pkg/graph"
	"github.com/matzehuels/partynet/pkg/layout"
	"github.com/matzehuels/partynet/pkg/observability"
)

// Layout places the nodes of g with the configured spring layout.
func (r *Runner) Layout(ctx context.Context, g *graph.Graph, opts Options) (layout.Positions, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, g.NodeCount(), opts.Seed)
	start := time.Now()

	pos, err := layout.Spring(ctx, g, opts.LayoutOptions())
	hooks.OnLayoutComplete(ctx, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return pos, nil
}
