// Package pkg provides the libraries behind partynet.
//
// # Overview
//
// partynet turns a candidate questionnaire into a directed, weighted network
// of which party each party's candidates want to cooperate with, and draws
// it as an annotated diagram. The pkg directory is organized by stage:
//
//  1. [survey] - questionnaire table loading (CSV, UTF-8 or Shift_JIS)
//  2. [prefs] - preference extraction and tallying
//  3. [graph] - the network and its JSON document form
//  4. [style], [fonts] - party names and colors, label fonts
//  5. [layout] - seeded spring layout
//  6. [render] - scene geometry and PNG, SVG, DOT and JSON output
//  7. [pipeline] - orchestration (load → analyze → layout → render → write)
//
// Supporting packages are [errors] (coded errors), [io] (atomic writes),
// [observability] (stage hooks) and [buildinfo].
//
// # Data Flow
//
//	questionnaire_2024.csv
//	         ↓
//	    [survey] (records)
//	         ↓
//	    [prefs] (edge counts, candidates, incumbents)
//	         ↓
//	    [graph] + [style] (nodes, edges, names, colors)
//	         ↓
//	    [layout] (positions)
//	         ↓
//	    [render] (familiarity-network.png and friends)
//
// # Quick Start
//
//	runner := pipeline.NewRunner(afero.NewOsFs(), logger)
//	result, err := runner.Execute(ctx, pipeline.DefaultOptions())
//
// [survey]: https://pkg.go.dev/github.com/matzehuels/partynet/pkg/survey
// [prefs]: https://pkg.go.dev/github.com/matzehuels/partynet/pkg/prefs
// [graph]: https://pkg.go.dev/github.com/matzehuels/partynet/pkg/graph
// [style]: https://pkg.go.dev/github.com/matzehuels/partynet/pkg/style
// [fonts]: https://pkg.go.dev/github.com/matzehuels/partynet/pkg/fonts
// [layout]: https://pkg.go.dev/github.com/matzehuels/partynet/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/partynet/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/partynet/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/partynet/pkg/errors
// [io]: https://pkg.go.dev/github.com/matzehuels/partynet/pkg/io
// [observability]: https://pkg.go.dev/github.com/matzehuels/partynet/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/partynet/pkg/buildinfo
package pkg
