// Package pipeline runs the complete survey → network → image pipeline.
//
// # Architecture
//
// A run has five stages:
//
//  1. Load: read the questionnaire table (CSV, UTF-8 or Shift_JIS)
//  2. Analyze: extract preference edges, tally them and resolve party styles
//  3. Layout: place the parties with a seeded spring layout
//  4. Render: build the scene and encode every requested format in memory
//  5. Write: store each artifact atomically next to the configured output
//
// Nothing is written until every format has rendered, so a failure in
// loading, layout or rendering leaves no files behind. Each file is
// written atomically, but formats are written one after another: a failed
// write keeps the files of the formats written before it.
//
// # Usage
//
//	runner := pipeline.NewRunner(afero.NewOsFs(), logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "questionnaire_2024.csv",
//	    Formats: []string{"png", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Paths["png"])
//
// [Runner.Analyze] stops after stage 2 and is what the stats command uses.
package pipeline

import (
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/partynet/pkg/errors"
	"github.com/matzehuels/partynet/pkg/graph"
	"github.com/matzehuels/partynet/pkg/layout"
	"github.com/matzehuels/partynet/pkg/prefs"
	"github.com/matzehuels/partynet/pkg/render"
	"github.com/matzehuels/partynet/pkg/style"
	"github.com/matzehuels/partynet/pkg/survey"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI
// =============================================================================

const (
	// DefaultInput is the questionnaire file read when no input is given.
	DefaultInput = "questionnaire_2024.csv"

	// DefaultOutput is the image written when no output is given.
	DefaultOutput = "familiarity-network.png"

	// LayoutSeed is the default spring layout seed.
	LayoutSeed = layout.DefaultSeed

	// DefaultRepulsion is the default spring layout repulsion.
	DefaultRepulsion = layout.DefaultRepulsion

	DefaultEncoding  = survey.EncodingUTF8
	DefaultDelimiter = ","
)

// Format constants for output formats.
const (
	FormatPNG         = "png"
	FormatSVG         = "svg"
	FormatDOT         = "dot"
	FormatGraphvizSVG = "gv.svg"
	FormatJSON        = "json"
)

// DefaultFormats is the format list used when none is given.
var DefaultFormats = []string{FormatPNG}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:         true,
	FormatSVG:         true,
	FormatDOT:         true,
	FormatGraphvizSVG: true,
	FormatJSON:        true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a run. Field tags name the keys
// of the optional partynet.toml file.
type Options struct {
	Input     string `koanf:"input"`
	Encoding  string `koanf:"encoding"`
	Delimiter string `koanf:"delimiter"`

	// DedupeSlots counts a party at most once per respondent.
	DedupeSlots bool `koanf:"dedupe-slots"`

	// PalettePath is an optional TOML file merged over the default palette.
	PalettePath string `koanf:"palette"`

	// Seed 0 means LayoutSeed.
	Seed      uint64  `koanf:"seed"`
	Repulsion float64 `koanf:"repulsion"`

	Output   string   `koanf:"output"`
	Formats  []string `koanf:"formats"`
	FontPath string   `koanf:"font"`

	// Logger receives stage progress. Not configurable from files.
	Logger *log.Logger `koanf:"-"`
}

// DefaultOptions returns the compiled-in configuration.
func DefaultOptions() Options {
	o := Options{}
	o.SetDefaults()
	return o
}

// SetDefaults fills zero fields with defaults.
func (o *Options) SetDefaults() {
	if o.Input == "" {
		o.Input = DefaultInput
	}
	if o.Encoding == "" {
		o.Encoding = DefaultEncoding
	}
	if o.Delimiter == "" {
		o.Delimiter = DefaultDelimiter
	}
	if o.Seed == 0 {
		o.Seed = LayoutSeed
	}
	if o.Repulsion == 0 {
		o.Repulsion = DefaultRepulsion
	}
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if len(o.Formats) == 0 {
		o.Formats = slices.Clone(DefaultFormats)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option values without touching the filesystem.
func (o *Options) Validate() error {
	if err := errors.ValidatePath(o.Input); err != nil {
		return err
	}
	if err := errors.ValidatePath(o.Output); err != nil {
		return err
	}
	if err := survey.ValidateEncoding(o.Encoding); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return o.LayoutOptions().Validate()
}

// SurveyOptions returns the table loader options.
func (o *Options) SurveyOptions() survey.Options {
	return survey.Options{Encoding: o.Encoding, Delimiter: o.Delimiter}
}

// LayoutOptions returns the spring layout options.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{Seed: o.Seed, Repulsion: o.Repulsion}
}

// Extractor returns the preference extractor for these options.
func (o *Options) Extractor() *prefs.Extractor {
	x := prefs.NewExtractor()
	x.DedupeSlots = o.DedupeSlots
	return x
}

// OutputPath returns where format is written: the output path with its
// extension replaced by the format name.
func (o *Options) OutputPath(format string) string {
	base := strings.TrimSuffix(o.Output, filepath.Ext(o.Output))
	return base + "." + format
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid format: %q (must be one of: png, svg, dot, gv.svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid and distinct.
func ValidateFormats(formats []string) error {
	seen := make(map[string]bool, len(formats))
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
		if seen[f] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate format: %q", f)
		}
		seen[f] = true
	}
	return nil
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Records is the number of respondents read.
	Records int

	Tally  *prefs.Tally
	Graph  *graph.Graph
	Styles *style.Styles

	// GraphHash is the content hash of the network.
	GraphHash string

	// Positions and Scene are nil after [Runner.Analyze].
	Positions layout.Positions
	Scene     *render.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Document is the exported network; set when the json format is rendered.
	Document *graph.Document

	// Paths contains the written file of each format.
	Paths map[string]string

	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	LoadTime    time.Duration
	AnalyzeTime time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
	WriteTime   time.Duration
}
