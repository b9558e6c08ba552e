package cli

import (
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/partynet/pkg/errors"
	"github.com/matzehuels/partynet/pkg/pipeline"
)

// defaultConfigFile is read from the working directory when present.
const defaultConfigFile = "partynet.toml"

// addOptionFlags registers the pipeline flags as persistent flags so that
// every subcommand accepts them. Flag defaults mirror pipeline defaults
// for the help text; the values themselves come from [loadOptions].
func addOptionFlags(cmd *cobra.Command) {
	d := pipeline.DefaultOptions()
	f := cmd.PersistentFlags()
	f.String("config", defaultConfigFile, "options file (TOML); skipped when the default file is absent")
	f.StringP("input", "i", d.Input, "questionnaire CSV, or an exported .json document for stats")
	f.String("encoding", d.Encoding, "input encoding: utf-8, shift_jis")
	f.String("delimiter", d.Delimiter, "CSV field delimiter")
	f.Bool("dedupe-slots", d.DedupeSlots, "count a party at most once per respondent")
	f.String("palette", "", "TOML palette merged over the built-in party colors")
	f.Uint64("seed", d.Seed, "layout seed")
	f.Float64("repulsion", d.Repulsion, "layout repulsion")
	f.StringP("output", "o", d.Output, "output file; other formats swap its extension")
	f.StringSliceP("formats", "f", d.Formats, "output formats: png, svg, dot, gv.svg, json")
	f.String("font", "", "font file for PNG labels (default: search for Noto Sans CJK JP)")
}

// loadOptions layers compiled-in defaults, the optional options file and
// explicitly set flags, in that order. The options file is read from fsys.
func loadOptions(fsys afero.Fs, flags *pflag.FlagSet) (pipeline.Options, error) {
	k := koanf.New(".")

	if err := k.Load(mapProvider(defaultOptionMap()), nil); err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInternal, err, "load defaults")
	}

	path, _ := flags.GetString("config")
	explicit := flags.Changed("config")
	if path != "" {
		if _, err := fsys.Stat(path); err == nil {
			data, err := afero.ReadFile(fsys, path)
			if err != nil {
				return pipeline.Options{}, errors.Wrap(errors.ErrCodeIO, err, "read options file %s", path)
			}
			if err := k.Load(bytesProvider(data), toml.Parser()); err != nil {
				return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse options file %s", path)
			}
		} else if explicit {
			return pipeline.Options{}, errors.Wrap(errors.ErrCodeIO, err, "options file %s", path)
		}
	}

	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInternal, err, "load flags")
	}

	var opts pipeline.Options
	if err := k.Unmarshal("", &opts); err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	opts.Formats = splitFormats(opts.Formats)
	return opts, nil
}

// defaultOptionMap returns the pipeline defaults keyed like the options
// file.
func defaultOptionMap() map[string]any {
	d := pipeline.DefaultOptions()
	return map[string]any{
		"input":        d.Input,
		"encoding":     d.Encoding,
		"delimiter":    d.Delimiter,
		"dedupe-slots": d.DedupeSlots,
		"palette":      d.PalettePath,
		"seed":         d.Seed,
		"repulsion":    d.Repulsion,
		"output":       d.Output,
		"formats":      d.Formats,
		"font":         d.FontPath,
	}
}

// splitFormats accepts both repeated flags and comma-joined values from
// the options file, and drops blanks.
func splitFormats(in []string) []string {
	var out []string
	for _, s := range in {
		for _, f := range strings.Split(s, ",") {
			if f = strings.TrimSpace(f); f != "" {
				out = append(out, f)
			}
		}
	}
	return out
}

// mapProvider is a koanf provider over an in-memory map.
type mapProvider map[string]any

func (p mapProvider) Read() (map[string]any, error) { return p, nil }

func (p mapProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New(errors.ErrCodeInternal, "map provider does not support ReadBytes")
}

// bytesProvider is a koanf provider over file contents already read
// through afero.
type bytesProvider []byte

func (p bytesProvider) ReadBytes() ([]byte, error) { return p, nil }

func (p bytesProvider) Read() (map[string]any, error) {
	return nil, errors.New(errors.ErrCodeInternal, "bytes provider requires a parser")
}
