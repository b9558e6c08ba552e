package style

import (
	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"

	"github.com/matzehuels/partynet/pkg/errors"
)

// paletteFile is the TOML layout of a palette override file:
//
//	[colors]
//	"自民党" = "#d7033a"
//	"みらいの党" = "#00aa88"
type paletteFile struct {
	Colors map[string]string `toml:"colors"`
}

// LoadPalette reads a TOML palette file and merges it over [DefaultPalette].
func LoadPalette(fsys afero.Fs, path string) (Palette, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read palette %s", path)
	}

	var pf paletteFile
	md, err := toml.Decode(string(data), &pf)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse palette %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "palette %s: unknown key %q", path, undecoded[0].String())
	}

	p := DefaultPalette().Merge(pf.Colors)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
