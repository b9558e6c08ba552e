// Package style resolves each party code to a display name and a color.
//
// Colors come from a [Palette] keyed by party display name. The compiled-in
// [DefaultPalette] covers every party in the 2024 general election
// questionnaire; [LoadPalette] layers overrides from a TOML file on top.
// There is no fallback color: a party whose name is not in the palette is
// an UNKNOWN_PARTY error.
package style

import (
	"maps"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/partynet/pkg/errors"
)

// Palette maps party display names to hex colors.
type Palette map[string]string

// DefaultPalette returns the party colors used for the 2024 election chart.
func DefaultPalette() Palette {
	return Palette{
		"自民党":    "#d7033a",
		"公明党":    "#f55881",
		"立憲民主党":  "#004098",
		"日本維新の会": "#36c200",
		"共産党":    "#7957da",
		"国民民主党":  "#f8bc00",
		"れいわ新選組": "#e5007f",
		"社民党":    "#01a8ec",
		"参政党":    "#ed6c00",
		"諸派":     "#777777",
		"無所属":    "#777777",
	}
}

// NormalizeName folds a party name for palette lookup: NFKC, then trimmed.
// Full-width and half-width variants of the same name compare equal.
func NormalizeName(name string) string {
	return strings.TrimSpace(norm.NFKC.String(name))
}

// Lookup returns the color for a party name.
func (p Palette) Lookup(name string) (string, bool) {
	if c, ok := p[name]; ok {
		return c, true
	}
	want := NormalizeName(name)
	for _, k := range slices.Sorted(maps.Keys(p)) {
		if NormalizeName(k) == want {
			return p[k], true
		}
	}
	return "", false
}

// Merge returns a copy of p with the entries of other added or replaced.
func (p Palette) Merge(other Palette) Palette {
	out := make(Palette, len(p)+len(other))
	maps.Copy(out, p)
	maps.Copy(out, other)
	return out
}

// Validate checks that every entry has a non-empty name and a valid hex
// color, and rewrites colors to lowercase #rrggbb.
func (p Palette) Validate() error {
	for _, name := range slices.Sorted(maps.Keys(p)) {
		if strings.TrimSpace(name) == "" {
			return errors.New(errors.ErrCodeInvalidInput, "palette: empty party name")
		}
		hex, err := ParseColor(p[name])
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "palette: party %s", name)
		}
		p[name] = hex
	}
	return nil
}

// ParseColor validates a hex color (#rgb or #rrggbb) and returns it in
// canonical lowercase #rrggbb form.
func ParseColor(s string) (string, error) {
	c, err := colorful.Hex(expandShortHex(strings.TrimSpace(s)))
	if err != nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "invalid color %q", s)
	}
	return c.Hex(), nil
}

func expandShortHex(s string) string {
	if len(s) != 4 || s[0] != '#' {
		return s
	}
	return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
}
