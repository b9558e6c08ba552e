// Package fonts locates and loads the typeface used for chart labels.
//
// Party names are Japanese, so a CJK font is required for legible output.
// [Resolver] tries, in order: an explicit font file, well-known CJK font
// files found in the system font directories, and finally the Go Regular
// font embedded in the binary. The embedded font has no CJK glyphs; it
// only keeps the pipeline usable on machines without a CJK font.
package fonts

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/flopp/go-findfont"
	"github.com/spf13/afero"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/matzehuels/partynet/pkg/errors"
)

// FontFamily is the preferred family name for chart labels.
const FontFamily = "Noto Sans CJK JP"

// FallbackFontFamily is the CSS font stack used in SVG output.
const FallbackFontFamily = `'Noto Sans CJK JP', 'Noto Sans JP', 'Hiragino Sans', 'Yu Gothic', Meiryo, sans-serif`

// DefaultCandidates lists CJK font files searched for with go-findfont.
var DefaultCandidates = []string{
	"NotoSansCJK-Regular.ttc",
	"NotoSansCJKjp-Regular.otf",
	"NotoSansJP-Regular.otf",
	"NotoSansJP-Regular.ttf",
	"SourceHanSans-Regular.ttc",
	"ipaexg.ttf",
	"ipag.ttf",
	"YuGothR.ttc",
	"meiryo.ttc",
}

// Font is a parsed typeface.
type Font struct {
	// Family is the font's family name as stored in its name table.
	Family string
	// Path is where the font was loaded from; empty for the embedded font.
	Path string
	// Embedded reports whether this is the built-in fallback.
	Embedded bool

	f *opentype.Font
}

// Face returns a face rendering at size points for the given DPI.
func (f *Font) Face(size, dpi float64) (font.Face, error) {
	face, err := opentype.NewFace(f.f, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create %s face", f.Family)
	}
	return face, nil
}

// Parse parses a TrueType/OpenType font or collection. For collections
// the first member whose family ends in "JP" is chosen, else the first.
func Parse(data []byte) (*Font, error) {
	if f, err := opentype.Parse(data); err == nil {
		return &Font{Family: familyName(f), f: f}, nil
	}

	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	var first *Font
	for i := 0; i < coll.NumFonts(); i++ {
		f, err := coll.Font(i)
		if err != nil {
			return nil, err
		}
		cand := &Font{Family: familyName(f), f: f}
		if first == nil {
			first = cand
		}
		if strings.HasSuffix(cand.Family, "JP") {
			return cand, nil
		}
	}
	if first == nil {
		return nil, errors.New(errors.ErrCodeDataFormat, "font collection is empty")
	}
	return first, nil
}

// Open reads and parses a font file from fsys.
func Open(fsys afero.Fs, path string) (*Font, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read font %s", path)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse font %s", path)
	}
	f.Path = path
	return f, nil
}

// Embedded returns the built-in Go Regular font.
func Embedded() *Font {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic("fonts: embedded font is invalid: " + err.Error())
	}
	return &Font{Family: familyName(f), Embedded: true, f: f}
}

func familyName(f *opentype.Font) string {
	var buf sfnt.Buffer
	name, err := f.Name(&buf, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// =============================================================================
// Resolution
// =============================================================================

// Resolver picks the label font.
type Resolver struct {
	// Fs is used for the explicit Path. Defaults to the OS filesystem.
	Fs afero.Fs
	// Path is an explicit font file; when set, failure to load it is an error.
	Path string
	// Candidates overrides DefaultCandidates.
	Candidates []string
	// SkipSystem disables the system font search.
	SkipSystem bool
	Logger     *log.Logger
}

// Resolve returns the first usable font.
func (r Resolver) Resolve() (*Font, error) {
	fsys := r.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}

	if r.Path != "" {
		f, err := Open(fsys, r.Path)
		if err != nil {
			return nil, err
		}
		logger.Debug("using font", "family", f.Family, "path", f.Path)
		return f, nil
	}

	if !r.SkipSystem {
		candidates := r.Candidates
		if candidates == nil {
			candidates = DefaultCandidates
		}
		for _, name := range candidates {
			path, err := findfont.Find(name)
			if err != nil {
				continue
			}
			f, err := Open(afero.NewOsFs(), path)
			if err != nil {
				logger.Debug("skipping font", "path", path, "error", err)
				continue
			}
			logger.Debug("using font", "family", f.Family, "path", f.Path)
			return f, nil
		}
	}

	f := Embedded()
	logger.Warn("no CJK font found, Japanese labels will not render", "fallback", f.Family)
	return f, nil
}
