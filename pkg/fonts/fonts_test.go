package fonts

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/partynet/pkg/errors"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestEmbedded(t *testing.T) {
	f := Embedded()
	if !f.Embedded {
		t.Error("Embedded() should be marked embedded")
	}
	if f.Family == "" {
		t.Error("Family should be read from the name table")
	}

	face, err := f.Face(10, 100)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	defer face.Close()
	if h := face.Metrics().Height.Ceil(); h <= 0 {
		t.Errorf("face height = %d, want > 0", h)
	}
}

func TestResolverExplicitPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/fonts/label.ttf", goregular.TTF, 0o644)
	_ = afero.WriteFile(fs, "/fonts/broken.ttf", []byte("not a font"), 0o644)

	f, err := Resolver{Fs: fs, Path: "/fonts/label.ttf", Logger: quietLogger()}.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if f.Path != "/fonts/label.ttf" || f.Embedded {
		t.Errorf("Resolve() = %+v, want font loaded from path", f)
	}

	tests := []struct {
		path string
		code errors.Code
	}{
		{"/fonts/missing.ttf", errors.ErrCodeIO},
		{"/fonts/broken.ttf", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		_, err := Resolver{Fs: fs, Path: tt.path, Logger: quietLogger()}.Resolve()
		if !errors.Is(err, tt.code) {
			t.Errorf("Resolve(%s) err = %v, want %v", tt.path, err, tt.code)
		}
	}
}

func TestResolverFallback(t *testing.T) {
	f, err := Resolver{
		Candidates: []string{"partynet-no-such-font-file.ttf"},
		Logger:     quietLogger(),
	}.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !f.Embedded {
		t.Errorf("Resolve() = %+v, want embedded fallback", f)
	}

	f, err = Resolver{SkipSystem: true, Logger: quietLogger()}.Resolve()
	if err != nil || !f.Embedded {
		t.Errorf("SkipSystem: Resolve() = %+v, %v; want embedded fallback", f, err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte{0, 1, 2, 3}); err == nil {
		t.Error("Parse should fail on garbage")
	}
}
