package style

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/matzehuels/partynet/pkg/errors"
	"github.com/matzehuels/partynet/pkg/survey"
)

func records(t *testing.T, rows ...[3]string) []survey.Record {
	t.Helper()
	c := survey.DefaultColumns()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{c.ID, c.PartyCode, c.PartyName})
	for _, r := range rows {
		_ = w.Write(r[:])
	}
	w.Flush()

	tbl, err := survey.Read(&buf, survey.Options{})
	if err != nil {
		t.Fatalf("survey.Read: %v", err)
	}
	return tbl.Records()
}

func TestDefaultPaletteCoversQuestionnaire(t *testing.T) {
	// Party names as they appear in the 2024 questionnaire export.
	names := []string{
		"自民党", "公明党", "立憲民主党", "日本維新の会", "共産党",
		"国民民主党", "れいわ新選組", "社民党", "参政党", "諸派", "無所属",
	}
	p := DefaultPalette()
	if len(p) != len(names) {
		t.Errorf("len(DefaultPalette()) = %d, want %d", len(p), len(names))
	}
	for _, name := range names {
		if _, ok := p.Lookup(name); !ok {
			t.Errorf("no color for %s", name)
		}
	}
	if err := p.Validate(); err != nil {
		t.Errorf("default palette invalid: %v", err)
	}
}

func TestLookupNormalizes(t *testing.T) {
	p := Palette{"国民民主党": "#f8bc00", "ABC党": "#111111"}
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"国民民主党", "#f8bc00", true},
		{" 国民民主党 ", "#f8bc00", true},
		{"ＡＢＣ党", "#111111", true},
		{"維新", "", false},
	}
	for _, tt := range tests {
		got, ok := p.Lookup(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Lookup(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResolve(t *testing.T) {
	recs := records(t,
		[3]string{"1", "1", "自民党"},
		[3]string{"2", "2", "公明党"},
		[3]string{"3", "10", "諸派"},
		[3]string{"4", "1", "自由民主党"},
		[3]string{"5", "11", "無所属"},
	)

	s, err := Resolve(recs, DefaultPalette())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	wantNames := map[int]string{1: "自民党", 2: "公明党", 10: "諸派", 11: "無所属"}
	if diff := cmp.Diff(wantNames, s.Names); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
	wantColors := map[int]string{1: "#d7033a", 2: "#f55881", 10: "#777777", 11: "#777777"}
	if diff := cmp.Diff(wantColors, s.Colors); diff != "" {
		t.Errorf("Colors mismatch (-want +got):\n%s", diff)
	}
	wantConflicts := []Conflict{{Code: 1, Kept: "自民党", Ignored: "自由民主党", RecordID: "4"}}
	if diff := cmp.Diff(wantConflicts, s.Conflicts); diff != "" {
		t.Errorf("Conflicts mismatch (-want +got):\n%s", diff)
	}

	if err := s.Require([]int{1, 2}); err != nil {
		t.Errorf("Require: %v", err)
	}
	if err := s.Require([]int{1, 3}); !errors.Is(err, errors.ErrCodeUnknownParty) {
		t.Errorf("Require(3): err = %v, want UNKNOWN_PARTY", err)
	}

	rgb, ok := s.RGB(1)
	if !ok || rgb.Hex() != "#d7033a" {
		t.Errorf("RGB(1) = %v, %v", rgb.Hex(), ok)
	}
}

func TestResolveUnknownParty(t *testing.T) {
	recs := records(t,
		[3]string{"1", "1", "自民党"},
		[3]string{"2", "42", "みらいの党"},
	)

	_, err := Resolve(recs, DefaultPalette())
	if !errors.Is(err, errors.ErrCodeUnknownParty) {
		t.Fatalf("err = %v, want UNKNOWN_PARTY", err)
	}
	if !strings.Contains(err.Error(), "42") {
		t.Errorf("error should name the party code: %v", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#D7033A", "#d7033a", false},
		{" #777777 ", "#777777", false},
		{"#abc", "#aabbcc", false},
		{"d7033a", "", true},
		{"#xyzxyz", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadPalette(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "palette.toml", []byte(`
[colors]
"自民党" = "#FF0000"
"みらいの党" = "#00aa88"
`), 0o644)
	_ = afero.WriteFile(fs, "bad-color.toml", []byte("[colors]\n\"自民党\" = \"red\"\n"), 0o644)
	_ = afero.WriteFile(fs, "bad-key.toml", []byte("[colours]\n\"自民党\" = \"#ff0000\"\n"), 0o644)
	_ = afero.WriteFile(fs, "bad-syntax.toml", []byte("[colors\n"), 0o644)

	p, err := LoadPalette(fs, "palette.toml")
	if err != nil {
		t.Fatalf("LoadPalette: %v", err)
	}
	if got := p["自民党"]; got != "#ff0000" {
		t.Errorf("override = %q, want #ff0000", got)
	}
	if got := p["みらいの党"]; got != "#00aa88" {
		t.Errorf("addition = %q, want #00aa88", got)
	}
	if got := p["公明党"]; got != "#f55881" {
		t.Errorf("default entry = %q, want #f55881", got)
	}

	tests := []struct {
		path string
		code errors.Code
	}{
		{"missing.toml", errors.ErrCodeIO},
		{"bad-color.toml", errors.ErrCodeInvalidInput},
		{"bad-key.toml", errors.ErrCodeInvalidInput},
		{"bad-syntax.toml", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := LoadPalette(fs, tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %v", err, tt.code)
			}
		})
	}
}

func TestMergeDoesNotMutate(t *testing.T) {
	base := DefaultPalette()
	_ = base.Merge(Palette{"自民党": "#000000"})
	if base["自民党"] != "#d7033a" {
		t.Error("Merge mutated the receiver")
	}
}
