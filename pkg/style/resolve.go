package style

import (
	"maps"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/partynet/pkg/errors"
	"github.com/matzehuels/partynet/pkg/survey"
)

// Conflict records a party code that appeared under more than one name.
type Conflict struct {
	Code     int
	Kept     string
	Ignored  string
	RecordID string
}

// Styles holds the resolved name and color of every party in the data.
type Styles struct {
	Names     map[int]string
	Colors    map[int]string
	Conflicts []Conflict
}

// Resolve assigns each party code its display name and color.
//
// The first record of a party fixes its name; later records that disagree
// are reported in Conflicts. Every code in the data must map to a palette
// entry, even codes that never become graph nodes.
func Resolve(records []survey.Record, p Palette) (*Styles, error) {
	s := &Styles{
		Names:  make(map[int]string),
		Colors: make(map[int]string),
	}

	for _, rec := range records {
		code, err := rec.PartyCode()
		if err != nil {
			return nil, err
		}
		name, err := rec.PartyName()
		if err != nil {
			return nil, err
		}
		kept, seen := s.Names[code]
		if !seen {
			s.Names[code] = name
			continue
		}
		if kept != name {
			s.Conflicts = append(s.Conflicts, Conflict{Code: code, Kept: kept, Ignored: name, RecordID: rec.ID})
		}
	}

	for _, code := range slices.Sorted(maps.Keys(s.Names)) {
		name := s.Names[code]
		color, ok := p.Lookup(name)
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownParty, "party %d (%q) has no palette color", code, name)
		}
		s.Colors[code] = color
	}
	return s, nil
}

// Name returns the display name of code.
func (s *Styles) Name(code int) (string, bool) {
	n, ok := s.Names[code]
	return n, ok
}

// Color returns the hex color of code.
func (s *Styles) Color(code int) (string, bool) {
	c, ok := s.Colors[code]
	return c, ok
}

// RGB returns the color of code as a colorful.Color.
func (s *Styles) RGB(code int) (colorful.Color, bool) {
	hex, ok := s.Colors[code]
	if !ok {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// Require checks that every code has both a name and a color.
func (s *Styles) Require(codes []int) error {
	for _, code := range codes {
		if _, ok := s.Names[code]; !ok {
			return errors.New(errors.ErrCodeUnknownParty, "party %d has no display name", code)
		}
		if _, ok := s.Colors[code]; !ok {
			return errors.New(errors.ErrCodeUnknownParty, "party %d has no color", code)
		}
	}
	return nil
}
