package prefs

import (
	"github.com/matzehuels/partynet/pkg/errors"
	"github.com/matzehuels/partynet/pkg/survey"
)

// Party codes that never originate edges.
const (
	CodeMinorParties = 10
	CodeIndependent  = 11
)

// DefaultExcluded returns the party codes excluded from edge extraction.
func DefaultExcluded() map[int]bool {
	return map[int]bool{
		CodeMinorParties: true,
		CodeIndependent:  true,
	}
}

// Edge is one directed preference from a respondent's party to a
// preferred party.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Extractor converts records into edges.
type Extractor struct {
	// Excluded lists own-party codes whose respondents yield no edges.
	// A nil map means [DefaultExcluded].
	Excluded map[int]bool

	// DedupeSlots collapses repeated targets within one respondent.
	DedupeSlots bool
}

// NewExtractor returns an extractor with the default exclusions.
func NewExtractor() *Extractor {
	return &Extractor{Excluded: DefaultExcluded()}
}

func (x *Extractor) excluded(code int) bool {
	if x.Excluded == nil {
		return DefaultExcluded()[code]
	}
	return x.Excluded[code]
}

// Extract returns the edges stated by one respondent, in slot order.
//
// Empty and whitespace-only slots are skipped. A non-numeric slot is a
// DATA_FORMAT error naming the record and slot number.
func (x *Extractor) Extract(rec survey.Record) ([]Edge, error) {
	own, err := rec.PartyCode()
	if err != nil {
		return nil, err
	}
	if x.excluded(own) {
		return nil, nil
	}

	slots, err := rec.Slots()
	if err != nil {
		return nil, err
	}

	var (
		edges []Edge
		seen  map[int]bool
	)
	if x.DedupeSlots {
		seen = make(map[int]bool, len(slots))
	}
	for i, raw := range slots {
		if raw == "" {
			continue
		}
		target, ok := survey.ParseCode(raw)
		if !ok {
			return nil, errors.New(errors.ErrCodeDataFormat,
				"record %s: slot %d value %q is not a party code", rec.ID, i+1, raw)
		}
		if seen != nil {
			if seen[target] {
				continue
			}
			seen[target] = true
		}
		edges = append(edges, Edge{From: own, To: target})
	}
	return edges, nil
}
