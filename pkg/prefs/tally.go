package prefs

import (
	"cmp"
	"maps"
	"slices"

	"github.com/matzehuels/partynet/pkg/survey"
)

// Tally is the aggregate of a whole questionnaire.
type Tally struct {
	// Edges maps each directed pair to the number of times it was stated.
	Edges map[Edge]int
	// Candidates counts respondents per own party, exclusions included.
	Candidates map[int]int
	// Incumbents counts incumbent respondents per own party.
	Incumbents map[int]int
}

// Aggregate extracts edges from every record and tallies them.
// The result does not depend on record order.
func Aggregate(records []survey.Record, x *Extractor) (*Tally, error) {
	if x == nil {
		x = NewExtractor()
	}
	t := &Tally{
		Edges:      make(map[Edge]int),
		Candidates: make(map[int]int),
		Incumbents: make(map[int]int),
	}

	for _, rec := range records {
		code, err := rec.PartyCode()
		if err != nil {
			return nil, err
		}
		t.Candidates[code]++

		inc, err := rec.Incumbent()
		if err != nil {
			return nil, err
		}
		if inc {
			t.Incumbents[code]++
		}

		edges, err := x.Extract(rec)
		if err != nil {
			return nil, err
		}
		for _, e := range edges {
			t.Edges[e]++
		}
	}
	return t, nil
}

// OutgoingTotal sums the counts of all edges leaving code.
func (t *Tally) OutgoingTotal(code int) int {
	total := 0
	for e, n := range t.Edges {
		if e.From == code {
			total += n
		}
	}
	return total
}

// Parties returns every party code seen as a respondent or edge end, sorted.
func (t *Tally) Parties() []int {
	set := make(map[int]struct{}, len(t.Candidates))
	for code := range t.Candidates {
		set[code] = struct{}{}
	}
	for e := range t.Edges {
		set[e.From] = struct{}{}
		set[e.To] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}

// SortedEdges returns the distinct edges ordered by source, then target.
func (t *Tally) SortedEdges() []Edge {
	return slices.SortedFunc(maps.Keys(t.Edges), CompareEdges)
}

// Ratio returns the count of e divided by its source's candidate count,
// or 0 when the source has no candidates.
func (t *Tally) Ratio(e Edge) float64 {
	c := t.Candidates[e.From]
	if c == 0 {
		return 0
	}
	return float64(t.Edges[e]) / float64(c)
}

// CompareEdges orders edges by source code, then target code.
func CompareEdges(a, b Edge) int {
	if c := cmp.Compare(a.From, b.From); c != 0 {
		return c
	}
	return cmp.Compare(a.To, b.To)
}
