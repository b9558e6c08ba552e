package survey

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/partynet/pkg/errors"
)

// incumbentValue is the incumbency cell value marking a sitting member.
const incumbentValue = "1"

// Record is one respondent row. Cells are kept as raw strings.
type Record struct {
	ID     string
	fields []string
	table  *Table
}

// Value returns the raw cell for column name and whether the column exists.
func (r Record) Value(name string) (string, bool) {
	idx, ok := r.table.index[name]
	if !ok {
		return "", false
	}
	if idx >= len(r.fields) {
		return "", true
	}
	return r.fields[idx], true
}

func (r Record) required(name string) (string, error) {
	v, ok := r.Value(name)
	if !ok {
		return "", errors.New(errors.ErrCodeDataFormat, "record %s: missing column %q", r.ID, name)
	}
	return v, nil
}

// PartyCode returns the respondent's own party code.
func (r Record) PartyCode() (int, error) {
	raw, err := r.required(r.table.columns.PartyCode)
	if err != nil {
		return 0, err
	}
	code, ok := ParseCode(raw)
	if !ok {
		return 0, errors.New(errors.ErrCodeDataFormat, "record %s: party code %q is not an integer", r.ID, raw)
	}
	return code, nil
}

// PartyName returns the respondent's party display name, trimmed.
func (r Record) PartyName() (string, error) {
	raw, err := r.required(r.table.columns.PartyName)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// Incumbent reports whether the respondent held the seat before the election.
func (r Record) Incumbent() (bool, error) {
	raw, err := r.required(r.table.columns.Incumbency)
	if err != nil {
		return false, err
	}
	raw = strings.TrimSpace(raw)
	if raw == incumbentValue {
		return true, nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == 1 {
		return true, nil
	}
	return false, nil
}

// Slots returns the ten raw preference cells, trimmed, in slot order.
// Empty strings mark unanswered slots.
func (r Record) Slots() ([]string, error) {
	names := r.table.columns.SlotNames()
	slots := make([]string, len(names))
	for i, name := range names {
		v, err := r.required(name)
		if err != nil {
			return nil, err
		}
		slots[i] = strings.TrimSpace(v)
	}
	return slots, nil
}

// ParseCode parses a party code cell. Integral floats such as "2.0" are
// accepted because spreadsheet exports write sparse integer columns that way.
func ParseCode(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
