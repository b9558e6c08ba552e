package survey

import (
	"fmt"

	"github.com/matzehuels/partynet/pkg/errors"
)

// SlotCount is the number of "preferred partner party" questionnaire slots.
const SlotCount = 10

// Columns names the header cells the loader and accessors look up.
type Columns struct {
	ID         string
	PartyCode  string
	PartyName  string
	Incumbency string
	// SlotPattern is a fmt pattern taking the 1-based slot number.
	SlotPattern string
}

// DefaultColumns returns the column contract of the 2024 general election
// candidate questionnaire.
func DefaultColumns() Columns {
	return Columns{
		ID:          "整理番号",
		PartyCode:   "集計党派CD",
		PartyName:   "集計党派",
		Incumbency:  "新旧",
		SlotPattern: "Q27\n-%02d",
	}
}

// Slot returns the header of the i-th preference slot (1-based).
func (c Columns) Slot(i int) string {
	return fmt.Sprintf(c.SlotPattern, i)
}

// SlotNames returns the headers of all preference slots in order.
func (c Columns) SlotNames() []string {
	names := make([]string, SlotCount)
	for i := range names {
		names[i] = c.Slot(i + 1)
	}
	return names
}

// Validate checks that every column name is usable.
func (c Columns) Validate() error {
	for _, name := range []string{c.ID, c.PartyCode, c.PartyName, c.Incumbency, c.SlotPattern} {
		if err := errors.ValidateColumnName(name); err != nil {
			return err
		}
	}
	return nil
}
