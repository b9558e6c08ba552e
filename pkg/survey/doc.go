// Package survey loads the candidate questionnaire table.
//
// The input is a delimited file with a header row. One column holds a
// unique respondent identifier; the remaining columns of interest are
// named by a fixed [Columns] contract with the data source:
//
//	整理番号     respondent identifier
//	集計党派CD   respondent's party code
//	集計党派     respondent's party display name
//	新旧         incumbency indicator (1 = incumbent)
//	Q27\n-01 …   ten "preferred partner party" slots
//
// [Load] only checks the identifier column: it must exist and its values
// must be unique and non-empty. Every other cell is kept as a raw string
// and coerced on access ([Record.PartyCode], [Record.Slots]), so type
// errors surface where the value is used and name the offending record.
//
// Input decoding supports UTF-8 (with or without a byte order mark) and
// Shift_JIS, the two encodings the newspaper exports are published in.
package survey
