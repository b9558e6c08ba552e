// Package prefs turns questionnaire records into directed party
// preference edges and aggregates them.
//
// Every respondent names up to ten parties they would like to cooperate
// with. Each non-empty slot becomes an [Edge] from the respondent's own
// party to the named party. [Aggregate] counts edges across all
// respondents and tallies candidates and incumbents per party.
//
// Respondents belonging to an excluded category (by default the
// "other minor parties" and "independent" codes) still count as
// candidates of their party but contribute no edges.
package prefs
