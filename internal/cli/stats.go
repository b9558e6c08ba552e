package cli

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/partynet/pkg/graph"
	pio "github.com/matzehuels/partynet/pkg/io"
	"github.com/matzehuels/partynet/pkg/pipeline"
)

// partyRow is one line of the stats table.
type partyRow struct {
	Code       int
	Name       string
	Candidates int
	Incumbents int
	Named      int // preferences stated by the party's candidates
	NamedBy    int // preferences naming the party
}

func (c *CLI) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print per-party counts without rendering",
		Long: `Print per-party candidate, incumbent and preference counts.

The input is either the questionnaire CSV or a .json document exported by
an earlier render.`,
		Args: cobra.NoArgs,
		RunE: c.runStats,
	}
}

func (c *CLI) runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	opts, err := loadOptions(c.Fs, cmd.Flags())
	if err != nil {
		return err
	}
	opts.Logger = loggerFromContext(ctx)

	var rows []partyRow
	if strings.EqualFold(filepath.Ext(opts.Input), ".json") {
		doc, err := pio.ImportDocument(c.Fs, opts.Input)
		if err != nil {
			return err
		}
		rows = documentRows(doc)
		printKeyValue(c.Out, "document", opts.Input)
		printKeyValue(c.Out, "hash", doc.Hash)
		printKeyValue(c.Out, "seed", strconv.FormatUint(doc.Seed, 10))
	} else {
		result, err := c.newRunner().Analyze(ctx, opts)
		if err != nil {
			return err
		}
		rows = resultRows(result)
		printKeyValue(c.Out, "survey", opts.Input)
		printKeyValue(c.Out, "respondents", strconv.Itoa(result.Records))
		printKeyValue(c.Out, "hash", result.GraphHash)
		for _, conflict := range result.Styles.Conflicts {
			printWarning(c.Out, "party %d also listed as %q (record %s)", conflict.Code, conflict.Ignored, conflict.RecordID)
		}
	}

	fmt.Fprintln(c.Out)
	fmt.Fprintln(c.Out, renderPartyTable(rows))
	return nil
}

// resultRows lists every respondent party, graph node or not.
func resultRows(res *pipeline.Result) []partyRow {
	named := make(map[int]int)
	namedBy := make(map[int]int)
	for _, e := range res.Graph.Edges() {
		named[e.From] += e.Count
		namedBy[e.To] += e.Count
	}

	codes := res.Tally.Parties()
	rows := make([]partyRow, 0, len(codes))
	for _, code := range codes {
		name, _ := res.Styles.Name(code)
		rows = append(rows, partyRow{
			Code:       code,
			Name:       name,
			Candidates: res.Tally.Candidates[code],
			Incumbents: res.Tally.Incumbents[code],
			Named:      named[code],
			NamedBy:    namedBy[code],
		})
	}
	return rows
}

func documentRows(doc graph.Document) []partyRow {
	named := make(map[int]int)
	namedBy := make(map[int]int)
	for _, l := range doc.Links {
		named[l.From] += l.Count
		namedBy[l.To] += l.Count
	}
	rows := make([]partyRow, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		rows = append(rows, partyRow{
			Code:       n.Code,
			Name:       n.Name,
			Candidates: n.Candidates,
			Incumbents: n.Incumbents,
			Named:      named[n.Code],
			NamedBy:    namedBy[n.Code],
		})
	}
	slices.SortFunc(rows, func(a, b partyRow) int { return a.Code - b.Code })
	return rows
}

func renderPartyTable(rows []partyRow) string {
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{
			strconv.Itoa(r.Code),
			r.Name,
			strconv.Itoa(r.Candidates),
			strconv.Itoa(r.Incumbents),
			strconv.Itoa(r.Named),
			strconv.Itoa(r.NamedBy),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Code", "Party", "Candidates", "Incumbents", "Named", "Named by").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col >= 2 {
				return lipgloss.NewStyle().Foreground(colorCyan).Align(lipgloss.Right)
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}
