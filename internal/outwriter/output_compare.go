package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/spacecap/internal/contract"
	"github.com/huangsam/spacecap/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/rotisserie/eris"
)

// WriteComparisonResults outputs a comparison, dispatching based on the output format configured.
func WriteComparisonResults(cmp schema.SCIComparison, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)
	header := []string{"category", "leader_id", "leader_score", "country_id", "score", "gap"}
	err := dispatch(cfg, cmp, header,
		func(w *csv.Writer) error {
			return writeComparisonCSVRows(w, cmp, fmtFloat)
		},
		func(w io.Writer) error {
			return writeComparisonTable(w, cmp, cfg, fmtFloat, duration)
		},
	)
	return eris.Wrap(err, "error writing comparison")
}

// writeComparisonCSVRows writes one record per country per category, followed
// by the overall scores under the "overall" category.
func writeComparisonCSVRows(w *csv.Writer, cmp schema.SCIComparison, fmtFloat func(float64) string) error {
	for _, leader := range cmp.Leaders {
		for _, gap := range leader.Gaps {
			rec := []string{string(leader.Category), leader.LeaderID, fmtFloat(leader.LeaderScore), gap.CountryID, fmtFloat(gap.Score), fmtFloat(gap.Gap)}
			if err := w.Write(rec); err != nil {
				return eris.Wrap(err, "failed to write CSV record")
			}
		}
	}

	var top float64
	for _, b := range cmp.Breakdowns {
		if b.CountryID == cmp.CompositeLeader {
			top = b.Overall
		}
	}
	for _, b := range cmp.Breakdowns {
		rec := []string{"overall", cmp.CompositeLeader, fmtFloat(top), b.CountryID, fmtFloat(b.Overall), fmtFloat(top - b.Overall)}
		if err := w.Write(rec); err != nil {
			return eris.Wrap(err, "failed to write CSV record")
		}
	}
	return nil
}

// writeComparisonTable renders categories as rows and countries as columns.
func writeComparisonTable(w io.Writer, cmp schema.SCIComparison, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Category"}
	for _, b := range cmp.Breakdowns {
		headers = append(headers, contract.TruncateName(b.CountryName, GetMaxTableNameWidth(cfg)))
	}
	headers = append(headers, "Leader")
	table.Header(headers)
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, leader := range cmp.Leaders {
		row := []string{schema.CategoryLabel(leader.Category)}
		for _, gap := range leader.Gaps {
			cell := fmtFloat(gap.Score)
			if gap.Gap > 0 {
				cell += fmt.Sprintf(" (-%s)", fmtFloat(gap.Gap))
			}
			row = append(row, cell)
		}
		data = append(data, append(row, leader.LeaderID))
	}

	overall := []string{"Overall"}
	tiers := []string{"Tier"}
	for _, b := range cmp.Breakdowns {
		overall = append(overall, fmtFloat(b.Overall))
		tiers = append(tiers, tierCell(b.Tier, cfg))
	}
	data = append(data, append(overall, cmp.CompositeLeader), append(tiers, ""))

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Compared %d countries in %v. Composite leader: %s\n", len(cmp.Breakdowns), duration, cmp.CompositeLeader)
	return err
}
