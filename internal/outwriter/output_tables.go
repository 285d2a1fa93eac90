package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/huangsam/spacecap/internal/contract"
	"github.com/huangsam/spacecap/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/rotisserie/eris"
)

// weightBarWidth is the number of cells of a full (1.0) weight bar.
const weightBarWidth = 40

// WriteWeightTable outputs the category weights, dispatching based on the output format configured.
func WriteWeightTable(weights []schema.CategoryWeight, cfg *contract.Config) error {
	err := dispatch(cfg, weights, []string{"category", "label", "weight"},
		func(w *csv.Writer) error {
			for _, cw := range weights {
				rec := []string{string(cw.Category), schema.CategoryLabel(cw.Category), fmt.Sprintf("%.4f", cw.Weight)}
				if err := w.Write(rec); err != nil {
					return eris.Wrap(err, "failed to write CSV record")
				}
			}
			return nil
		},
		func(w io.Writer) error {
			table := tablewriter.NewWriter(w)
			table.Header([]string{"Category", "Weight", "Share"})
			var data [][]string
			var total float64
			for _, cw := range weights {
				total += cw.Weight
				data = append(data, []string{
					schema.CategoryLabel(cw.Category),
					fmt.Sprintf("%.2f", cw.Weight),
					strings.Repeat("█", int(math.Round(cw.Weight*weightBarWidth))),
				})
			}
			if err := table.Bulk(data); err != nil {
				return err
			}
			if err := table.Render(); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Profile %q, total weight %.2f\n", cfg.ProfileName, total)
			return err
		},
	)
	return eris.Wrap(err, "error writing weights")
}

// WriteTierTable outputs the tier thresholds, dispatching based on the output format configured.
func WriteTierTable(tiers []schema.TierThreshold, cfg *contract.Config) error {
	err := dispatch(cfg, tiers, []string{"tier", "min_score", "max_score"},
		func(w *csv.Writer) error {
			for i, t := range tiers {
				rec := []string{t.Name, fmt.Sprintf("%g", t.MinScore), fmt.Sprintf("%g", tierCeiling(tiers, i))}
				if err := w.Write(rec); err != nil {
					return eris.Wrap(err, "failed to write CSV record")
				}
			}
			return nil
		},
		func(w io.Writer) error {
			table := tablewriter.NewWriter(w)
			table.Header([]string{"Tier", "Range"})
			var data [][]string
			for i, t := range tiers {
				data = append(data, []string{
					tierCell(t.Name, cfg),
					fmt.Sprintf("%g ≤ score < %g", t.MinScore, tierCeiling(tiers, i)),
				})
			}
			if len(data) > 0 {
				// The top tier includes a perfect score
				data[0][1] = fmt.Sprintf("%g ≤ score ≤ 100", tiers[0].MinScore)
			}
			if err := table.Bulk(data); err != nil {
				return err
			}
			return table.Render()
		},
	)
	return eris.Wrap(err, "error writing tiers")
}

// tierCeiling returns the exclusive upper bound of the tier at index i.
func tierCeiling(tiers []schema.TierThreshold, i int) float64 {
	if i == 0 {
		return 100
	}
	return tiers[i-1].MinScore
}
