package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/spacecap/internal/contract"
	"github.com/huangsam/spacecap/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/rotisserie/eris"
)

// WriteRankingResults outputs the ranked breakdowns, dispatching based on the output format configured.
func WriteRankingResults(rankings schema.SCIRankings, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)
	err := dispatch(cfg, rankings, rankingCSVHeader(),
		func(w *csv.Writer) error {
			return writeRankingCSVRows(w, rankings.Breakdowns, fmtFloat)
		},
		func(w io.Writer) error {
			return writeRankingTable(w, rankings, cfg, fmtFloat, duration)
		},
	)
	return eris.Wrap(err, "error writing rankings")
}

// rankingCSVHeader returns the CSV header for ranked breakdowns.
func rankingCSVHeader() []string {
	header := []string{"rank", "regional_rank", "country_id", "country_name", "region", "overall", "tier", "trend", "prior_score", "delta"}
	for _, cat := range schema.AllCategories {
		header = append(header, string(cat))
	}
	return append(header, "strengths", "weaknesses")
}

// writeRankingCSVRows writes one CSV record per breakdown.
func writeRankingCSVRows(w *csv.Writer, breakdowns []schema.SCIBreakdown, fmtFloat func(float64) string) error {
	for _, b := range breakdowns {
		rec := []string{
			strconv.Itoa(b.GlobalRank),
			strconv.Itoa(b.RegionalRank),
			b.CountryID,
			b.CountryName,
			b.Region,
			fmtFloat(b.Overall),
			b.Tier,
			string(b.Trend),
			formatOptional(b.PriorScore, fmtFloat),
			formatOptional(b.Delta, fmtFloat),
		}
		for _, cat := range schema.AllCategories {
			rec = append(rec, fmtFloat(b.CategoryScoreOf(cat)))
		}
		rec = append(rec, joinCategories(b.Strengths), joinCategories(b.Weaknesses))
		if err := w.Write(rec); err != nil {
			return eris.Wrapf(err, "failed to write CSV record for %s", b.CountryID)
		}
	}
	return nil
}

// writeRankingTable generates and writes the human-readable table.
func writeRankingTable(w io.Writer, rankings schema.SCIRankings, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Rank", "Reg", "Country", "Region", "Overall", "Tier", "Trend"}
	if cfg.Detail {
		for _, cat := range schema.AllCategories {
			headers = append(headers, shortLabel(cat))
		}
	}
	table.Header(headers)
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for _, b := range rankings.Breakdowns {
		row := []string{
			strconv.Itoa(b.GlobalRank),
			strconv.Itoa(b.RegionalRank),
			contract.TruncateName(b.CountryName, nameWidth),
			b.Region,
			fmtFloat(b.Overall),
			tierCell(b.Tier, cfg),
			trendCell(b.Trend, cfg),
		}
		if cfg.Detail {
			for _, cat := range schema.AllCategories {
				row = append(row, fmtFloat(b.CategoryScoreOf(cat)))
			}
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	s := rankings.Stats
	if _, err := fmt.Fprintf(w, "Showing %d of %d countries (mean: %s, median: %s, max: %s, min: %s)\n",
		len(rankings.Breakdowns), s.Count, fmtFloat(s.Mean), fmtFloat(s.Median), fmtFloat(s.Max), fmtFloat(s.Min)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Scored in %v with %d workers using profile %q. Cache backend: %s\n",
		duration, cfg.Workers, cfg.ProfileName, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}
