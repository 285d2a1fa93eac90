package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/huangsam/spacecap/internal/contract"
	"github.com/huangsam/spacecap/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/rotisserie/eris"
)

// WriteBreakdownResult outputs one country breakdown, dispatching based on the output format configured.
func WriteBreakdownResult(b schema.SCIBreakdown, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)
	header := []string{"country_id", "category", "score", "weight", "metric", "raw", "normalized", "metric_weight", "contribution"}
	err := dispatch(cfg, b, header,
		func(w *csv.Writer) error {
			return writeBreakdownCSVRows(w, b, cfg.Profile, fmtFloat)
		},
		func(w io.Writer) error {
			return writeBreakdownText(w, b, cfg, fmtFloat, duration)
		},
	)
	return eris.Wrap(err, "error writing breakdown")
}

// writeBreakdownCSVRows writes one record per metric contribution, or one per
// category when a category has no metrics.
func writeBreakdownCSVRows(w *csv.Writer, b schema.SCIBreakdown, profile *schema.ScoringProfile, fmtFloat func(float64) string) error {
	for _, cs := range b.Categories {
		base := []string{b.CountryID, string(cs.Category), fmtFloat(cs.Score), fmtFloat(weightOf(profile, cs.Category))}
		if len(cs.Metrics) == 0 {
			if err := w.Write(append(base, "", "", "", "", "")); err != nil {
				return eris.Wrap(err, "failed to write CSV record")
			}
			continue
		}
		for _, m := range cs.Metrics {
			rec := append(append([]string(nil), base...),
				m.Name, formatRaw(m.Raw), fmtFloat(m.Normalized), fmt.Sprintf("%.2f", m.Weight), fmtFloat(m.Contribution))
			if err := w.Write(rec); err != nil {
				return eris.Wrap(err, "failed to write CSV record")
			}
		}
	}
	return nil
}

// writeBreakdownText writes a header card followed by the category table.
func writeBreakdownText(w io.Writer, b schema.SCIBreakdown, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if _, err := fmt.Fprintln(w, renderHeaderCard(b, cfg, fmtFloat)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	headers := []string{"Category", "Score", "Weight", "Weighted"}
	if cfg.Detail {
		headers = append(headers, "Metrics")
	}
	table.Header(headers)
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.PerColumn = []tw.Align{tw.AlignLeft, tw.AlignRight, tw.AlignRight, tw.AlignRight, tw.AlignLeft}
	})

	var data [][]string
	for _, cs := range b.Categories {
		weight := weightOf(cfg.Profile, cs.Category)
		row := []string{
			categoryCell(cs.Category, b),
			fmtFloat(cs.Score),
			fmt.Sprintf("%.2f", weight),
			fmtFloat(cs.Score * weight),
		}
		if cfg.Detail {
			row = append(row, formatMetrics(cs.Metrics, fmtFloat))
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Strengths: %s\nWeaknesses: %s\nScored in %v using profile %q\n",
		labelCategories(b.Strengths), labelCategories(b.Weaknesses), duration, cfg.ProfileName)
	return err
}

// renderHeaderCard renders the bordered summary shown above a breakdown.
func renderHeaderCard(b schema.SCIBreakdown, cfg *contract.Config, fmtFloat func(float64) string) string {
	title := fmt.Sprintf("%s (%s) · %s", b.CountryName, strings.ToUpper(b.CountryID), b.Region)
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(title),
		fmt.Sprintf("Overall %s · %s · rank #%d global, #%d in region", fmtFloat(b.Overall), b.Tier, b.GlobalRank, b.RegionalRank),
		fmt.Sprintf("Trend %s · prior %s · delta %s",
			contract.GetTrendSymbol(b.Trend)+" "+string(b.Trend), formatOptional(b.PriorScore, fmtFloat), formatDelta(b.Delta, cfg.Precision)),
	}

	style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	if c := schema.TierColor(b.Tier); cfg.UseColors && c != "" {
		style = style.BorderForeground(lipgloss.Color(c))
	}
	return style.Render(strings.Join(lines, "\n"))
}

// categoryCell labels a category and marks strengths and weaknesses.
func categoryCell(cat schema.CategoryID, b schema.SCIBreakdown) string {
	label := schema.CategoryLabel(cat)
	for _, s := range b.Strengths {
		if s == cat {
			return label + " +"
		}
	}
	for _, s := range b.Weaknesses {
		if s == cat {
			return label + " -"
		}
	}
	return label
}

// formatMetrics lists metric contributions for the detail column.
func formatMetrics(metrics []schema.MetricContribution, fmtFloat func(float64) string) string {
	if len(metrics) == 0 {
		return "-"
	}
	parts := make([]string, len(metrics))
	for i, m := range metrics {
		parts[i] = fmt.Sprintf("%s=%s (%s)", m.Name, formatRaw(m.Raw), fmtFloat(m.Normalized))
	}
	return strings.Join(parts, "\n")
}

// formatRaw renders a raw metric value, using "-" for missing values.
func formatRaw(v any) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(v)
}

func weightOf(profile *schema.ScoringProfile, cat schema.CategoryID) float64 {
	if profile == nil {
		return 0
	}
	return profile.WeightOf(cat)
}
