package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/huangsam/spacecap/internal/contract"
	"github.com/huangsam/spacecap/schema"
	"github.com/rotisserie/eris"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return eris.Wrapf(err, "cannot open output file %s", outputFile)
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return eris.Wrap(err, "failed to encode JSON")
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(header); err != nil {
		return eris.Wrap(err, "failed to write CSV header")
	}
	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// dispatch writes data in the configured format. Text output uses writeText.
func dispatch(cfg *contract.Config, data any, header []string, writeRows func(*csv.Writer) error, writeText func(io.Writer) error) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, data)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, header, writeRows)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, writeText, "Wrote table")
	}
}

// createFormatter returns a float formatter for the configured precision.
func createFormatter(precision int) func(float64) string {
	return func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
}

// formatOptional formats a nullable score, using "-" for nil.
func formatOptional(v *float64, fmtFloat func(float64) string) string {
	if v == nil {
		return "-"
	}
	return fmtFloat(*v)
}

// formatDelta formats a nullable delta with an explicit sign.
func formatDelta(v *float64, precision int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%+.*f", precision, *v)
}

// joinCategories joins category ids for CSV cells.
func joinCategories(cats []schema.CategoryID) string {
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = string(c)
	}
	return strings.Join(parts, "|")
}

// labelCategories joins category labels for table cells.
func labelCategories(cats []schema.CategoryID) string {
	if len(cats) == 0 {
		return "-"
	}
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = schema.CategoryLabel(c)
	}
	return strings.Join(parts, ", ")
}

// shortLabel returns a compact column header for a category.
func shortLabel(cat schema.CategoryID) string {
	if d, ok := schema.CategoryDisplayOf(cat); ok && d.Icon != "" {
		return d.Icon
	}
	return string(cat)
}

// tierCell renders a tier name, colored when colors are enabled.
func tierCell(name string, cfg *contract.Config) string {
	if !cfg.UseColors || cfg.Profile == nil {
		return name
	}
	return contract.GetColorTier(name, cfg.Profile.Tiers)
}

// trendCell renders a trend, colored when colors are enabled.
func trendCell(trend schema.Trend, cfg *contract.Config) string {
	if !cfg.UseColors {
		return contract.GetTrendSymbol(trend) + " " + string(trend)
	}
	return contract.GetColorTrend(trend)
}
