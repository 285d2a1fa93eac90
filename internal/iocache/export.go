package iocache

import (
	"fmt"
	"io"

	"github.com/huangsam/spacecap/internal/contract"
	"github.com/huangsam/spacecap/internal/parquet"
	"github.com/rotisserie/eris"
)

// ExecuteHistoryExport exports recorded runs and country scores to Parquet files
// named after outputFile.
func ExecuteHistoryExport(w io.Writer, store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return eris.New("--output-file is required for export command")
	}
	if store == nil {
		return eris.New("history tracking is disabled. Set --history-backend to enable it")
	}

	status, err := store.GetStatus()
	if err != nil {
		return eris.Wrap(err, "failed to get history status")
	}
	if status.TotalRuns == 0 {
		return eris.New("no history data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total scoring runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total country records: %d\n", status.TableSizes[countryScoresTable])

	runs, err := store.GetAllScoringRuns()
	if err != nil {
		return eris.Wrap(err, "failed to retrieve scoring runs")
	}
	scores, err := store.GetAllCountryScores()
	if err != nil {
		return eris.Wrap(err, "failed to retrieve country scores")
	}

	runsFile := outputFile + ".scoring_runs.parquet"
	if err := parquet.WriteScoringRunsParquet(parquet.ConvertScoringRunRecords(runs), runsFile); err != nil {
		return eris.Wrap(err, "failed to write scoring runs")
	}
	_, _ = fmt.Fprintf(w, "Exported %d scoring runs to: %s\n", len(runs), runsFile)

	scoresFile := outputFile + ".country_scores.parquet"
	if err := parquet.WriteCountryScoresParquet(parquet.ConvertCountryScoreRecords(scores), scoresFile); err != nil {
		return eris.Wrap(err, "failed to write country scores")
	}
	_, _ = fmt.Fprintf(w, "Exported %d country score records to: %s\n", len(scores), scoresFile)

	return nil
}
