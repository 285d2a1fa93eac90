// Package parquet exports score history to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"os"
	"time"

	"github.com/huangsam/spacecap/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/rotisserie/eris"
)

// ScoringRun is one scoring run with its metadata.
// This struct maps to the sci_scoring_runs database table.
type ScoringRun struct {
	RunID          int64      `parquet:"run_id,snappy"`
	RunUUID        string     `parquet:"run_uuid,snappy"`
	ProfileName    string     `parquet:"profile_name,snappy"`
	StartTime      time.Time  `parquet:"start_time,snappy"`
	EndTime        *time.Time `parquet:"end_time,optional,snappy"` // Nil while a run is in flight
	RunDurationMs  *int32     `parquet:"run_duration_ms,optional,snappy"`
	TotalCountries int32      `parquet:"total_countries,snappy"`
	ConfigParams   *string    `parquet:"config_params,optional,snappy"` // JSON-encoded
}

// CountryScore is the flattened breakdown of one country in one run.
// This struct maps to the sci_country_scores database table.
type CountryScore struct {
	RunID                 int64     `parquet:"run_id,snappy"`
	CountryID             string    `parquet:"country_id,snappy,dict"`
	Region                string    `parquet:"region,snappy,dict"`
	ScoredAt              time.Time `parquet:"scored_at,snappy"`
	Overall               float64   `parquet:"overall,snappy"`
	Tier                  string    `parquet:"tier,snappy,dict"`
	GlobalRank            int32     `parquet:"global_rank,snappy"`
	RegionalRank          int32     `parquet:"regional_rank,snappy"`
	ScoreLaunch           float64   `parquet:"score_launch,snappy"`
	ScoreHumanSpaceflight float64   `parquet:"score_human_spaceflight,snappy"`
	ScorePropulsion       float64   `parquet:"score_propulsion,snappy"`
	ScoreDeepSpace        float64   `parquet:"score_deep_space,snappy"`
	ScoreSatellites       float64   `parquet:"score_satellites,snappy"`
	ScoreInfrastructure   float64   `parquet:"score_infrastructure,snappy"`
	ScoreIndependence     float64   `parquet:"score_independence,snappy"`
}

// writeParquet writes rows to outputPath with a schema inferred from T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "failed to create output file")
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return eris.Wrap(err, "failed to write data to parquet file")
	}
	if err := writer.Close(); err != nil {
		return eris.Wrap(err, "failed to finalize parquet file")
	}
	return nil
}

// WriteScoringRunsParquet writes scoring runs to a Parquet file.
func WriteScoringRunsParquet(data []ScoringRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteCountryScoresParquet writes country scores to a Parquet file.
func WriteCountryScoresParquet(data []CountryScore, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertScoringRunRecords converts store rows for Parquet export.
func ConvertScoringRunRecords(records []schema.ScoringRunRecord) []ScoringRun {
	result := make([]ScoringRun, len(records))
	for i, record := range records {
		result[i] = ScoringRun{
			RunID:          record.RunID,
			RunUUID:        record.RunUUID,
			ProfileName:    record.ProfileName,
			StartTime:      record.StartTime,
			EndTime:        record.EndTime,
			RunDurationMs:  record.RunDurationMs,
			TotalCountries: record.TotalCountries,
			ConfigParams:   record.ConfigParams,
		}
	}
	return result
}

// ConvertCountryScoreRecords converts store rows for Parquet export.
func ConvertCountryScoreRecords(records []schema.CountryScoreRecord) []CountryScore {
	result := make([]CountryScore, len(records))
	for i, record := range records {
		result[i] = CountryScore{
			RunID:                 record.RunID,
			CountryID:             record.CountryID,
			Region:                record.Region,
			ScoredAt:              record.ScoredAt,
			Overall:               record.Overall,
			Tier:                  record.Tier,
			GlobalRank:            record.GlobalRank,
			RegionalRank:          record.RegionalRank,
			ScoreLaunch:           record.Launch,
			ScoreHumanSpaceflight: record.HumanSpaceflight,
			ScorePropulsion:       record.Propulsion,
			ScoreDeepSpace:        record.DeepSpace,
			ScoreSatellites:       record.Satellites,
			ScoreInfrastructure:   record.Infrastructure,
			ScoreIndependence:     record.Independence,
		}
	}
	return result
}
