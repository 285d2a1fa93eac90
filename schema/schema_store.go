package schema

import "time"

// ScoringRunRecord represents a row from the sci_scoring_runs table.
type ScoringRunRecord struct {
	RunID          int64
	RunUUID        string
	ProfileName    string
	StartTime      time.Time
	EndTime        *time.Time
	RunDurationMs  *int32
	TotalCountries int32
	ConfigParams   *string
}

// CountryScoreRecord represents a row from the sci_country_scores table.
type CountryScoreRecord struct {
	RunID            int64
	CountryID        string
	Region           string
	ScoredAt         time.Time
	Overall          float64
	Tier             string
	GlobalRank       int32
	RegionalRank     int32
	Launch           float64
	HumanSpaceflight float64
	Propulsion       float64
	DeepSpace        float64
	Satellites       float64
	Infrastructure   float64
	Independence     float64
}

// NewCountryScoreRecord flattens a breakdown into a history row.
func NewCountryScoreRecord(runID int64, scoredAt time.Time, b SCIBreakdown) CountryScoreRecord {
	return CountryScoreRecord{
		RunID:            runID,
		CountryID:        b.CountryID,
		Region:           b.Region,
		ScoredAt:         scoredAt,
		Overall:          b.Overall,
		Tier:             b.Tier,
		GlobalRank:       int32(b.GlobalRank),
		RegionalRank:     int32(b.RegionalRank),
		Launch:           b.CategoryScoreOf(LaunchCategory),
		HumanSpaceflight: b.CategoryScoreOf(HumanSpaceflightCategory),
		Propulsion:       b.CategoryScoreOf(PropulsionCategory),
		DeepSpace:        b.CategoryScoreOf(DeepSpaceCategory),
		Satellites:       b.CategoryScoreOf(SatellitesCategory),
		Infrastructure:   b.CategoryScoreOf(InfrastructureCategory),
		Independence:     b.CategoryScoreOf(IndependenceCategory),
	}
}
