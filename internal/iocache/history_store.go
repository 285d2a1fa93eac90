package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/spacecap/internal/contract"
	"github.com/huangsam/spacecap/schema"
	"github.com/rotisserie/eris"
)

// Table names for score history.
const (
	scoringRunsTable   = "sci_scoring_runs"
	countryScoresTable = "sci_country_scores"
)

// countryScoreColumns lists the sci_country_scores columns in insert and select order.
const countryScoreColumns = `run_id, country_id, region, scored_at, overall, tier, global_rank, regional_rank,
	score_launch, score_human_spaceflight, score_propulsion, score_deep_space,
	score_satellites, score_infrastructure, score_independence`

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDatabase(backend, connStr, GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "failed to create history tables")
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

func (hs *HistoryStoreImpl) disabled() bool {
	return hs.backend == schema.NoneBackend || hs.db == nil
}

func (hs *HistoryStoreImpl) table(name string) string {
	return quoteTableName(name, hs.backend)
}

// BeginRun creates a new scoring run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(runUUID, profileName string, startTime time.Time, configParams map[string]any) (int64, error) {
	if hs.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, eris.Wrap(err, "failed to marshal config params")
	}

	args := []any{runUUID, profileName, formatTime(startTime, hs.backend), string(configJSON)}
	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (run_uuid, profile_name, start_time, config_params) VALUES ($1, $2, $3, $4) RETURNING run_id`,
			hs.table(scoringRunsTable))
		err = hs.db.QueryRow(query, args...).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (run_uuid, profile_name, start_time, config_params) VALUES (?, ?, ?, ?)`,
			hs.table(scoringRunsTable))
		var result sql.Result
		result, err = hs.db.Exec(query, args...)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, eris.Wrap(err, "failed to insert scoring run")
	}
	return runID, nil
}

// EndRun updates the scoring run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, totalCountries int) error {
	if hs.disabled() {
		return nil
	}

	var start timeScanner
	query := rebind(fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, hs.table(scoringRunsTable)), hs.backend)
	if err := hs.db.QueryRow(query, runID).Scan(&start); err != nil {
		return eris.Wrapf(err, "failed to get start_time for run %d", runID)
	}

	durationMs := endTime.Sub(start.Time).Milliseconds()
	update := rebind(fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_countries = ? WHERE run_id = ?`,
		hs.table(scoringRunsTable)), hs.backend)
	if _, err := hs.db.Exec(update, formatTime(endTime, hs.backend), durationMs, totalCountries, runID); err != nil {
		return eris.Wrap(err, "failed to update scoring run")
	}
	return nil
}

// RecordCountryScore stores the final scores for a country.
func (hs *HistoryStoreImpl) RecordCountryScore(record schema.CountryScoreRecord) error {
	if hs.disabled() {
		return nil
	}

	query := rebind(fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		hs.table(countryScoresTable), countryScoreColumns), hs.backend)
	_, err := hs.db.Exec(query,
		record.RunID, record.CountryID, record.Region, formatTime(record.ScoredAt, hs.backend),
		record.Overall, record.Tier, record.GlobalRank, record.RegionalRank,
		record.Launch, record.HumanSpaceflight, record.Propulsion, record.DeepSpace,
		record.Satellites, record.Infrastructure, record.Independence,
	)
	if err != nil {
		return eris.Wrapf(err, "failed to insert score for %s", record.CountryID)
	}
	return nil
}

// LatestScores returns the overall score of each country from the most
// recent completed run of the named profile that scored it.
func (hs *HistoryStoreImpl) LatestScores(profileName string) (map[string]float64, error) {
	scores := make(map[string]float64)
	if hs.disabled() {
		return scores, nil
	}

	runs, countries := hs.table(scoringRunsTable), hs.table(countryScoresTable)
	query := fmt.Sprintf(`
		SELECT s.country_id, s.overall FROM %[2]s s
		JOIN (
			SELECT c.country_id, MAX(c.run_id) AS run_id FROM %[2]s c
			JOIN %[1]s r ON r.run_id = c.run_id
			WHERE r.end_time IS NOT NULL AND r.profile_name = ?
			GROUP BY c.country_id
		) latest ON latest.country_id = s.country_id AND latest.run_id = s.run_id`, runs, countries)

	rows, err := hs.db.Query(rebind(query, hs.backend), profileName)
	if err != nil {
		return nil, eris.Wrap(err, "failed to query latest scores")
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id string
		var overall float64
		if err := rows.Scan(&id, &overall); err != nil {
			return nil, eris.Wrap(err, "failed to scan latest score")
		}
		scores[id] = overall
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "error iterating latest scores")
	}
	return scores, nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.disabled() {
		return status, nil
	}

	runs := hs.table(scoringRunsTable)
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runs)).Scan(&status.TotalRuns); err != nil {
		return status, eris.Wrap(err, "failed to get total runs")
	}

	if status.TotalRuns > 0 {
		var last, oldest timeScanner
		row := hs.db.QueryRow(fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", runs))
		if err := row.Scan(&status.LastRunID, &last); err != nil {
			return status, eris.Wrap(err, "failed to get last run info")
		}
		status.LastRunTime = last.Time

		row = hs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", runs))
		if err := row.Scan(&oldest); err != nil {
			return status, eris.Wrap(err, "failed to get oldest run time")
		}
		status.OldestRunTime = oldest.Time

		row = hs.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(total_countries), 0) FROM %s", runs))
		if err := row.Scan(&status.TotalCountriesScored); err != nil {
			return status, eris.Wrap(err, "failed to get total countries scored")
		}
	}

	for _, table := range []string{scoringRunsTable, countryScoresTable} {
		var count int64
		if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", hs.table(table))).Scan(&count); err != nil {
			return status, eris.Wrapf(err, "failed to get count for table %s", table)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllScoringRuns retrieves all scoring runs from the store.
func (hs *HistoryStoreImpl) GetAllScoringRuns() ([]schema.ScoringRunRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, run_uuid, profile_name, start_time, end_time, run_duration_ms, total_countries, config_params
		FROM %s ORDER BY run_id`, hs.table(scoringRunsTable))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, eris.Wrap(err, "failed to query scoring runs")
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ScoringRunRecord
	for rows.Next() {
		var record schema.ScoringRunRecord
		var start, end timeScanner
		if err := rows.Scan(&record.RunID, &record.RunUUID, &record.ProfileName, &start, &end,
			&record.RunDurationMs, &record.TotalCountries, &record.ConfigParams); err != nil {
			return nil, eris.Wrap(err, "failed to scan scoring run")
		}
		record.StartTime = start.Time
		record.EndTime = end.Ptr()
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "error iterating scoring runs")
	}
	return results, nil
}

// GetAllCountryScores retrieves all country scores from the store.
func (hs *HistoryStoreImpl) GetAllCountryScores() ([]schema.CountryScoreRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY run_id, country_id`, countryScoreColumns, hs.table(countryScoresTable))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, eris.Wrap(err, "failed to query country scores")
	}
	defer func() { _ = rows.Close() }()

	var results []schema.CountryScoreRecord
	for rows.Next() {
		var r schema.CountryScoreRecord
		var scoredAt timeScanner
		if err := rows.Scan(&r.RunID, &r.CountryID, &r.Region, &scoredAt, &r.Overall, &r.Tier,
			&r.GlobalRank, &r.RegionalRank, &r.Launch, &r.HumanSpaceflight, &r.Propulsion,
			&r.DeepSpace, &r.Satellites, &r.Infrastructure, &r.Independence); err != nil {
			return nil, eris.Wrap(err, "failed to scan country score")
		}
		r.ScoredAt = scoredAt.Time
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "error iterating country scores")
	}
	return results, nil
}
