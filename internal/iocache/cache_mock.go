package iocache

import (
	"time"

	"github.com/huangsam/spacecap/internal/contract"
	"github.com/huangsam/spacecap/schema"
	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetBreakdownStore implements the CacheManager interface.
func (m *MockCacheManager) GetBreakdownStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetHistoryStore implements the CacheManager interface.
func (m *MockCacheManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	data, _ := args.Get(0).([]byte)
	return data, args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, data []byte, version int, ts int64) error {
	args := m.Called(key, data, version, ts)
	return args.Error(0)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(runUUID, profileName string, startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(runUUID, profileName, startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the HistoryStore interface.
func (m *MockHistoryStore) EndRun(runID int64, endTime time.Time, totalCountries int) error {
	args := m.Called(runID, endTime, totalCountries)
	return args.Error(0)
}

// RecordCountryScore implements the HistoryStore interface.
func (m *MockHistoryStore) RecordCountryScore(record schema.CountryScoreRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

// LatestScores implements the HistoryStore interface.
func (m *MockHistoryStore) LatestScores(profileName string) (map[string]float64, error) {
	args := m.Called(profileName)
	scores, _ := args.Get(0).(map[string]float64)
	return scores, args.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// GetAllScoringRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllScoringRuns() ([]schema.ScoringRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.ScoringRunRecord)
	return runs, args.Error(1)
}

// GetAllCountryScores implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllCountryScores() ([]schema.CountryScoreRecord, error) {
	args := m.Called()
	scores, _ := args.Get(0).([]schema.CountryScoreRecord)
	return scores, args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
