package iocache

import (
	"github.com/stretchr/testify/mock"

	"github.com/huangsam/triage/internal/contract"
	"github.com/huangsam/triage/schema"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetIndexStore implements the CacheManager interface.
func (m *MockCacheManager) GetIndexStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetAnalysisStore implements the CacheManager interface.
func (m *MockCacheManager) GetAnalysisStore() contract.AnalysisStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.AnalysisStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(path string) ([]byte, string, error) {
	args := m.Called(path)
	blob, _ := args.Get(0).([]byte)
	return blob, args.String(1), args.Error(2)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(path string, value []byte, fingerprint string, timestamp int64) error {
	args := m.Called(path, value, fingerprint, timestamp)
	return args.Error(0)
}

// Keys implements the CacheStore interface.
func (m *MockCacheStore) Keys() ([]string, error) {
	args := m.Called()
	keys, _ := args.Get(0).([]string)
	return keys, args.Error(1)
}

// Delete implements the CacheStore interface.
func (m *MockCacheStore) Delete(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockAnalysisStore is a mock implementation of AnalysisStore for testing.
type MockAnalysisStore struct {
	mock.Mock
}

var _ contract.AnalysisStore = &MockAnalysisStore{} // Compile-time check

// BeginAnalysis implements the AnalysisStore interface.
func (m *MockAnalysisStore) BeginAnalysis(startUnix int64, configParams map[string]any) (int64, error) {
	args := m.Called(startUnix, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndAnalysis implements the AnalysisStore interface.
func (m *MockAnalysisStore) EndAnalysis(analysisID int64, endUnix int64, totalFiles int) error {
	args := m.Called(analysisID, endUnix, totalFiles)
	return args.Error(0)
}

// RecordFileScore implements the AnalysisStore interface.
func (m *MockAnalysisStore) RecordFileScore(analysisID int64, record schema.FileScoreRecord) error {
	args := m.Called(analysisID, record)
	return args.Error(0)
}

// GetAllAnalysisRuns implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.AnalysisRunRecord)
	return runs, args.Error(1)
}

// GetAllFileScores implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllFileScores() ([]schema.FileScoreRecord, error) {
	args := m.Called()
	scores, _ := args.Get(0).([]schema.FileScoreRecord)
	return scores, args.Error(1)
}

// GetStatus implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetStatus() (schema.AnalysisStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.AnalysisStatus), args.Error(1)
}

// Close implements the AnalysisStore interface.
func (m *MockAnalysisStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
