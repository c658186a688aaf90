package contract

import (
	"context"

	"github.com/huangsam/triage/schema"
	"github.com/stretchr/testify/mock"
)

// MockHistoryProvider is a mock implementation of the HistoryProvider
// interface for testing.
type MockHistoryProvider struct {
	mock.Mock
}

var _ HistoryProvider = &MockHistoryProvider{} // Compile-time check

// ChurnRecords mocks the ChurnRecords method.
func (m *MockHistoryProvider) ChurnRecords(ctx context.Context, repoPath string) ([]schema.ChurnRecord, error) {
	args := m.Called(ctx, repoPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.ChurnRecord), args.Error(1)
}

// RepoFingerprint mocks the RepoFingerprint method.
func (m *MockHistoryProvider) RepoFingerprint(ctx context.Context, repoPath string) string {
	args := m.Called(ctx, repoPath)
	return args.String(0)
}

// MockIssueSource is a mock implementation of the IssueSource interface for testing.
type MockIssueSource struct {
	mock.Mock
}

var _ IssueSource = &MockIssueSource{} // Compile-time check

// Name mocks the Name method.
func (m *MockIssueSource) Name() string {
	args := m.Called()
	return args.String(0)
}

// Issues mocks the Issues method.
func (m *MockIssueSource) Issues(ctx context.Context, files []schema.FileRecord) ([]schema.Issue, error) {
	args := m.Called(ctx, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.Issue), args.Error(1)
}
