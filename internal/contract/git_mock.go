package contract

import (
	"context"
	"iter"

	"github.com/stretchr/testify/mock"
)

// MockGitClient is a testify mock for the GitClient type.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	mockArgs := []any{ctx, repoPath}
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// AuthorDates implements the GitClient interface.
// The programmed return values are a []string of records and an optional trailing error.
func (m *MockGitClient) AuthorDates(ctx context.Context, repoPath string, author string) iter.Seq2[string, error] {
	ret := m.Called(ctx, repoPath, author)
	records, _ := ret.Get(0).([]string)
	err := ret.Error(1)
	return func(yield func(string, error) bool) {
		for _, r := range records {
			if !yield(r, nil) {
				return
			}
		}
		if err != nil {
			yield("", err)
		}
	}
}

// GetRefsDigest implements the GitClient interface.
func (m *MockGitClient) GetRefsDigest(ctx context.Context, repoPath string) (string, error) {
	ret := m.Called(ctx, repoPath)
	return ret.String(0), ret.Error(1)
}
