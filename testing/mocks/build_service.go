package mocks

import (
	"github.com/scrappystats/shipper/builder"
)

// MockBuildService implements the builder.Service interface for testing
type MockBuildService struct {
	BuildFunc func(workingDir string, upload bool) (*builder.Result, error)
}

func (m *MockBuildService) Build(workingDir string, upload bool) (*builder.Result, error) {
	if m.BuildFunc != nil {
		return m.BuildFunc(workingDir, upload)
	}
	return &builder.Result{}, nil
}
