// Package mocks provides mock service implementations for testing shipper CLI commands
package mocks

import (
	"github.com/scrappystats/shipper/domain"
	"github.com/scrappystats/shipper/release"
)

// MockDeployService implements the deployer.Service interface for testing
type MockDeployService struct {
	DeployFunc     func(archivePath string) (*domain.Deployment, error)
	RollbackFunc   func(releaseName string) (*domain.Deployment, error)
	PruneFunc      func(keep int) ([]string, error)
	ReleasesFunc   func() ([]release.Release, error)
	FollowLogsFunc func() error
}

func (m *MockDeployService) Deploy(archivePath string) (*domain.Deployment, error) {
	if m.DeployFunc != nil {
		return m.DeployFunc(archivePath)
	}
	return &domain.Deployment{}, nil
}

func (m *MockDeployService) Rollback(releaseName string) (*domain.Deployment, error) {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(releaseName)
	}
	return &domain.Deployment{}, nil
}

func (m *MockDeployService) Prune(keep int) ([]string, error) {
	if m.PruneFunc != nil {
		return m.PruneFunc(keep)
	}
	return nil, nil
}

func (m *MockDeployService) Releases() ([]release.Release, error) {
	if m.ReleasesFunc != nil {
		return m.ReleasesFunc()
	}
	return nil, nil
}

func (m *MockDeployService) FollowLogs() error {
	if m.FollowLogsFunc != nil {
		return m.FollowLogsFunc()
	}
	return nil
}
