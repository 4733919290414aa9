package repository

import (
	"github.com/scrappystats/shipper/db"
	"github.com/scrappystats/shipper/domain"
)

type DeploymentMapper struct{}

func (m *DeploymentMapper) ToDomain(d *db.DeploymentModel) *domain.Deployment {
	status, err := domain.ParseDeploymentStatus(d.Status)
	if err != nil {
		status = domain.DeploymentStatusUnknown
	}

	return &domain.Deployment{
		ID:          d.ID,
		ReleaseName: d.ReleaseName,
		Version:     d.Version,
		ArchivePath: d.ArchivePath,
		Status:      status,
		RolledBack:  d.RolledBack,
		Output:      d.Output,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (m *DeploymentMapper) ToModel(d *domain.Deployment) *db.DeploymentModel {
	return &db.DeploymentModel{
		BaseModel: db.BaseModel{
			ID:        d.ID,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
		ReleaseName: d.ReleaseName,
		Version:     d.Version,
		ArchivePath: d.ArchivePath,
		Status:      d.Status.String(),
		RolledBack:  d.RolledBack,
		Output:      d.Output,
	}
}
