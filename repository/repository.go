// Package repository provides the data access layer for deployment history.
package repository

import (
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scrappystats/shipper/db"
	"github.com/scrappystats/shipper/domain"
)

type DeploymentRepository interface {
	FindByID(id uuid.UUID) (*domain.Deployment, error)
	Create(deployment *domain.Deployment) error
	Update(deployment *domain.Deployment) error
	List(limit int) ([]*domain.Deployment, error)
	// LatestCompleted returns the most recent successfully completed,
	// non-rolled-back deployments, newest first
	LatestCompleted(limit int) ([]*domain.Deployment, error)
}

type deploymentRepository struct {
	db     *gorm.DB
	mapper *DeploymentMapper
}

func NewDeploymentRepository(database *gorm.DB) DeploymentRepository {
	return &deploymentRepository{
		db:     database,
		mapper: &DeploymentMapper{},
	}
}

func (r *deploymentRepository) FindByID(id uuid.UUID) (*domain.Deployment, error) {
	var m db.DeploymentModel
	if err := r.db.First(&m, id).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToDomain(&m), nil
}

func (r *deploymentRepository) Create(deployment *domain.Deployment) error {
	m := r.mapper.ToModel(deployment)
	if err := r.db.Create(m).Error; err != nil {
		slog.Error("Database operation failed",
			"layer", "repository",
			"operation", "create_deployment",
			"release_name", deployment.ReleaseName,
			"error", err)
		return err
	}
	// Update the domain object with the timestamps that GORM populated
	*deployment = *r.mapper.ToDomain(m)
	return nil
}

func (r *deploymentRepository) Update(deployment *domain.Deployment) error {
	m := r.mapper.ToModel(deployment)
	if err := r.db.Save(m).Error; err != nil {
		slog.Error("Database operation failed",
			"layer", "repository",
			"operation", "update_deployment",
			"deployment_id", deployment.ID,
			"error", err)
		return err
	}
	*deployment = *r.mapper.ToDomain(m)
	return nil
}

func (r *deploymentRepository) List(limit int) ([]*domain.Deployment, error) {
	var models []db.DeploymentModel
	q := r.db.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	deployments := make([]*domain.Deployment, len(models))
	for i, m := range models {
		deployments[i] = r.mapper.ToDomain(&m)
	}
	return deployments, nil
}

func (r *deploymentRepository) LatestCompleted(limit int) ([]*domain.Deployment, error) {
	var models []db.DeploymentModel
	q := r.db.
		Where("status = ? AND rolled_back = ?", domain.DeploymentStatusCompleted.String(), false).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	deployments := make([]*domain.Deployment, len(models))
	for i, m := range models {
		deployments[i] = r.mapper.ToDomain(&m)
	}
	return deployments, nil
}
