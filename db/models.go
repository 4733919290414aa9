// Package db provides database models for shipper's deployment history.
package db

import (
	"time"

	"github.com/google/uuid"
)

type BaseModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type DeploymentModel struct {
	BaseModel
	ReleaseName string `gorm:"not null;index;check:release_name <> ''"`
	Version     string `gorm:"not null"` // resolved version, may be "unknown"
	ArchivePath string `gorm:"not null"`
	Status      string `gorm:"not null;check:status <> ''"` // started, completed, failed
	RolledBack  bool   `gorm:"not null"`
	Output      string `gorm:"type:text"` // combined activation output
}

func (DeploymentModel) TableName() string {
	return "deployments"
}

// AllModels returns all the models that need to be migrated
func AllModels() []any {
	return []any{
		&DeploymentModel{},
	}
}
