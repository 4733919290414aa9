// Package domain holds the deployment record types shared by the deployer,
// repository and CLI layers.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Deployment records one attempt to activate a release on this host
type Deployment struct {
	ID          uuid.UUID
	ReleaseName string
	Version     string
	ArchivePath string
	Status      DeploymentStatus
	// RolledBack marks deployments whose activation failed and whose
	// symlink was restored to the previous release
	RolledBack bool
	Output     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewDeployment(releaseName, version, archivePath string) Deployment {
	return Deployment{
		ID:          uuid.New(),
		ReleaseName: releaseName,
		Version:     version,
		ArchivePath: archivePath,
		Status:      DeploymentStatusStarted,
	}
}
