package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrappystats/shipper/db"
	"github.com/scrappystats/shipper/domain"
)

func newTestRepository(t *testing.T) DeploymentRepository {
	t.Helper()

	database, err := db.InitDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrateAll(database))

	return NewDeploymentRepository(database)
}

func TestCreateAndFindByID(t *testing.T) {
	repo := newTestRepository(t)

	deployment := domain.NewDeployment("scrappystats_v1.0.0", "1.0.0", "/tmp/scrappystats_v1.0.0.zip")
	require.NoError(t, repo.Create(&deployment))

	// Create fills in the persistence timestamps
	assert.False(t, deployment.CreatedAt.IsZero())

	found, err := repo.FindByID(deployment.ID)
	require.NoError(t, err)
	assert.Equal(t, "scrappystats_v1.0.0", found.ReleaseName)
	assert.Equal(t, "1.0.0", found.Version)
	assert.Equal(t, "/tmp/scrappystats_v1.0.0.zip", found.ArchivePath)
	assert.Equal(t, domain.DeploymentStatusStarted, found.Status)
	assert.False(t, found.RolledBack)
}

func TestFindByIDNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.FindByID(uuid.New())
	require.Error(t, err)
}

func TestUpdate(t *testing.T) {
	repo := newTestRepository(t)

	deployment := domain.NewDeployment("scrappystats_v1.0.0", "1.0.0", "")
	require.NoError(t, repo.Create(&deployment))

	deployment.Status = domain.DeploymentStatusFailed
	deployment.RolledBack = true
	deployment.Output = "build output"
	require.NoError(t, repo.Update(&deployment))

	found, err := repo.FindByID(deployment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DeploymentStatusFailed, found.Status)
	assert.True(t, found.RolledBack)
	assert.Equal(t, "build output", found.Output)
}

func TestList(t *testing.T) {
	repo := newTestRepository(t)

	for i, name := range []string{"scrappystats_v1.0.0", "scrappystats_v1.1.0", "scrappystats_v1.2.0"} {
		deployment := domain.NewDeployment(name, "x", "")
		deployment.CreatedAt = time.Now().Add(time.Duration(i) * time.Minute)
		deployment.UpdatedAt = deployment.CreatedAt
		require.NoError(t, repo.Create(&deployment))
	}

	all, err := repo.List(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest first
	assert.Equal(t, "scrappystats_v1.2.0", all[0].ReleaseName)
	assert.Equal(t, "scrappystats_v1.0.0", all[2].ReleaseName)

	limited, err := repo.List(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestLatestCompleted(t *testing.T) {
	repo := newTestRepository(t)

	record := func(name string, status domain.DeploymentStatus, rolledBack bool, age time.Duration) {
		deployment := domain.NewDeployment(name, "x", "")
		deployment.Status = status
		deployment.RolledBack = rolledBack
		deployment.CreatedAt = time.Now().Add(-age)
		deployment.UpdatedAt = deployment.CreatedAt
		require.NoError(t, repo.Create(&deployment))
	}

	record("scrappystats_v1.0.0", domain.DeploymentStatusCompleted, false, 3*time.Hour)
	record("scrappystats_v1.1.0", domain.DeploymentStatusFailed, true, 2*time.Hour)
	record("scrappystats_v1.2.0", domain.DeploymentStatusCompleted, false, time.Hour)
	// Rollback records never count as deploy history
	record("scrappystats_v1.0.0", domain.DeploymentStatusCompleted, true, 30*time.Minute)

	completed, err := repo.LatestCompleted(0)
	require.NoError(t, err)
	require.Len(t, completed, 2)
	assert.Equal(t, "scrappystats_v1.2.0", completed[0].ReleaseName)
	assert.Equal(t, "scrappystats_v1.0.0", completed[1].ReleaseName)
}
