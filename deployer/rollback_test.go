package deployer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrappystats/shipper/domain"
)

func deployVersions(t *testing.T, h *testHarness, versions ...string) {
	t.Helper()
	for _, version := range versions {
		archivePath := makeArchive(t, t.TempDir(), version)
		_, err := h.deployer.Deploy(archivePath)
		require.NoError(t, err)
	}
}

func TestRollbackExplicitRelease(t *testing.T) {
	h := newHarness(t)
	deployVersions(t, h, "1.0.0", "1.1.0")

	deployment, err := h.deployer.Rollback("scrappystats_v1.0.0")
	require.NoError(t, err)

	assert.Equal(t, "scrappystats_v1.0.0", deployment.ReleaseName)
	assert.Equal(t, "1.0.0", deployment.Version)
	assert.Equal(t, domain.DeploymentStatusCompleted, deployment.Status)
	assert.True(t, deployment.RolledBack)

	assert.Equal(t, filepath.Join(h.cfg.ReleasesDir, "scrappystats_v1.0.0"), currentTarget(t, h))

	// The restored release was rebuilt and restarted
	last := h.controller.upDirs[len(h.controller.upDirs)-1]
	assert.Equal(t, filepath.Join(h.cfg.ReleasesDir, "scrappystats_v1.0.0"), last)
}

func TestRollbackToPreviousFromHistory(t *testing.T) {
	h := newHarness(t)
	deployVersions(t, h, "1.0.0", "1.1.0")

	deployment, err := h.deployer.Rollback("")
	require.NoError(t, err)
	assert.Equal(t, "scrappystats_v1.0.0", deployment.ReleaseName)
	assert.Equal(t, filepath.Join(h.cfg.ReleasesDir, "scrappystats_v1.0.0"), currentTarget(t, h))
}

func TestRollbackNoHistory(t *testing.T) {
	h := newHarness(t)
	deployVersions(t, h, "1.0.0")

	// Only one release was ever deployed, there is nothing to go back to
	_, err := h.deployer.Rollback("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no previous release")
}

func TestRollbackUnknownRelease(t *testing.T) {
	h := newHarness(t)
	deployVersions(t, h, "1.0.0")
	before := currentTarget(t, h)

	_, err := h.deployer.Rollback("scrappystats_v9.9.9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Equal(t, before, currentTarget(t, h))
}

func TestRollbackRecordsDoNotBecomeRollbackTargets(t *testing.T) {
	h := newHarness(t)
	deployVersions(t, h, "1.0.0", "1.1.0", "1.2.0")

	// First rollback lands on the previous deploy
	_, err := h.deployer.Rollback("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(h.cfg.ReleasesDir, "scrappystats_v1.1.0"), currentTarget(t, h))

	// A second rollback consults deploy history, not the rollback record
	// that was just written, so it moves forward to 1.2.0
	_, err = h.deployer.Rollback("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(h.cfg.ReleasesDir, "scrappystats_v1.2.0"), currentTarget(t, h))
}
