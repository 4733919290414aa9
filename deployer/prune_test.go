package deployer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseNames(t *testing.T, h *testHarness) []string {
	t.Helper()
	entries, err := os.ReadDir(h.cfg.ReleasesDir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestPrune(t *testing.T) {
	h := newHarness(t)
	deployVersions(t, h, "1.0.0", "1.1.0", "1.2.0", "1.3.0", "1.4.0")

	removed, err := h.deployer.Prune(2)
	require.NoError(t, err)

	// Only the two newest remain, the rest are gone
	assert.ElementsMatch(t, []string{
		"scrappystats_v1.0.0",
		"scrappystats_v1.1.0",
		"scrappystats_v1.2.0",
	}, removed)
	assert.ElementsMatch(t, []string{
		"scrappystats_v1.3.0",
		"scrappystats_v1.4.0",
	}, releaseNames(t, h))
}

func TestPruneProtectsCurrentAndPrevious(t *testing.T) {
	h := newHarness(t)
	deployVersions(t, h, "1.0.0", "1.1.0", "1.2.0")

	// Make the oldest release current again; the retention window alone
	// would now remove it
	_, err := h.deployer.Rollback("scrappystats_v1.0.0")
	require.NoError(t, err)

	removed, err := h.deployer.Prune(1)
	require.NoError(t, err)

	remaining := releaseNames(t, h)
	assert.Contains(t, remaining, "scrappystats_v1.0.0", "current release must survive pruning")
	assert.Contains(t, remaining, "scrappystats_v1.2.0", "previous release must survive pruning")
	assert.NotContains(t, remaining, "scrappystats_v1.1.0")
	assert.Equal(t, []string{"scrappystats_v1.1.0"}, removed)
}

func TestPruneDefaultsToRetainCount(t *testing.T) {
	h := newHarness(t)
	h.cfg.RetainCount = 2
	deployVersions(t, h, "1.0.0", "1.1.0", "1.2.0", "1.3.0")

	removed, err := h.deployer.Prune(0)
	require.NoError(t, err)
	assert.Len(t, removed, 2)
	assert.Len(t, releaseNames(t, h), 2)
}

func TestPruneNothingToRemove(t *testing.T) {
	h := newHarness(t)
	deployVersions(t, h, "1.0.0")

	removed, err := h.deployer.Prune(5)
	require.NoError(t, err)
	assert.Empty(t, removed)

	_, err = os.Stat(filepath.Join(h.cfg.ReleasesDir, "scrappystats_v1.0.0"))
	assert.NoError(t, err)
}
