package release

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentTargetMissingLink(t *testing.T) {
	target, err := CurrentTarget(filepath.Join(t.TempDir(), "current"))
	require.NoError(t, err)
	assert.Empty(t, target)
}

func TestSwitchCurrent(t *testing.T) {
	base := t.TempDir()
	link := filepath.Join(base, "current")

	first := filepath.Join(base, "releases", "scrappystats_v1.0.0")
	second := filepath.Join(base, "releases", "scrappystats_v1.1.0")
	require.NoError(t, os.MkdirAll(first, 0o755))
	require.NoError(t, os.MkdirAll(second, 0o755))

	// Fresh link
	require.NoError(t, SwitchCurrent(link, first))
	target, err := CurrentTarget(link)
	require.NoError(t, err)
	assert.Equal(t, first, target)

	// Replacing an existing link must not require removing it first
	require.NoError(t, SwitchCurrent(link, second))
	target, err = CurrentTarget(link)
	require.NoError(t, err)
	assert.Equal(t, second, target)

	// No temp link may linger after a successful switch
	_, err = os.Lstat(link + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSwitchCurrentStaleTempLink(t *testing.T) {
	base := t.TempDir()
	link := filepath.Join(base, "current")

	target := filepath.Join(base, "releases", "scrappystats_v1.0.0")
	require.NoError(t, os.MkdirAll(target, 0o755))

	// Simulate an interrupted earlier switch
	require.NoError(t, os.Symlink("/nonexistent", link+".tmp"))

	require.NoError(t, SwitchCurrent(link, target))
	resolved, err := CurrentTarget(link)
	require.NoError(t, err)
	assert.Equal(t, target, resolved)
}
