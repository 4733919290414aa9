package output

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrappystats/shipper/domain"
	"github.com/scrappystats/shipper/internal/testutil"
	"github.com/scrappystats/shipper/release"
)

func TestPrintMessagePlain(t *testing.T) {
	InitColors(true)

	assert.Equal(t, "hello world\n", PrintMessage(Plain, "hello %s", "world"))
	assert.Equal(t, "done\n", PrintMessage(Success, "done"))
}

func TestPrintReleaseList(t *testing.T) {
	InitColors(true)

	t.Run("empty list", func(t *testing.T) {
		out, err := PrintReleaseList(nil)
		require.NoError(t, err)
		assert.Equal(t, "No releases found.\n", out)
	})

	t.Run("current release is marked", func(t *testing.T) {
		modified := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
		rendered, err := PrintReleaseList([]release.Release{
			{Name: "scrappystats_v1.1.0", Version: "1.1.0", Current: true, Modified: modified},
			{Name: "scrappystats_v1.0.0", Version: "1.0.0", Modified: modified},
		})
		require.NoError(t, err)

		out := testutil.Trim(rendered)
		assert.Contains(t, out, "scrappystats_v1.1.0")
		assert.Contains(t, out, "*")
		assert.Contains(t, out, "2026-08-30 12:00:00")
	})
}

func TestPrintDeploymentList(t *testing.T) {
	InitColors(true)

	t.Run("empty history", func(t *testing.T) {
		out, err := PrintDeploymentList(nil)
		require.NoError(t, err)
		assert.Equal(t, "No deployments recorded.\n", out)
	})

	t.Run("rolled back deployments are flagged", func(t *testing.T) {
		deployment := domain.NewDeployment("scrappystats_v1.0.0", "1.0.0", "")
		deployment.Status = domain.DeploymentStatusFailed
		deployment.RolledBack = true

		out, err := PrintDeploymentList([]*domain.Deployment{&deployment})
		require.NoError(t, err)

		assert.Contains(t, out, "scrappystats_v1.0.0")
		assert.Contains(t, out, "failed")
		assert.Contains(t, out, "yes")
	})
}

func TestNoColorFlag(t *testing.T) {
	flag := &noColorFlag{}

	assert.False(t, flag.IsSet())
	assert.Equal(t, "false", flag.String())

	require.NoError(t, flag.Set("true"))
	assert.True(t, flag.IsSet())
	assert.Equal(t, "true", flag.String())
}
