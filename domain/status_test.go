package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeploymentStatusRoundTrip(t *testing.T) {
	for _, status := range []DeploymentStatus{
		DeploymentStatusStarted,
		DeploymentStatusCompleted,
		DeploymentStatusFailed,
		DeploymentStatusUnknown,
	} {
		parsed, err := ParseDeploymentStatus(status.String())
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}
}

func TestParseDeploymentStatusInvalid(t *testing.T) {
	status, err := ParseDeploymentStatus("exploded")
	require.Error(t, err)
	assert.Equal(t, DeploymentStatusUnknown, status)
}

func TestNewDeployment(t *testing.T) {
	deployment := NewDeployment("scrappystats_v1.0.0", "1.0.0", "/tmp/a.zip")

	assert.NotEqual(t, deployment.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, DeploymentStatusStarted, deployment.Status)
	assert.False(t, deployment.RolledBack)
}
