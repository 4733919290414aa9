package rollback

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scrappystats/shipper/app"
	"github.com/scrappystats/shipper/domain"
	"github.com/scrappystats/shipper/testing/mocks"
)

func TestNewCmdRollback(t *testing.T) {
	tests := []struct {
		name            string
		args            []string
		expectedRelease string
	}{
		{
			name:            "rollback to named release",
			args:            []string{"scrappystats_v1.0.0"},
			expectedRelease: "scrappystats_v1.0.0",
		},
		{
			name:            "rollback to previous release",
			args:            nil,
			expectedRelease: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requestedRelease string

			mockService := &mocks.MockDeployService{
				RollbackFunc: func(releaseName string) (*domain.Deployment, error) {
					requestedRelease = releaseName
					deployment := domain.NewDeployment("scrappystats_v1.0.0", "1.0.0", "")
					deployment.Status = domain.DeploymentStatusCompleted
					deployment.RolledBack = true
					return &deployment, nil
				},
			}
			app.SetDeployServiceForTesting(mockService)

			cmd := NewCmdRollback()
			var stdout, stderr bytes.Buffer
			cmd.SetOut(&stdout)
			cmd.SetErr(&stderr)
			cmd.SetArgs(tt.args)

			assert.NoError(t, cmd.Execute())
			assert.Equal(t, tt.expectedRelease, requestedRelease)
			assert.Contains(t, stdout.String(), "Rolled back to release 'scrappystats_v1.0.0'")
			assert.Contains(t, stdout.String(), "Version: 1.0.0")
		})
	}
}
