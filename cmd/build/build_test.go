package build

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scrappystats/shipper/app"
	"github.com/scrappystats/shipper/builder"
	"github.com/scrappystats/shipper/config"
	"github.com/scrappystats/shipper/testing/mocks"
)

func TestNewCmdBuild(t *testing.T) {
	tests := []struct {
		name           string
		flags          map[string]string
		uploadEnabled  bool
		expectedUpload bool
		expectedText   string
	}{
		{
			name:         "build without upload",
			expectedText: "Built release",
		},
		{
			name:           "upload flag",
			flags:          map[string]string{"upload": "true"},
			expectedUpload: true,
			expectedText:   "Archive uploaded",
		},
		{
			name:           "upload from configuration",
			uploadEnabled:  true,
			expectedUpload: true,
			expectedText:   "Archive uploaded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var uploadRequested bool

			mockService := &mocks.MockBuildService{
				BuildFunc: func(workingDir string, upload bool) (*builder.Result, error) {
					uploadRequested = upload
					return &builder.Result{
						Tag:         "v1.0.0",
						Version:     "1.0.0",
						ArchivePath: "/tmp/dist/scrappystats_v1.0.0.zip",
						Uploaded:    upload,
					}, nil
				},
			}
			app.SetBuildServiceForTesting(mockService)
			app.SetConfigForTesting(&config.Config{UploadEnabled: tt.uploadEnabled})

			cmd := NewCmdBuild()
			var stdout, stderr bytes.Buffer
			cmd.SetOut(&stdout)
			cmd.SetErr(&stderr)
			cmd.SetArgs(nil)

			for flag, value := range tt.flags {
				_ = cmd.Flags().Set(flag, value)
			}

			assert.NoError(t, cmd.Execute())
			assert.Equal(t, tt.expectedUpload, uploadRequested)
			assert.Contains(t, stdout.String(), tt.expectedText)
		})
	}
}

func TestNewCmdBuildConfiguration(t *testing.T) {
	cmd := NewCmdBuild()

	assert.Equal(t, "build", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("upload"))
}
