// Package logs provides the logs command for viewing deployed service logs.
package logs

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scrappystats/shipper/app"
	"github.com/scrappystats/shipper/cmd/output"
	"github.com/scrappystats/shipper/cmd/utils"
)

// NewCmdLogs creates the logs command
func NewCmdLogs() *cobra.Command {
	return &cobra.Command{
		Use:   "logs",
		Short: "View logs from the deployed service",
		Long: `Display logs from the running service containers.
This follows the logs in real-time (equivalent to docker compose logs --follow).
Press Ctrl+C to stop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogs(cmd)
		},
	}
}

func runLogs(cmd *cobra.Command) error {
	composeProject, err := utils.CreateCurrentComposeProject(app.GetConfig())
	if err != nil {
		return err
	}

	if err := output.FprintPlain(cmd, "Streaming logs from the deployed service..."); err != nil {
		return err
	}
	if err := output.FprintPlain(cmd, "Press Ctrl+C to stop\n"); err != nil {
		return err
	}

	if err := composeProject.LogsPiping(); err != nil {
		return fmt.Errorf("failed to get logs: %w", err)
	}

	return nil
}
