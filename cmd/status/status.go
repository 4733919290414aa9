// Package status provides the status command for the deployed service.
package status

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scrappystats/shipper/app"
	"github.com/scrappystats/shipper/cmd/output"
	"github.com/scrappystats/shipper/cmd/utils"
	"github.com/scrappystats/shipper/release"
)

// NewCmdStatus creates the status command
func NewCmdStatus() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the status of the deployed service",
		Long: `Show the current release, its version and the state of the service's
containers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd)
		},
	}
}

func runStatus(cmd *cobra.Command) error {
	cfg := app.GetConfig()

	currentTarget, err := release.CurrentTarget(cfg.CurrentLink)
	if err != nil {
		return err
	}
	if currentTarget == "" {
		return output.FprintPlain(cmd, "No release deployed.")
	}

	if err := output.FprintPlain(cmd, "Current release: %s", currentTarget); err != nil {
		return err
	}
	if err := output.FprintPlain(cmd, "Version: %s", release.ResolveVersion(currentTarget)); err != nil {
		return err
	}

	composeProject, err := utils.CreateCurrentComposeProject(cfg)
	if err != nil {
		return err
	}

	projectStatus, err := composeProject.Status()
	if err != nil {
		return fmt.Errorf("failed to get service status: %w", err)
	}

	if err := output.FprintPlain(cmd, "Status: %s", projectStatus.Status); err != nil {
		return err
	}

	if projectStatus.Status == "running" && projectStatus.Uptime != "" {
		if err := output.FprintPlain(cmd, "Uptime: %s", projectStatus.Uptime); err != nil {
			return err
		}
	}

	if len(projectStatus.Containers) > 0 {
		if err := output.FprintPlain(cmd, "\nContainers:"); err != nil {
			return err
		}
		for _, container := range projectStatus.Containers {
			prefix := "[OK]"
			if container.State != "running" {
				prefix = "[ERROR]"
			}
			if err := output.FprintPlain(cmd, "  %s %s: %s", prefix, container.Service, container.Status); err != nil {
				return err
			}
		}
	}

	return nil
}
