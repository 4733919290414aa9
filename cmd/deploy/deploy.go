// Package deploy provides the deploy command installing a release archive.
package deploy

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/scrappystats/shipper/app"
	"github.com/scrappystats/shipper/cmd/output"
	"github.com/scrappystats/shipper/cmd/utils"
)

func NewCmdDeploy() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy [archive-path]",
		Short: "Deploy a release archive",
		Long: `Expand a release archive into the releases root, validate it, atomically
switch the current symlink and rebuild/restart the service.

With no argument, the most recently modified matching archive in the current
directory is deployed. A release missing any mandatory artifact is rejected
before the symlink is touched.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := runDeploy(cmd, args); err != nil {
				utils.HandleCommandError("deploying release", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().Bool("no-logs", false, "Do not follow service logs after deployment")
	return cmd
}

func runDeploy(cmd *cobra.Command, args []string) error {
	archivePath := ""
	if len(args) > 0 {
		archivePath = args[0]
	}

	noLogs, _ := cmd.Flags().GetBool("no-logs")
	followLogs := app.GetConfig().FollowLogs && !noLogs

	deployService := app.GetDeployService()

	deployment, err := deployService.Deploy(archivePath)
	if err != nil {
		return err
	}

	if err := output.FprintSuccess(cmd, "Release '%s' deployed successfully", deployment.ReleaseName); err != nil {
		return err
	}
	if err := output.FprintPlain(cmd, "Version: %s", deployment.Version); err != nil {
		return err
	}

	if followLogs {
		if err := output.FprintPlain(cmd, "\nStreaming service logs, press Ctrl+C to stop\n"); err != nil {
			return err
		}
		if err := deployService.FollowLogs(); err != nil {
			// Log streaming is observation only, the deploy is committed
			return output.FprintWarning(cmd, "Log streaming ended: %v", err)
		}
	}
	return nil
}
