// Package rollback provides the rollback command restoring a previous release.
package rollback

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/scrappystats/shipper/app"
	"github.com/scrappystats/shipper/cmd/output"
	"github.com/scrappystats/shipper/cmd/utils"
)

func NewCmdRollback() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback [release-name]",
		Short: "Repoint the current symlink at a previous release",
		Long: `Switch the current symlink back to a previously expanded release and
restart the service from it.

With no argument, the most recent successfully deployed release other than
the current one is chosen from the deployment history.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			releaseName := ""
			if len(args) > 0 {
				releaseName = args[0]
			}

			deployment, err := app.GetDeployService().Rollback(releaseName)
			if err != nil {
				utils.HandleCommandError("rolling back", err)
				os.Exit(1)
			}

			if err := output.FprintSuccess(cmd, "Rolled back to release '%s'", deployment.ReleaseName); err != nil {
				utils.HandleCommandError("printing rollback result", err)
			}
			if err := output.FprintPlain(cmd, "Version: %s", deployment.Version); err != nil {
				utils.HandleCommandError("printing rollback result", err)
			}
		},
	}
}
