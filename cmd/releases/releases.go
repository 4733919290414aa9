// Package releases provides the releases command listing expanded releases.
package releases

import (
	"github.com/spf13/cobra"

	"github.com/scrappystats/shipper/app"
	"github.com/scrappystats/shipper/cmd/output"
	"github.com/scrappystats/shipper/cmd/utils"
)

func NewCmdReleases() *cobra.Command {
	return &cobra.Command{
		Use:   "releases",
		Short: "List expanded release directories",
		Long: `Display all release directories under the releases root, newest first.
The current symlink target is marked. Any listed release is a valid rollback
target as long as it still passes validation.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			releaseList, err := app.GetDeployService().Releases()
			if err != nil {
				utils.HandleCommandError("listing releases", err)
				return
			}

			out, err := output.PrintReleaseList(releaseList)
			if err != nil {
				utils.HandleCommandError("printing release list table", err)
				return
			}

			if err := output.FprintPlain(cmd, "%s", out); err != nil {
				utils.HandleCommandError("printing release list output", err)
			}
		},
	}
}
