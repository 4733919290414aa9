// Package prune provides the prune command bounding release retention.
package prune

import (
	"github.com/spf13/cobra"

	"github.com/scrappystats/shipper/app"
	"github.com/scrappystats/shipper/cmd/output"
	"github.com/scrappystats/shipper/cmd/utils"
)

func NewCmdPrune() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove old release directories",
		Long: `Delete the oldest release directories beyond the retention count.
The current release and the most recent previous release are never removed,
so rollback capability is retained.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			keep, _ := cmd.Flags().GetInt("keep")

			removed, err := app.GetDeployService().Prune(keep)
			if err != nil {
				utils.HandleCommandError("pruning releases", err)
				return
			}

			if len(removed) == 0 {
				if err := output.FprintPlain(cmd, "Nothing to prune."); err != nil {
					utils.HandleCommandError("printing prune result", err)
				}
				return
			}

			for _, name := range removed {
				if err := output.FprintPlain(cmd, "Removed release %s", name); err != nil {
					utils.HandleCommandError("printing prune result", err)
				}
			}
		},
	}

	cmd.Flags().Int("keep", 0, "Number of releases to retain (0 uses the configured default)")
	return cmd
}
