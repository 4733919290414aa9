// Package history provides the history command listing recorded deployments.
package history

import (
	"github.com/spf13/cobra"

	"github.com/scrappystats/shipper/app"
	"github.com/scrappystats/shipper/cmd/output"
	"github.com/scrappystats/shipper/cmd/utils"
)

func NewCmdHistory() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded deployments",
		Long: `Display the deployment history recorded on this host, newest first,
including failed and rolled-back deployments.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			limit, _ := cmd.Flags().GetInt("limit")

			deployments, err := app.GetHistoryRepository().List(limit)
			if err != nil {
				utils.HandleCommandError("listing deployments", err)
				return
			}

			out, err := output.PrintDeploymentList(deployments)
			if err != nil {
				utils.HandleCommandError("printing deployment list table", err)
				return
			}

			if err := output.FprintPlain(cmd, "%s", out); err != nil {
				utils.HandleCommandError("printing deployment list output", err)
			}
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum number of deployments to show (0 for all)")
	return cmd
}
