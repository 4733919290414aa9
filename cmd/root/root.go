// Package root implements the command line interface for shipper.
package root

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/scrappystats/shipper/app"
	"github.com/scrappystats/shipper/cmd/build"
	"github.com/scrappystats/shipper/cmd/deploy"
	"github.com/scrappystats/shipper/cmd/history"
	"github.com/scrappystats/shipper/cmd/logs"
	"github.com/scrappystats/shipper/cmd/output"
	"github.com/scrappystats/shipper/cmd/prune"
	"github.com/scrappystats/shipper/cmd/releases"
	"github.com/scrappystats/shipper/cmd/rollback"
	"github.com/scrappystats/shipper/cmd/status"
	"github.com/scrappystats/shipper/cmd/version"
	"github.com/scrappystats/shipper/config"
	"github.com/scrappystats/shipper/logging"
)

func Execute() {
	if err := NewCmdRoot(config.GetDefaultBaseDir()).Execute(); err != nil {
		os.Exit(1)
	}
}

func NewCmdRoot(defaultBaseDir string) *cobra.Command {
	var baseDir string

	cmd := &cobra.Command{
		Use:   "shipper",
		Short: "Release packaging and atomic deployment for scrappystats",
		Long: `Shipper builds versioned release archives from tagged commits and installs
them on the deploy host with atomic symlink switching and rollback safety.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.NewConfigForCLI(baseDir)
			if err != nil {
				log.Fatalf("Failed to initialize configuration: %s", err)
			}

			// Initialize colors (CLI flag overrides config)
			colorDisabled := !cfg.ColorEnabled
			if output.NoColor.IsSet() {
				colorDisabled = true
			}
			output.InitColors(colorDisabled)

			// Initialize logging (CLI flag overrides config)
			logLevel := cfg.LogLevel
			if logging.LogLevel.IsSet() {
				logLevel = logging.LogLevel.String()
			}
			logging.InitLogging(logLevel)

			if err := app.InitializeWithConfig(cfg); err != nil {
				log.Fatalf("Failed to initialize application: %s", err)
			}
		},
	}

	cmd.PersistentFlags().
		StringVarP(&baseDir, "base-dir", "b", defaultBaseDir, "Deployment base directory (releases root and current symlink)")
	cmd.PersistentFlags().VarP(logging.LogLevel, "log-level", "l", "Set log verbosity level")
	cmd.PersistentFlags().VarP(output.NoColor, "no-color", "c", "Disable colored terminal output")

	cmd.AddCommand(build.NewCmdBuild())
	cmd.AddCommand(deploy.NewCmdDeploy())
	cmd.AddCommand(rollback.NewCmdRollback())
	cmd.AddCommand(releases.NewCmdReleases())
	cmd.AddCommand(history.NewCmdHistory())
	cmd.AddCommand(prune.NewCmdPrune())
	cmd.AddCommand(status.NewCmdStatus())
	cmd.AddCommand(logs.NewCmdLogs())
	cmd.AddCommand(version.NewCmdVersion())
	return cmd
}
