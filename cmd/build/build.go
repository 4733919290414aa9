// Package build provides the build command producing release archives.
package build

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/scrappystats/shipper/app"
	"github.com/scrappystats/shipper/cmd/output"
	"github.com/scrappystats/shipper/cmd/utils"
)

func NewCmdBuild() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a release archive from the current tagged commit",
		Long: `Package the committed tree of HEAD into a versioned release archive.

HEAD must carry exactly one tag; the version is derived from the tag by
stripping its leading "v". The archive always contains a VERSION file with
the derived version and is written to the build output directory, replacing
any archives from previous builds.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := runBuild(cmd); err != nil {
				utils.HandleCommandError("building release", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().Bool("upload", false, "Upload the archive to the deploy host after building")
	return cmd
}

func runBuild(cmd *cobra.Command) error {
	upload, _ := cmd.Flags().GetBool("upload")
	if !upload {
		upload = app.GetConfig().UploadEnabled
	}

	workingDir, err := os.Getwd()
	if err != nil {
		return err
	}

	result, err := app.GetBuildService().Build(workingDir, upload)
	if err != nil {
		return err
	}

	if err := output.FprintSuccess(cmd, "Built release %s from tag %s", result.ArchivePath, result.Tag); err != nil {
		return err
	}
	if result.Uploaded {
		if err := output.FprintPlain(cmd, "Archive uploaded to deploy host"); err != nil {
			return err
		}
	}
	return nil
}
