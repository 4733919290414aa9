// Package version provides the version command for shipper.
package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build-time variables (set via -ldflags)
var (
	Version = "dev" // Version of the shipper binary
)

// NewCmdVersion creates the version command
func NewCmdVersion() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version information for shipper.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion()
		},
	}
}

func runVersion() error {
	fmt.Println(Version)
	return nil
}
