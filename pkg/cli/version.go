package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the wingbox release version.
const Version = "0.1.0"

// versionInfo is the JSON payload for the version command.
type versionInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the wingbox version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &Formatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			if formatter.Format == "json" {
				return formatter.Success(versionInfo{Name: "wingbox", Version: Version})
			}
			fmt.Fprintf(formatter.Writer, "wingbox v%s\n", Version)
			return nil
		},
	}
}
