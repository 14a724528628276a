package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/YuminosukeSato/carprice/cmd/carprice/cmd.GitVersion=..."
var (
	GitVersion = "v0.1.0"
	BuildDay   = "unknown"
)

var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "show version",
	Long:              `show the version details of carprice.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "GitVersion:%s\n", GitVersion)
		fmt.Fprintf(out, "Platform:%s/%s GoVersion:%s BuildDay:%s\n", runtime.GOOS, runtime.GOARCH, runtime.Version(), BuildDay)
	},
}
