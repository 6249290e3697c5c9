package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// injected by '-X' flag:
// go build -ldflags "-X github.com/telefwd/telefwd/cmd.Version=..."
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Print the version number of telefwd",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("telefwd version: %s %s/%s\nBuildTime: %s, Commit: %s\n",
			Version, runtime.GOOS, runtime.GOARCH, BuildTime, GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
