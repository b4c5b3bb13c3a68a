package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/getmockd/restapi/pkg/cli/internal/output"
)

// buildInfo describes the running binary.
type buildInfo struct {
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Date     string `json:"date"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
}

// currentBuild reports the ldflags values, falling back to the module
// version for binaries built with go install.
func currentBuild() buildInfo {
	b := buildInfo{
		Version:  Version,
		Commit:   Commit,
		Date:     BuildDate,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
	if b.Version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			b.Version = info.Main.Version
		}
	}
	return b
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show restapi version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		b := currentBuild()
		if jsonOutput {
			return output.JSON(cmd.OutOrStdout(), b)
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "restapi %s (commit %s, built %s, %s %s)\n",
			b.Version, b.Commit, b.Date, b.Go, b.Platform)
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
