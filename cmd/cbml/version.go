package main

import (
	"fmt"
	"runtime"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"cbml-lang/cbml/pkg/telemetry/health"
)

// Set by -ldflags at build time.
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the cbml version, git commit, build date and Go toolchain.

With --json the same fields are printed as the JSON object served on
/version by "cbml watch --metrics-addr".`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "print version information as JSON")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	info := health.NewVersionInfo(Version, GitCommit, BuildDate)
	out := cmd.OutOrStdout()

	if versionJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Fprintf(out, "cbml %s\n", info.Version)
	fmt.Fprintf(out, "  commit:  %s\n", info.Commit)
	fmt.Fprintf(out, "  built:   %s\n", info.BuildTime)
	fmt.Fprintf(out, "  go:      %s %s/%s\n", info.GoVersion, runtime.GOOS, runtime.GOARCH)
	return nil
}
