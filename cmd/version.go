package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd shows build details for bug reports and install checks.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of triage.",
	Long: `Display the release version, git commit, build timestamp, and Go
runtime the binary was compiled with. Include this output when reporting
bugs or verifying an installation.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("triage %s\n", version)
		cmd.Printf("  commit:  %s\n", commit)
		cmd.Printf("  built:   %s\n", date)
		cmd.Printf("  runtime: %s\n", runtime.Version())
	},
}
