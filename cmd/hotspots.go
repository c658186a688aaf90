package cmd

import (
	"github.com/huangsam/triage/core"
	"github.com/huangsam/triage/internal/contract"
	"github.com/spf13/cobra"
)

// hotspotsCmd performs file-level hotspot analysis.
var hotspotsCmd = &cobra.Command{
	Use:   "hotspots [repo-path]",
	Short: "Show the top files ranked by hotspot score.",
	Long: `Analyze a repository and rank individual files by composite hotspot score.

The score blends three normalized signals, weighted by your configuration:
- Complexity: how hard each file is to read and change
- Centrality: how many other files depend on it (PageRank over imports)
- Churn: how often it changed recently, weighted toward the present

Use this to:
- Decide where refactoring effort pays off most
- Spot load-bearing files that are also volatile
- Feed review and testing priorities with data instead of guesses

Examples:
  # Rank the top 20 files in the current repository
  triage hotspots --limit 20

  # Show the per-file component breakdown
  triage hotspots --explain

  # Export findings to CSV for tracking
  triage hotspots --output csv --output-file hotspots.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteHotspots(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run hotspot analysis", err)
		}
	},
}
