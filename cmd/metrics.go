package cmd

import (
	"github.com/huangsam/triage/core"
	"github.com/huangsam/triage/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the formal definition of the hotspot score.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display the hotspot score formula and input definitions",
	Long: `Show the formal definition, formula, and blend weights for the hotspot score.

Provides complete transparency into how files are ranked, including:
- Each input signal and what it measures
- The contribution weight of each signal
- The mathematical formula for score calculation
- Custom weights if configured via .triage.yaml

No repository analysis is performed - this is purely informational.

Examples:
  # Show the scoring formula with default weights
  triage metrics

  # View with custom weights from config file
  triage metrics --config .triage.yaml`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(cfg); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
