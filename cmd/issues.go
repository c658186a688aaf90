package cmd

import (
	"github.com/huangsam/triage/core"
	"github.com/huangsam/triage/internal/contract"
	"github.com/spf13/cobra"
)

// issuesCmd prioritizes analyzer findings by severity and hotspot score.
var issuesCmd = &cobra.Command{
	Use:   "issues [repo-path]",
	Short: "Prioritize analyzer findings using hotspot scores.",
	Long: `Rank analyzer findings so the riskiest problems surface first.

Findings are ordered by severity first, then by the hotspot score of the
file each finding lives in. A medium-severity warning in a load-bearing,
high-churn file often matters more than a high-severity one in dead code;
the priority column makes that trade-off visible.

Findings come from a JSON report produced by an external analyzer
(--report). Without a report the command still runs the full pass but
prints an empty list.

Examples:
  # Prioritize findings from a static analyzer report
  triage issues --report findings.json

  # Keep only the top 10 by priority
  triage issues --report findings.json --limit 10

  # Export for CI annotation tooling
  triage issues --report findings.json --output json --output-file issues.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteIssues(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run issue prioritization", err)
		}
	},
}
