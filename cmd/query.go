package cmd

import (
	"github.com/huangsam/triage/core"
	"github.com/huangsam/triage/internal/contract"
	"github.com/spf13/cobra"
)

// queryCmd searches the lexical index for code chunks matching a query.
var queryCmd = &cobra.Command{
	Use:   "query <terms> [repo-path]",
	Short: "Search the codebase with ranked lexical retrieval.",
	Long: `Search indexed code chunks and return ranked hits with line citations.

The index lower-cases and tokenizes code on word boundaries, weights terms
with TF-IDF, and boosts filename and identifier matches. Each hit cites the
file and line range it came from.

The index is cached per file fingerprint, so repeated queries against an
unchanged repository skip re-indexing entirely.

Examples:
  # Find where JSON parsing lives
  triage query "parse json file"

  # Search a different repository
  triage query "retry backoff" ../other-repo

  # Machine-readable hits for tooling
  triage query "auth token" --output json`,
	Args: cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The first positional is the query; an optional second is the repo.
		return sharedSetup(rootCtx, cmd, args[1:])
	},
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteQuery(rootCtx, cfg, args[0]); err != nil {
			contract.LogFatal("Cannot run query", err)
		}
	},
}
