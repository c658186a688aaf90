//go:build basic

package integration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestTriageBasicCommands exercises the CLI end to end with the default
// SQLite backend against the project's own repository.
func TestTriageBasicCommands(t *testing.T) {
	// Run triage version
	err := runTriageCommand(t, "version")
	require.NoError(t, err)

	// Run triage metrics
	err = runTriageCommand(t, "metrics")
	require.NoError(t, err)

	// Run triage hotspots (on current dir)
	err = runTriageCommand(t, "hotspots", "--limit", "5", "--detail")
	require.NoError(t, err)

	// Run triage query against the warmed cache
	err = runTriageCommand(t, "query", "cache store", "--limit", "5")
	require.NoError(t, err)

	// Run triage issues without a report; succeeds with an empty result
	err = runTriageCommand(t, "issues", "--limit", "5")
	require.NoError(t, err)

	// Run triage cache status
	err = runTriageCommand(t, "cache", "status")
	require.NoError(t, err)

	// Run triage cache clear
	err = runTriageCommand(t, "cache", "clear")
	require.NoError(t, err)
}
