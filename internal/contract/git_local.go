package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/huangsam/triage/schema"
)

// LocalHistoryProvider implements the HistoryProvider interface by executing
// the local 'git' binary installed on the machine.
type LocalHistoryProvider struct{}

var _ HistoryProvider = &LocalHistoryProvider{} // Compile-time check

// NewLocalHistoryProvider creates a new instance of the local git history provider.
func NewLocalHistoryProvider() *LocalHistoryProvider {
	return &LocalHistoryProvider{}
}

// run executes a git command and returns its stdout output.
func (c *LocalHistoryProvider) run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// ChurnRecords implements the HistoryProvider interface. It aggregates
// 'git log --numstat' output into per-file commit counts and line totals.
// Repositories without history return an empty slice, not an error.
func (c *LocalHistoryProvider) ChurnRecords(ctx context.Context, repoPath string) ([]schema.ChurnRecord, error) {
	out, err := c.run(ctx, repoPath,
		"log",
		"--numstat",
		"--no-renames",
		"--pretty=format:--commit--",
	)
	if err != nil {
		return nil, err
	}
	return ParseNumstatLog(out), nil
}

// RepoFingerprint implements the HistoryProvider interface.
func (c *LocalHistoryProvider) RepoFingerprint(ctx context.Context, repoPath string) string {
	out, err := c.run(ctx, repoPath, "rev-parse", "HEAD")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// ParseNumstatLog parses raw 'git log --numstat' output into per-file churn
// aggregates. Each commit block starts with a "--commit--" marker followed by
// "added<TAB>removed<TAB>path" lines. Binary files report "-" counts and
// contribute a commit touch but no line churn. Records are returned sorted
// by path for deterministic downstream aggregation.
func ParseNumstatLog(raw []byte) []schema.ChurnRecord {
	byPath := make(map[string]*schema.ChurnRecord)

	for line := range strings.SplitSeq(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "--commit--" {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			continue
		}
		path := strings.TrimSpace(parts[2])
		if path == "" {
			continue
		}

		rec, ok := byPath[path]
		if !ok {
			rec = &schema.ChurnRecord{Path: path}
			byPath[path] = rec
		}
		rec.Commits++
		if added, err := strconv.Atoi(parts[0]); err == nil {
			rec.LinesAdded += added
		}
		if removed, err := strconv.Atoi(parts[1]); err == nil {
			rec.LinesRemoved += removed
		}
	}

	paths := make([]string, 0, len(byPath))
	for p := range byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	records := make([]schema.ChurnRecord, 0, len(paths))
	for _, p := range paths {
		records = append(records, *byPath[p])
	}
	return records
}
