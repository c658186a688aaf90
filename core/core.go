// Package core has core logic for analysis, scoring, and ranking.
package core

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/huangsam/triage/core/algo"
	"github.com/huangsam/triage/internal/analyzer"
	"github.com/huangsam/triage/internal/contract"
	"github.com/huangsam/triage/internal/index"
	"github.com/huangsam/triage/internal/ingest"
	"github.com/huangsam/triage/internal/iocache"
	"github.com/huangsam/triage/internal/outwriter"
	"github.com/huangsam/triage/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// announce prints a progress header on stderr for interactive runs. Machine
// formats stay silent so piped output is clean.
func announce(cfg *contract.Config, emoji, msg string) {
	if cfg.Output != schema.TextOut {
		return
	}
	if cfg.UseEmojis {
		msg = emoji + " " + msg
	}
	fmt.Fprintln(os.Stderr, msg)
}

// ExecuteHotspots runs a full analysis pass and prints the ranked hotspot
// files to stdout. It serves as the main entry point for the 'hotspots' command.
func ExecuteHotspots(ctx context.Context, cfg *contract.Config) error {
	announce(cfg, "🔥", "Scanning "+cfg.RepoPath+" for hotspots...")
	start := time.Now()
	result, err := runPass(ctx, cfg, contract.NewLocalHistoryProvider(), issueSources(cfg), iocache.Manager)
	if err != nil {
		return err
	}
	ranked := algo.RankHotspots(result.Hotspots, cfg.ResultLimit)
	duration := time.Since(start)
	return outwriter.PrintHotspotResults(ranked, cfg, duration)
}

// ExecuteIssues runs a full analysis pass and prints the prioritized issue
// list to stdout. It serves as the main entry point for the 'issues' command.
func ExecuteIssues(ctx context.Context, cfg *contract.Config) error {
	announce(cfg, "🩺", "Prioritizing issues in "+cfg.RepoPath+"...")
	start := time.Now()
	result, err := runPass(ctx, cfg, contract.NewLocalHistoryProvider(), issueSources(cfg), iocache.Manager)
	if err != nil {
		return err
	}
	issues := result.Issues
	if len(issues) > cfg.ResultLimit {
		issues = issues[:cfg.ResultLimit]
	}
	duration := time.Since(start)
	return outwriter.PrintIssueResults(issues, cfg, duration)
}

// ExecuteQuery searches the lexical index and prints the ranked hits with
// their line-range citations. It serves as the main entry point for the
// 'query' command.
func ExecuteQuery(ctx context.Context, cfg *contract.Config, query string) error {
	announce(cfg, "🔎", "Searching "+cfg.RepoPath+"...")
	start := time.Now()

	files, err := ingest.LoadRepo(ctx, cfg)
	if err != nil {
		return err
	}

	docs, err := buildDocuments(ctx, cfg, files)
	if err != nil {
		return err
	}

	engine := index.NewEngine(docs, cfg.Stemming)
	hits := engine.Search(query, cfg.ResultLimit)
	attachSnippets(hits, files)

	duration := time.Since(start)
	return outwriter.PrintQueryResults(hits, cfg, duration)
}

// ExecuteMetrics displays the scoring formula and per-input definitions.
// No repository analysis is performed.
func ExecuteMetrics(cfg *contract.Config) error {
	return outwriter.PrintMetricsDefinitions(cfg)
}

// RunPass exposes the full pass for boundary consumers (MCP tools) that need
// structured results instead of printed output.
func RunPass(ctx context.Context, cfg *contract.Config) (*schema.PassResult, error) {
	return runPass(ctx, cfg, contract.NewLocalHistoryProvider(), issueSources(cfg), iocache.Manager)
}

// RunQuery exposes the index search for boundary consumers.
func RunQuery(ctx context.Context, cfg *contract.Config, query string) ([]schema.QueryHit, error) {
	files, err := ingest.LoadRepo(ctx, cfg)
	if err != nil {
		return nil, err
	}
	docs, err := buildDocuments(ctx, cfg, files)
	if err != nil {
		return nil, err
	}
	hits := index.NewEngine(docs, cfg.Stemming).Search(query, cfg.ResultLimit)
	attachSnippets(hits, files)
	return hits, nil
}

// issueSources assembles the issue adapters for the configured pass.
func issueSources(cfg *contract.Config) []contract.IssueSource {
	if cfg.IssueReport == "" {
		return []contract.IssueSource{&analyzer.NoopSource{}}
	}
	return []contract.IssueSource{analyzer.NewReportSource(cfg.IssueReport)}
}

// buildDocuments produces the index documents for the pass, going through
// the fingerprint cache when one is configured.
func buildDocuments(ctx context.Context, cfg *contract.Config, files []schema.FileRecord) ([]schema.IndexedDocument, error) {
	store := iocache.Manager.GetIndexStore()
	if store != nil {
		docs, _, err := iocache.SyncIndex(ctx, cfg, store, files)
		return docs, err
	}

	// No cache configured; build everything in memory.
	builder := index.NewBuilder(cfg.Boosts, cfg.Stemming)
	docs := make([]schema.IndexedDocument, len(files))
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		docs[i] = builder.BuildDocument(file.Path, file.Content)
	}
	return docs, nil
}

// attachSnippets fills each hit's snippet with the first non-blank line of
// its cited chunk.
func attachSnippets(hits []schema.QueryHit, files []schema.FileRecord) {
	content := make(map[string]string, len(files))
	for _, file := range files {
		content[file.Path] = file.Content
	}

	for i, hit := range hits {
		text, ok := content[hit.Path]
		if !ok {
			continue
		}
		lines := strings.Split(text, "\n")
		for n := hit.StartLine; n <= hit.EndLine && n <= len(lines); n++ {
			line := strings.TrimSpace(lines[n-1])
			if line == "" {
				continue
			}
			const maxSnippet = 160
			if len(line) > maxSnippet {
				line = line[:maxSnippet]
			}
			hits[i].Snippet = line
			break
		}
	}
}
