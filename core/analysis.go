package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/triage/core/algo"
	"github.com/huangsam/triage/internal/contract"
	"github.com/huangsam/triage/internal/ingest"
	"github.com/huangsam/triage/schema"
)

// runPass executes one full analysis pass: ingestion, dependency graph,
// centrality, churn, composite scoring, and issue prioritization.
//
// Collaborator failures short of ingestion degrade rather than abort: a
// missing git history means zero churn, a failing issue source contributes
// no issues. The outputs are always structurally complete.
func runPass(ctx context.Context, cfg *contract.Config, history contract.HistoryProvider, sources []contract.IssueSource, mgr contract.CacheManager) (*schema.PassResult, error) {
	files, err := ingest.LoadRepo(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		// An empty repository yields empty outputs, not an error.
		return &schema.PassResult{}, nil
	}

	// Begin analysis tracking (if configured)
	analysisID, analysisStore := beginTracking(cfg, mgr)

	graph := BuildDependencyGraph(files)
	centrality := ComputeCentrality(graph)

	paths := make([]string, len(files))
	for i, file := range files {
		paths[i] = file.Path
	}

	var churnRecords []schema.ChurnRecord
	if history != nil {
		churnRecords, err = history.ChurnRecords(ctx, cfg.RepoPath)
		if err != nil {
			contract.LogWarn("churn unavailable, scoring without it", err)
			churnRecords = nil
		}
	}
	churn := ComputeChurn(paths, churnRecords)

	hotspots := ScoreHotspots(cfg.Weights, files, centrality, churn)

	result := &schema.PassResult{
		Hotspots: hotspots,
		Files:    len(files),
		Edges:    graph.EdgeCount(),
	}

	var issues []schema.Issue
	for _, source := range sources {
		found, err := source.Issues(ctx, files)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("issue source %s failed", source.Name()), err)
			continue
		}
		issues = append(issues, found...)
	}
	result.Issues = algo.PrioritizeIssues(issues, result.HotspotMap())

	// End analysis tracking
	endTracking(analysisID, analysisStore, hotspots)

	return result, nil
}

// beginTracking opens an analysis run when a tracking store is configured.
// Tracking failures never disrupt the pass itself.
func beginTracking(cfg *contract.Config, mgr contract.CacheManager) (int64, contract.AnalysisStore) {
	if mgr == nil {
		return 0, nil
	}
	store := mgr.GetAnalysisStore()
	if store == nil {
		return 0, nil
	}

	configParams := map[string]any{
		"repo_path":         cfg.RepoPath,
		"result_limit":      cfg.ResultLimit,
		"workers":           cfg.Workers,
		"complexity_weight": cfg.Weights.Complexity,
		"centrality_weight": cfg.Weights.Centrality,
		"churn_weight":      cfg.Weights.Churn,
	}
	analysisID, err := store.BeginAnalysis(time.Now().Unix(), configParams)
	if err != nil {
		contract.LogWarn("analysis tracking initialization failed", err)
		return 0, nil
	}
	return analysisID, store
}

// endTracking records per-file scores and finalizes the analysis run.
func endTracking(analysisID int64, store contract.AnalysisStore, hotspots []schema.HotspotScore) {
	if store == nil || analysisID == 0 {
		return
	}

	now := time.Now()
	for _, h := range hotspots {
		record := schema.FileScoreRecord{
			FilePath:   h.Path,
			Recorded:   now,
			Complexity: h.Complexity,
			Centrality: h.Centrality,
			Churn:      h.Churn,
			Score:      h.Score,
		}
		if err := store.RecordFileScore(analysisID, record); err != nil {
			contract.LogWarn(fmt.Sprintf("analysis tracking failed for %s", h.Path), err)
		}
	}

	if err := store.EndAnalysis(analysisID, now.Unix(), len(hotspots)); err != nil {
		contract.LogWarn("failed to finalize analysis tracking", err)
	}
}
