// Package core has the branch-exclusive attribution pipeline for branchlens.
package core

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/gamsoft/branchlens/core/agg"
	"github.com/gamsoft/branchlens/internal/contract"
	"github.com/gamsoft/branchlens/schema"
)

// AnalyzeBranch runs the full attribution pipeline for the configured branch:
// resolve the default branch, fetch both commit sequences, filter the target
// down to its exclusive prefix and aggregate per-author statistics. Every
// call builds fresh state; nothing is shared between runs.
func AnalyzeBranch(ctx context.Context, cfg *contract.Config, source contract.CommitSource, mgr contract.CacheManager) (*schema.BranchAnalysis, error) {
	startTime := time.Now()

	// --- 1. Resolve repository and target branch ---
	repoInfo, err := source.FetchRepository(ctx, cfg.Owner, cfg.Repo)
	if err != nil {
		return nil, err
	}

	branch := cfg.Branch
	if branch == "" {
		branch = repoInfo.DefaultBranch
	}
	if err := validateBranch(ctx, cfg, source, branch, repoInfo.DefaultBranch); err != nil {
		return nil, err
	}

	printHeader(ctx, cfg, branch, repoInfo.DefaultBranch)

	// --- 2. Fetch the target branch history ---
	store := mgr.GetActivityStore()
	target, targetComplete, err := fetchBranchCommitsCached(ctx, source, store, cfg.Owner, cfg.Repo, branch)
	if err != nil {
		return nil, err
	}
	if err := ValidateSequence(target); err != nil {
		return nil, err
	}

	// --- 3. Resolve lineage and filter ---
	exclusive, lineageConfirmed, inputComplete, err := resolveExclusive(ctx, cfg, source, store, branch, repoInfo.DefaultBranch, target, targetComplete)
	if err != nil {
		return nil, err
	}

	// --- 4. Optionally enrich with per-commit diff stats ---
	if cfg.Details && len(exclusive) > 0 {
		exclusive, err = source.FetchCommitDetails(ctx, cfg.Owner, cfg.Repo, exclusive)
		if err != nil {
			return nil, err
		}
	}

	// --- 5. Aggregate per author ---
	aggResult := agg.AggregateAuthors(exclusive)

	analysis := &schema.BranchAnalysis{
		Owner:             cfg.Owner,
		Repo:              cfg.Repo,
		Branch:            branch,
		DefaultBranch:     repoInfo.DefaultBranch,
		Exclusive:         exclusive,
		Authors:           aggResult.Authors,
		AuthorKeys:        aggResult.Keys,
		LineageConfirmed:  lineageConfirmed,
		InputComplete:     inputComplete,
		SkippedMalformed:  aggResult.SkippedMalformed,
		UnresolvedAuthors: aggResult.UnresolvedAuthors,
		AnalyzedAt:        startTime.UTC(),
	}

	// --- 6. Record the run for trend tracking (best effort) ---
	trackAnalysis(cfg, mgr, startTime, analysis)

	return analysis, nil
}

// resolveExclusive computes the branch-exclusive sequence. The default
// branch's exclusive set against its own lineage is empty by definition, so
// that case skips the second fetch entirely.
func resolveExclusive(ctx context.Context, cfg *contract.Config, source contract.CommitSource, store contract.CacheStore, branch, defaultBranch string, target []schema.CommitRecord, targetComplete bool) ([]schema.CommitRecord, bool, bool, error) {
	if branch == defaultBranch {
		return []schema.CommitRecord{}, true, targetComplete, nil
	}

	defaultRecords, defaultComplete, err := fetchBranchCommitsCached(ctx, source, store, cfg.Owner, cfg.Repo, defaultBranch)
	if err != nil {
		return nil, false, false, err
	}
	if err := ValidateSequence(defaultRecords); err != nil {
		return nil, false, false, err
	}

	lineage := BuildLineageSet(defaultRecords, defaultComplete)
	exclusive, confirmed := ExclusiveCommits(target, lineage)
	return exclusive, confirmed, targetComplete && lineage.Complete, nil
}

// validateBranch rejects branches the repository does not have, listing a few
// valid names to help the user. Listing failures are non-fatal because the
// later tip lookup reports missing branches anyway.
func validateBranch(ctx context.Context, cfg *contract.Config, source contract.CommitSource, branch, defaultBranch string) error {
	if branch == defaultBranch {
		return nil
	}

	branches, err := source.ListBranches(ctx, cfg.Owner, cfg.Repo)
	if err != nil {
		contract.LogWarn("could not list branches", err)
		return nil
	}
	if len(branches) == 0 || slices.Contains(branches, branch) {
		return nil
	}

	sample := branches
	if len(sample) > 15 {
		sample = sample[:15]
	}
	return fmt.Errorf("branch %q not found in %s. Available branches include: %v", branch, cfg.RepoSlug(), sample)
}

// printHeader shows run context on stdout unless suppressed by the caller.
func printHeader(ctx context.Context, cfg *contract.Config, branch, defaultBranch string) {
	if headerSuppressed(ctx) {
		return
	}
	if cfg.UseEmojis {
		fmt.Printf("🔎 Analyzing %s@%s (default: %s)\n", cfg.RepoSlug(), branch, defaultBranch)
	} else {
		fmt.Printf("Analyzing %s@%s (default: %s)\n", cfg.RepoSlug(), branch, defaultBranch)
	}
}
