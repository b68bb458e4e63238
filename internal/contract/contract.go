// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/gamsoft/branchlens/schema"
)

// CommitSource defines the operations needed to read commit history from a
// remote code host. This allows the core pipeline to be tested without
// network access.
type CommitSource interface {
	// FetchRepository returns repository metadata, including the default branch.
	FetchRepository(ctx context.Context, owner, repo string) (*schema.RepositoryInfo, error)

	// ListBranches returns the branch names of the repository.
	ListBranches(ctx context.Context, owner, repo string) ([]string, error)

	// GetBranchTip returns the SHA of the branch's newest commit.
	GetBranchTip(ctx context.Context, owner, repo, branch string) (string, error)

	// FetchBranchCommits returns the branch's commits newest first, up to the
	// configured pagination cap. The bool is false when the cap truncated the
	// history before its natural end.
	FetchBranchCommits(ctx context.Context, owner, repo, branch string) ([]schema.CommitRecord, bool, error)

	// FetchCommitDetails enriches the given records with per-commit diff
	// stats (additions, deletions, file changes), preserving input order.
	FetchCommitDetails(ctx context.Context, owner, repo string, records []schema.CommitRecord) ([]schema.CommitRecord, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetActivityStore() CacheStore
	GetAnalysisStore() AnalysisStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// AnalysisStore defines the interface for historical analysis tracking.
type AnalysisStore interface {
	// BeginAnalysis records the start of an analysis run and returns its ID.
	BeginAnalysis(startTime time.Time, configParams map[string]any) (int64, error)

	// EndAnalysis finalizes a run with its end time and author count.
	EndAnalysis(analysisID int64, endTime time.Time, totalAuthors int) error

	// RecordAuthorStats stores one author's aggregate for a run.
	RecordAuthorStats(analysisID int64, agg *schema.AuthorAggregate) error

	// GetAllAnalysisRuns returns every recorded run.
	GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllAuthorStats returns every recorded author stats row.
	GetAllAuthorStats() ([]schema.AuthorStatsRecord, error)

	GetStatus() (schema.AnalysisStatus, error)
	Close() error
}
