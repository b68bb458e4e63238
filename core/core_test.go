package core

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/gamsoft/branchlens/internal/contract"
	"github.com/gamsoft/branchlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is an in-memory CommitSource with per-branch histories.
type fakeSource struct {
	defaultBranch string
	branches      map[string][]schema.CommitRecord
	incomplete    map[string]bool
	fetchCalls    int
	detailCalls   int
}

var _ contract.CommitSource = (*fakeSource)(nil)

func (f *fakeSource) FetchRepository(_ context.Context, owner, repo string) (*schema.RepositoryInfo, error) {
	return &schema.RepositoryInfo{
		Owner:         owner,
		Name:          repo,
		FullName:      owner + "/" + repo,
		DefaultBranch: f.defaultBranch,
	}, nil
}

func (f *fakeSource) ListBranches(context.Context, string, string) ([]string, error) {
	names := make([]string, 0, len(f.branches))
	for name := range f.branches {
		names = append(names, name)
	}
	return names, nil
}

func (f *fakeSource) GetBranchTip(_ context.Context, _, _, branch string) (string, error) {
	commits, ok := f.branches[branch]
	if !ok {
		return "", fmt.Errorf("branch %q not found", branch)
	}
	if len(commits) == 0 {
		return "", nil
	}
	return commits[0].SHA, nil
}

func (f *fakeSource) FetchBranchCommits(_ context.Context, _, _, branch string) ([]schema.CommitRecord, bool, error) {
	f.fetchCalls++
	commits, ok := f.branches[branch]
	if !ok {
		return nil, false, fmt.Errorf("branch %q not found", branch)
	}
	return commits, !f.incomplete[branch], nil
}

func (f *fakeSource) FetchCommitDetails(_ context.Context, _, _ string, records []schema.CommitRecord) ([]schema.CommitRecord, error) {
	f.detailCalls++
	enriched := make([]schema.CommitRecord, len(records))
	copy(enriched, records)
	for i := range enriched {
		enriched[i].Additions = 10
		enriched[i].Deletions = 4
	}
	return enriched, nil
}

// memStore is an in-memory CacheStore for pipeline tests.
type memStore struct {
	entries map[string]memEntry
}

type memEntry struct {
	data    []byte
	version int
	ts      int64
}

var _ contract.CacheStore = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{entries: make(map[string]memEntry)}
}

func (m *memStore) Get(key string) ([]byte, int, int64, error) {
	entry, ok := m.entries[key]
	if !ok {
		return nil, 0, 0, sql.ErrNoRows
	}
	return entry.data, entry.version, entry.ts, nil
}

func (m *memStore) Set(key string, data []byte, version int, ts int64) error {
	m.entries[key] = memEntry{data: data, version: version, ts: ts}
	return nil
}

func (m *memStore) GetStatus() (schema.CacheStatus, error) {
	return schema.CacheStatus{Backend: "memory", Connected: true, TotalEntries: len(m.entries)}, nil
}

func (m *memStore) Close() error { return nil }

// fakeManager wires the in-memory store into the CacheManager interface.
type fakeManager struct {
	store contract.CacheStore
}

var _ contract.CacheManager = (*fakeManager)(nil)

func (f *fakeManager) GetActivityStore() contract.CacheStore    { return f.store }
func (f *fakeManager) GetAnalysisStore() contract.AnalysisStore { return nil }

func testConfig(branch string) *contract.Config {
	return &contract.Config{
		Owner:       "octocat",
		Repo:        "hello-world",
		Branch:      branch,
		PerPage:     100,
		MaxPages:    10,
		RateLimit:   5,
		Workers:     2,
		ResultLimit: 25,
		Output:      schema.TextOut,
	}
}

func authored(sha, login string, ts time.Time) schema.CommitRecord {
	return schema.CommitRecord{SHA: sha, AuthorLogin: login, AuthorName: login, Timestamp: ts}
}

func featureSource() *fakeSource {
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	m1 := authored("m1", "maintainer", base)
	m2 := authored("m2", "maintainer", base.Add(time.Hour))
	f1 := authored("f1", "alice", base.Add(2*time.Hour))
	f2 := authored("f2", "bob", base.Add(3*time.Hour))

	return &fakeSource{
		defaultBranch: "main",
		branches: map[string][]schema.CommitRecord{
			"main":    {m2, m1},
			"feature": {f2, f1, m2, m1},
		},
		incomplete: map[string]bool{},
	}
}

func TestAnalyzeBranchFeature(t *testing.T) {
	source := featureSource()
	ctx := WithSuppressHeader(context.Background())

	analysis, err := AnalyzeBranch(ctx, testConfig("feature"), source, &fakeManager{store: newMemStore()})
	require.NoError(t, err)

	require.Len(t, analysis.Exclusive, 2)
	assert.Equal(t, "f2", analysis.Exclusive[0].SHA)
	assert.Equal(t, "f1", analysis.Exclusive[1].SHA)
	assert.True(t, analysis.LineageConfirmed)
	assert.True(t, analysis.InputComplete)
	assert.Equal(t, "main", analysis.DefaultBranch)
	assert.Equal(t, []string{"alice", "bob"}, analysis.AuthorKeys)
	assert.Equal(t, 1, analysis.Authors["alice"].Commits)
}

func TestAnalyzeBranchDefaultIsEmpty(t *testing.T) {
	source := featureSource()
	ctx := WithSuppressHeader(context.Background())

	analysis, err := AnalyzeBranch(ctx, testConfig("main"), source, &fakeManager{store: newMemStore()})
	require.NoError(t, err)
	assert.Empty(t, analysis.Exclusive)
	assert.Empty(t, analysis.Authors)
	assert.True(t, analysis.LineageConfirmed)
}

func TestAnalyzeBranchEmptyBranchUsesDefault(t *testing.T) {
	source := featureSource()
	ctx := WithSuppressHeader(context.Background())

	analysis, err := AnalyzeBranch(ctx, testConfig(""), source, &fakeManager{store: newMemStore()})
	require.NoError(t, err)
	assert.Equal(t, "main", analysis.Branch)
}

func TestAnalyzeBranchUnconfirmedLineage(t *testing.T) {
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	source := &fakeSource{
		defaultBranch: "main",
		branches: map[string][]schema.CommitRecord{
			"main":   {authored("m9", "maintainer", base)},
			"orphan": {authored("f2", "alice", base), authored("f1", "alice", base)},
		},
		incomplete: map[string]bool{"main": true},
	}
	ctx := WithSuppressHeader(context.Background())

	analysis, err := AnalyzeBranch(ctx, testConfig("orphan"), source, &fakeManager{store: newMemStore()})
	require.NoError(t, err)
	assert.Len(t, analysis.Exclusive, 2)
	assert.False(t, analysis.LineageConfirmed)
	assert.False(t, analysis.InputComplete)
}

func TestAnalyzeBranchTruncatedDefaultLineage(t *testing.T) {
	// The default branch history is truncated but still intersects the
	// target, so the boundary is confirmed while the input is not complete.
	source := featureSource()
	source.incomplete["main"] = true
	ctx := WithSuppressHeader(context.Background())

	analysis, err := AnalyzeBranch(ctx, testConfig("feature"), source, &fakeManager{store: newMemStore()})
	require.NoError(t, err)
	assert.Len(t, analysis.Exclusive, 2)
	assert.True(t, analysis.LineageConfirmed)
	assert.False(t, analysis.InputComplete)
}

func TestAnalyzeBranchUnknownBranch(t *testing.T) {
	source := featureSource()
	ctx := WithSuppressHeader(context.Background())

	_, err := AnalyzeBranch(ctx, testConfig("missing"), source, &fakeManager{store: newMemStore()})
	assert.Error(t, err)
}

func TestAnalyzeBranchDetails(t *testing.T) {
	source := featureSource()
	cfg := testConfig("feature")
	cfg.Details = true
	ctx := WithSuppressHeader(context.Background())

	analysis, err := AnalyzeBranch(ctx, cfg, source, &fakeManager{store: newMemStore()})
	require.NoError(t, err)
	assert.Equal(t, 1, source.detailCalls)
	assert.Equal(t, 20, analysis.TotalAdditions())
	assert.Equal(t, 8, analysis.TotalDeletions())
}

func TestAnalyzeBranchUsesCache(t *testing.T) {
	source := featureSource()
	store := newMemStore()
	mgr := &fakeManager{store: store}
	ctx := WithSuppressHeader(context.Background())

	_, err := AnalyzeBranch(ctx, testConfig("feature"), source, mgr)
	require.NoError(t, err)
	fetchesAfterFirst := source.fetchCalls
	assert.Equal(t, 2, fetchesAfterFirst) // target + default branch

	_, err = AnalyzeBranch(ctx, testConfig("feature"), source, mgr)
	require.NoError(t, err)
	assert.Equal(t, fetchesAfterFirst, source.fetchCalls)
}

func TestAnalyzeBranchDivergentDuplicates(t *testing.T) {
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	dup := authored("f1", "alice", base)
	divergent := authored("f1", "mallory", base)
	source := &fakeSource{
		defaultBranch: "main",
		branches: map[string][]schema.CommitRecord{
			"main":    {authored("m1", "maintainer", base)},
			"feature": {dup, divergent, authored("m1", "maintainer", base)},
		},
		incomplete: map[string]bool{},
	}
	ctx := WithSuppressHeader(context.Background())

	_, err := AnalyzeBranch(ctx, testConfig("feature"), source, &fakeManager{store: newMemStore()})
	assert.ErrorIs(t, err, ErrDivergentCommit)
}

func TestCommitCacheKeyChangesWithTip(t *testing.T) {
	k1 := commitCacheKey("octocat", "hello-world", "feature", "aaa")
	k2 := commitCacheKey("octocat", "hello-world", "feature", "bbb")
	assert.NotEqual(t, k1, k2)
	assert.Equal(t, k1, commitCacheKey("octocat", "hello-world", "feature", "aaa"))
}
