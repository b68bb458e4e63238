package agg

import (
	"testing"
	"time"

	"github.com/gamsoft/branchlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commitAt(sha, login, name string, ts time.Time, add, del int) schema.CommitRecord {
	return schema.CommitRecord{
		SHA:         sha,
		AuthorLogin: login,
		AuthorName:  name,
		Timestamp:   ts,
		Additions:   add,
		Deletions:   del,
	}
}

func TestCanonicalAuthorKey(t *testing.T) {
	tests := []struct {
		name  string
		login string
		disp  string
		want  string
	}{
		{"login wins", "Octocat", "The Octocat", "octocat"},
		{"name fallback", "", "Jane Doe", "jane doe"},
		{"name trimmed", "", "  Jane Doe  ", "jane doe"},
		{"sentinel", "", "", schema.UnknownAuthorKey},
		{"whitespace name is sentinel", "", "   ", schema.UnknownAuthorKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalAuthorKey(tt.login, tt.disp))
		})
	}
}

func TestAggregateAuthorsMergesCaseVariants(t *testing.T) {
	// The same contributor appearing with different login casing must land
	// in a single bucket.
	day1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	exclusive := []schema.CommitRecord{
		commitAt("c2", "Alice", "Alice Smith", day2, 20, 5),
		commitAt("c1", "alice", "ALICE SMITH", day1, 10, 3),
	}

	result := AggregateAuthors(exclusive)
	require.Len(t, result.Authors, 1)

	agg := result.Authors["alice"]
	require.NotNil(t, agg)
	assert.Equal(t, 2, agg.Commits)
	assert.Equal(t, 30, agg.Additions)
	assert.Equal(t, 8, agg.Deletions)
	assert.Equal(t, 22, agg.NetLines)
	assert.Equal(t, day1, agg.FirstCommit)
	assert.Equal(t, day2, agg.LastCommit)
	assert.Equal(t, 2, agg.ActiveDays)
	assert.Equal(t, "Alice Smith", agg.DisplayName)
	assert.Equal(t, []string{"c2", "c1"}, agg.CommitSHAs)
}

func TestAggregateAuthorsUnknownSentinel(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	exclusive := []schema.CommitRecord{
		commitAt("c1", "", "", ts, 5, 1),
		commitAt("c2", "", "", ts, 3, 2),
	}

	result := AggregateAuthors(exclusive)
	require.Contains(t, result.Authors, schema.UnknownAuthorKey)
	assert.Equal(t, 2, result.Authors[schema.UnknownAuthorKey].Commits)
	assert.Equal(t, 2, result.UnresolvedAuthors)
}

func TestAggregateAuthorsSkipsMalformed(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	exclusive := []schema.CommitRecord{
		commitAt("c1", "alice", "", ts, 5, 1),
		{AuthorLogin: "bob", Timestamp: ts}, // no SHA
		{SHA: "c3", AuthorLogin: "carol"},   // no timestamp
	}

	result := AggregateAuthors(exclusive)
	assert.Len(t, result.Authors, 1)
	assert.Equal(t, 2, result.SkippedMalformed)
}

func TestAggregateAuthorsDeterministicOrdering(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	exclusive := []schema.CommitRecord{
		commitAt("c4", "carol", "", ts, 1, 0),
		commitAt("c3", "bob", "", ts, 1, 0),
		commitAt("c2", "alice", "", ts, 1, 0),
		commitAt("c1", "alice", "", ts, 1, 0),
	}

	first := AggregateAuthors(exclusive)
	second := AggregateAuthors(exclusive)

	// alice leads on commits; bob and carol tie and fall back to key order.
	assert.Equal(t, []string{"alice", "bob", "carol"}, first.Keys)
	assert.Equal(t, first.Keys, second.Keys)
	assert.Equal(t, first.Authors["alice"], second.Authors["alice"])
}

func TestAggregateAuthorsFileTouches(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c1 := commitAt("c1", "alice", "", ts, 10, 0)
	c1.Files = []schema.FileChange{
		{Path: "core/filter.go", Additions: 8, Deletions: 0, Change: schema.ModifiedChange},
		{Path: "core/lineage.go", Additions: 2, Deletions: 0, Change: schema.AddedChange},
	}
	c2 := commitAt("c2", "alice", "", ts, 4, 1)
	c2.Files = []schema.FileChange{
		{Path: "core/filter.go", Additions: 4, Deletions: 1, Change: schema.ModifiedChange},
	}

	result := AggregateAuthors([]schema.CommitRecord{c2, c1})
	agg := result.Authors["alice"]
	require.NotNil(t, agg)
	assert.Equal(t, &schema.FileStat{Touches: 2, Additions: 12, Deletions: 1}, agg.FileTouches["core/filter.go"])
	assert.Equal(t, &schema.FileStat{Touches: 1, Additions: 2, Deletions: 0}, agg.FileTouches["core/lineage.go"])
	assert.Equal(t, 13, agg.FileTouches["core/filter.go"].Churn())
}

func TestAggregateAuthorsEmptyInput(t *testing.T) {
	result := AggregateAuthors(nil)
	assert.Empty(t, result.Authors)
	assert.Empty(t, result.Keys)
	assert.Zero(t, result.SkippedMalformed)
}

func TestAggregateAuthorsNetLinesInvariant(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	exclusive := []schema.CommitRecord{
		commitAt("c1", "alice", "", ts, 100, 40),
		commitAt("c2", "alice", "", ts, 7, 30),
	}

	agg := AggregateAuthors(exclusive).Authors["alice"]
	assert.Equal(t, agg.Additions-agg.Deletions, agg.NetLines)
}
