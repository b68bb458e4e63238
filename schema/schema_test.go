package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTopFilesOrdering(t *testing.T) {
	agg := &AuthorAggregate{
		FileTouches: map[string]*FileStat{
			"cmd/root.go":    {Touches: 2, Additions: 8, Deletions: 2},
			"core/filter.go": {Touches: 5, Additions: 40, Deletions: 12},
			"core/agg.go":    {Touches: 2, Additions: 8, Deletions: 2},
			"README.md":      {Touches: 1, Additions: 3, Deletions: 0},
		},
	}

	got := agg.TopFiles(0)
	want := []FileTouch{
		{Path: "core/filter.go", Touches: 5, Additions: 40, Deletions: 12},
		{Path: "cmd/root.go", Touches: 2, Additions: 8, Deletions: 2},
		{Path: "core/agg.go", Touches: 2, Additions: 8, Deletions: 2},
		{Path: "README.md", Touches: 1, Additions: 3},
	}
	assert.Equal(t, want, got)

	limited := agg.TopFiles(2)
	assert.Len(t, limited, 2)
	assert.Equal(t, "core/filter.go", limited[0].Path)
}

func TestTopFilesByChurnOrdering(t *testing.T) {
	agg := &AuthorAggregate{
		FileTouches: map[string]*FileStat{
			"core/filter.go": {Touches: 5, Additions: 10, Deletions: 2},
			"docs/big.md":    {Touches: 1, Additions: 400, Deletions: 100},
			"cmd/a.go":       {Touches: 2, Additions: 10, Deletions: 2},
			"cmd/b.go":       {Touches: 2, Additions: 8, Deletions: 4},
		},
	}

	got := agg.TopFilesByChurn(0)
	assert.Equal(t, "docs/big.md", got[0].Path)
	assert.Equal(t, 500, got[0].Churn())
	// Equal churn breaks ties by path.
	assert.Equal(t, "cmd/a.go", got[1].Path)
	assert.Equal(t, "cmd/b.go", got[2].Path)
	assert.Equal(t, "core/filter.go", got[3].Path)

	limited := agg.TopFilesByChurn(1)
	assert.Len(t, limited, 1)
}

func TestCommitRecordMalformed(t *testing.T) {
	tests := []struct {
		name   string
		record CommitRecord
		want   bool
	}{
		{"valid", CommitRecord{SHA: "abc", Timestamp: time.Now()}, false},
		{"missing sha", CommitRecord{Timestamp: time.Now()}, true},
		{"zero timestamp", CommitRecord{SHA: "abc"}, true},
		{"empty", CommitRecord{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.IsMalformed())
		})
	}
}

func TestActivityFor(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		last time.Time
		want ActivityLevel
	}{
		{"recent commit", now.AddDate(0, 0, -5), ActiveLevel},
		{"two months ago", now.AddDate(0, -2, 0), QuietLevel},
		{"last year", now.AddDate(-1, 0, 0), DormantLevel},
		{"no commits", time.Time{}, UnknownLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ActivityFor(tt.last, now))
		})
	}
}

func TestEnrichAuthorsRanksAndLimits(t *testing.T) {
	analysis := &BranchAnalysis{
		Owner:  "octocat",
		Repo:   "hello",
		Branch: "feature",
		Authors: map[string]*AuthorAggregate{
			"alice": {Key: "alice", Commits: 3, Additions: 30, Deletions: 10},
			"bob":   {Key: "bob", Commits: 1, Additions: 5, Deletions: 1},
		},
		AuthorKeys:       []string{"alice", "bob"},
		Exclusive:        make([]CommitRecord, 4),
		LineageConfirmed: true,
		InputComplete:    true,
	}

	model := EnrichAuthors(analysis, 1, 0)
	assert.Len(t, model.Authors, 1)
	assert.Equal(t, 1, model.Authors[0].Rank)
	assert.Equal(t, "alice", model.Authors[0].Key)
	assert.Equal(t, 4, model.TotalCommits)
	assert.Equal(t, 35, model.TotalAdditions)
	assert.Equal(t, 11, model.TotalDeletions)
}
