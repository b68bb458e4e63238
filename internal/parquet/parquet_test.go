package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gamsoft/branchlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertAnalysisRunRecords(t *testing.T) {
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Second)
	durationMs := int64(2000)
	params := `{"repo":"octocat/hello-world"}`

	records := []schema.AnalysisRunRecord{
		{AnalysisID: 1, StartTime: start, EndTime: &end, RunDurationMs: &durationMs, TotalAuthors: 3, ConfigParams: &params},
		{AnalysisID: 2, StartTime: start},
	}

	runs := ConvertAnalysisRunRecords(records)
	require.Len(t, runs, 2)
	assert.Equal(t, int64(1), runs[0].AnalysisID)
	assert.Equal(t, int32(3), runs[0].TotalAuthors)
	assert.Equal(t, &durationMs, runs[0].RunDurationMs)
	assert.Nil(t, runs[1].EndTime)
	assert.Nil(t, runs[1].ConfigParams)
}

func TestConvertAuthorStatsRecords(t *testing.T) {
	first := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	records := []schema.AuthorStatsRecord{
		{
			AnalysisID: 1, AuthorKey: "alice", DisplayName: "Alice",
			CommitCount: 4, Additions: 120, Deletions: 30, NetLines: 90,
			ActiveDays: 2, FilesTouched: 6, FirstCommit: &first,
		},
	}

	rows := ConvertAuthorStatsRecords(records)
	require.Len(t, rows, 1)
	assert.Equal(t, "alice", rows[0].AuthorKey)
	assert.Equal(t, int64(90), rows[0].NetLines)
	assert.Equal(t, &first, rows[0].FirstCommit)
	assert.Nil(t, rows[0].LastCommit)
}

func TestWriteAnalysisRunsParquet(t *testing.T) {
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	runs := []AnalysisRun{{AnalysisID: 1, StartTime: start, TotalAuthors: 2}}

	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	require.NoError(t, WriteAnalysisRunsParquet(runs, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteAuthorStatsParquet(t *testing.T) {
	rows := []AuthorStatsRow{{AnalysisID: 1, AuthorKey: "alice", DisplayName: "Alice", CommitCount: 1}}

	outputPath := filepath.Join(t.TempDir(), "stats.parquet")
	require.NoError(t, WriteAuthorStatsParquet(rows, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
