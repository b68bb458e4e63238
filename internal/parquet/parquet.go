// Package parquet provides data structures and functions for exporting branch
// attribution data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/gamsoft/branchlens/schema"
	"github.com/parquet-go/parquet-go"
)

// AnalysisRun represents a single attribution run with metadata.
// This struct maps to the branchlens_analysis_runs database table.
type AnalysisRun struct {
	// AnalysisID is the unique identifier for this analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// StartTime is when the analysis began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the analysis run in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// TotalAuthors is the number of authors attributed in this run
	TotalAuthors int32 `parquet:"total_authors,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// AuthorStatsRow represents one author's aggregate in an analysis run.
// This struct maps to the branchlens_author_stats database table.
type AuthorStatsRow struct {
	// AnalysisID references the parent analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// AuthorKey is the canonical identity key for the author
	AuthorKey string `parquet:"author_key,snappy"`

	// DisplayName is the human-readable name recorded for the author
	DisplayName string `parquet:"display_name,snappy"`

	// CommitCount is the number of branch-exclusive commits by this author
	CommitCount int32 `parquet:"commit_count,snappy"`

	// Additions is the total lines added across those commits
	Additions int64 `parquet:"additions,snappy"`

	// Deletions is the total lines deleted across those commits
	Deletions int64 `parquet:"deletions,snappy"`

	// NetLines is additions minus deletions
	NetLines int64 `parquet:"net_lines,snappy"`

	// ActiveDays is the number of distinct UTC days with commits
	ActiveDays int32 `parquet:"active_days,snappy"`

	// FilesTouched is the number of distinct files the author changed
	FilesTouched int32 `parquet:"files_touched,snappy"`

	// FirstCommit is the author's earliest commit timestamp (nullable)
	FirstCommit *time.Time `parquet:"first_commit,optional,snappy"`

	// LastCommit is the author's latest commit timestamp (nullable)
	LastCommit *time.Time `parquet:"last_commit,optional,snappy"`
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the AnalysisRun struct tags
	writer := parquet.NewGenericWriter[AnalysisRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteAuthorStatsParquet writes a slice of AuthorStatsRow structs to a Parquet file.
func WriteAuthorStatsParquet(data []AuthorStatsRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the AuthorStatsRow struct tags
	writer := parquet.NewGenericWriter[AuthorStatsRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertAnalysisRunRecords converts schema.AnalysisRunRecord to AnalysisRun for Parquet export.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, record := range records {
		result[i] = AnalysisRun{
			AnalysisID:    record.AnalysisID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalAuthors:  int32(record.TotalAuthors),
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertAuthorStatsRecords converts schema.AuthorStatsRecord to AuthorStatsRow for Parquet export.
func ConvertAuthorStatsRecords(records []schema.AuthorStatsRecord) []AuthorStatsRow {
	result := make([]AuthorStatsRow, len(records))
	for i, record := range records {
		result[i] = AuthorStatsRow{
			AnalysisID:   record.AnalysisID,
			AuthorKey:    record.AuthorKey,
			DisplayName:  record.DisplayName,
			CommitCount:  record.CommitCount,
			Additions:    record.Additions,
			Deletions:    record.Deletions,
			NetLines:     record.NetLines,
			ActiveDays:   record.ActiveDays,
			FilesTouched: record.FilesTouched,
			FirstCommit:  record.FirstCommit,
			LastCommit:   record.LastCommit,
		}
	}
	return result
}
