package schema

import "time"

// AnalysisRunRecord represents a row from the branchlens_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID    int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int64
	TotalAuthors  int
	ConfigParams  *string
}

// AuthorStatsRecord represents a row from the branchlens_author_stats table.
type AuthorStatsRecord struct {
	AnalysisID   int64
	AuthorKey    string
	DisplayName  string
	CommitCount  int32
	Additions    int64
	Deletions    int64
	NetLines     int64
	ActiveDays   int32
	FilesTouched int32
	FirstCommit  *time.Time
	LastCommit   *time.Time
}
