// Package schema has configs, models and shared constants for all parts of branchlens.
package schema

import (
	"sort"
	"time"
)

// FileChange represents a single file touched by a commit, as reported by the
// commit source. Additions and deletions are line counts for that file only.
type FileChange struct {
	Path      string     `json:"path"`
	Additions int        `json:"additions"`
	Deletions int        `json:"deletions"`
	Change    ChangeType `json:"change"`
}

// CommitRecord represents a single commit fetched from the commit source.
// Records are treated as immutable once fetched; the core pipeline never
// mutates them in place.
type CommitRecord struct {
	SHA         string       `json:"sha"`
	Parents     []string     `json:"parents,omitempty"`
	AuthorLogin string       `json:"author_login"`
	AuthorName  string       `json:"author_name"`
	Message     string       `json:"message"`
	Timestamp   time.Time    `json:"timestamp"`
	Additions   int          `json:"additions"`
	Deletions   int          `json:"deletions"`
	Files       []FileChange `json:"files,omitempty"`
}

// NetLines returns the net line delta for the commit.
func (c *CommitRecord) NetLines() int {
	return c.Additions - c.Deletions
}

// IsMalformed reports whether the record is missing fields every valid commit
// must carry. Malformed records are skipped and counted, never fatal.
func (c *CommitRecord) IsMalformed() bool {
	return c.SHA == "" || c.Timestamp.IsZero()
}

// RepositoryInfo holds the repository metadata needed to drive an analysis.
type RepositoryInfo struct {
	Owner         string    `json:"owner"`
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	DefaultBranch string    `json:"default_branch"`
	Language      string    `json:"language,omitempty"`
	Stars         int       `json:"stars"`
	PushedAt      time.Time `json:"pushed_at"`
}

// FileStat accumulates one author's activity against a single file across
// their branch-exclusive commits.
type FileStat struct {
	Touches   int `json:"touches"`
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
}

// Churn returns the total line churn (additions plus deletions) for the file.
func (s *FileStat) Churn() int {
	return s.Additions + s.Deletions
}

// FileTouch is one entry in a per-author file ranking.
type FileTouch struct {
	Path      string `json:"path"`
	Touches   int    `json:"touches"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// Churn returns the total line churn (additions plus deletions) for the file.
func (t FileTouch) Churn() int {
	return t.Additions + t.Deletions
}

// AuthorAggregate accumulates per-author statistics over a sequence of
// branch-exclusive commits.
type AuthorAggregate struct {
	Key         string    `json:"key"`
	Login       string    `json:"login,omitempty"`
	DisplayName string    `json:"display_name"`
	Commits     int       `json:"commits"`
	Additions   int       `json:"additions"`
	Deletions   int       `json:"deletions"`
	NetLines    int       `json:"net_lines"`
	FirstCommit time.Time `json:"first_commit"`
	LastCommit  time.Time `json:"last_commit"`
	ActiveDays  int       `json:"active_days"`

	// FileTouches maps file path to the author's accumulated activity against
	// it across their exclusive commits. Only populated when commit details
	// were fetched.
	FileTouches map[string]*FileStat `json:"file_touches,omitempty"`

	// CommitSHAs preserves the author's commits in adapter order (newest first).
	CommitSHAs []string `json:"commit_shas,omitempty"`
}

// TopFiles returns the author's most-touched files, ranked by touch count
// descending with path ascending as the tiebreaker so output is deterministic.
// A limit <= 0 returns all files.
func (a *AuthorAggregate) TopFiles(limit int) []FileTouch {
	touches := a.fileTouchList()
	sort.Slice(touches, func(i, j int) bool {
		if touches[i].Touches != touches[j].Touches {
			return touches[i].Touches > touches[j].Touches
		}
		return touches[i].Path < touches[j].Path
	})
	return limitTouches(touches, limit)
}

// TopFilesByChurn returns the author's files ranked by line churn descending
// with path ascending as the tiebreaker. A limit <= 0 returns all files.
func (a *AuthorAggregate) TopFilesByChurn(limit int) []FileTouch {
	touches := a.fileTouchList()
	sort.Slice(touches, func(i, j int) bool {
		if touches[i].Churn() != touches[j].Churn() {
			return touches[i].Churn() > touches[j].Churn()
		}
		return touches[i].Path < touches[j].Path
	})
	return limitTouches(touches, limit)
}

func (a *AuthorAggregate) fileTouchList() []FileTouch {
	touches := make([]FileTouch, 0, len(a.FileTouches))
	for path, stat := range a.FileTouches {
		touches = append(touches, FileTouch{
			Path:      path,
			Touches:   stat.Touches,
			Additions: stat.Additions,
			Deletions: stat.Deletions,
		})
	}
	return touches
}

func limitTouches(touches []FileTouch, limit int) []FileTouch {
	if limit > 0 && len(touches) > limit {
		touches = touches[:limit]
	}
	return touches
}

// BranchAnalysis is the full result of one attribution run. Each run builds a
// fresh value; results are never shared or mutated across requests.
type BranchAnalysis struct {
	Owner         string `json:"owner"`
	Repo          string `json:"repo"`
	Branch        string `json:"branch"`
	DefaultBranch string `json:"default_branch"`

	// Exclusive holds the branch-exclusive commits, newest first.
	Exclusive []CommitRecord `json:"exclusive"`

	// Authors maps canonical author key to its aggregate.
	Authors map[string]*AuthorAggregate `json:"authors"`

	// AuthorKeys orders Authors by commit count descending, key ascending.
	AuthorKeys []string `json:"author_keys"`

	// LineageConfirmed is false when the scan exhausted the fetched window
	// without meeting the default branch lineage, so the exclusive set may
	// still include inherited commits.
	LineageConfirmed bool `json:"lineage_confirmed"`

	// InputComplete is false when pagination caps truncated either the target
	// or the default branch history.
	InputComplete bool `json:"input_complete"`

	SkippedMalformed  int       `json:"skipped_malformed"`
	UnresolvedAuthors int       `json:"unresolved_authors"`
	AnalyzedAt        time.Time `json:"analyzed_at"`
}

// RankedAuthors returns the aggregates in deterministic rank order.
func (b *BranchAnalysis) RankedAuthors() []*AuthorAggregate {
	ranked := make([]*AuthorAggregate, 0, len(b.AuthorKeys))
	for _, key := range b.AuthorKeys {
		ranked = append(ranked, b.Authors[key])
	}
	return ranked
}

// TotalAdditions sums line additions across all aggregated authors.
func (b *BranchAnalysis) TotalAdditions() int {
	total := 0
	for _, a := range b.Authors {
		total += a.Additions
	}
	return total
}

// TotalDeletions sums line deletions across all aggregated authors.
func (b *BranchAnalysis) TotalDeletions() int {
	total := 0
	for _, a := range b.Authors {
		total += a.Deletions
	}
	return total
}
