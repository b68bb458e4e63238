package schema

import "time"

// EnrichedAuthor is the flattened, ranked view of an author aggregate used by
// JSON output and MCP tool responses.
type EnrichedAuthor struct {
	Rank        int           `json:"rank"`
	Key         string        `json:"key"`
	Login       string        `json:"login,omitempty"`
	DisplayName string        `json:"display_name"`
	Commits     int           `json:"commits"`
	Additions   int           `json:"additions"`
	Deletions   int           `json:"deletions"`
	NetLines    int           `json:"net_lines"`
	ActiveDays  int           `json:"active_days"`
	FirstCommit time.Time     `json:"first_commit"`
	LastCommit  time.Time     `json:"last_commit"`
	Activity    ActivityLevel `json:"activity"`
	TopFiles    []FileTouch   `json:"top_files,omitempty"`
}

// AuthorsRenderModel carries everything the author writers need, already
// ranked and limited.
type AuthorsRenderModel struct {
	Owner             string           `json:"owner"`
	Repo              string           `json:"repo"`
	Branch            string           `json:"branch"`
	DefaultBranch     string           `json:"default_branch"`
	Authors           []EnrichedAuthor `json:"authors"`
	TotalCommits      int              `json:"total_commits"`
	TotalAdditions    int              `json:"total_additions"`
	TotalDeletions    int              `json:"total_deletions"`
	LineageConfirmed  bool             `json:"lineage_confirmed"`
	InputComplete     bool             `json:"input_complete"`
	SkippedMalformed  int              `json:"skipped_malformed"`
	UnresolvedAuthors int              `json:"unresolved_authors"`
}

// EnrichAuthors builds the ranked render model from an analysis result.
// fileLimit bounds the per-author file ranking; <= 0 omits it.
func EnrichAuthors(analysis *BranchAnalysis, limit, fileLimit int) *AuthorsRenderModel {
	model := &AuthorsRenderModel{
		Owner:             analysis.Owner,
		Repo:              analysis.Repo,
		Branch:            analysis.Branch,
		DefaultBranch:     analysis.DefaultBranch,
		TotalCommits:      len(analysis.Exclusive),
		TotalAdditions:    analysis.TotalAdditions(),
		TotalDeletions:    analysis.TotalDeletions(),
		LineageConfirmed:  analysis.LineageConfirmed,
		InputComplete:     analysis.InputComplete,
		SkippedMalformed:  analysis.SkippedMalformed,
		UnresolvedAuthors: analysis.UnresolvedAuthors,
	}

	ranked := analysis.RankedAuthors()
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	model.Authors = make([]EnrichedAuthor, 0, len(ranked))
	for i, agg := range ranked {
		enriched := EnrichedAuthor{
			Rank:        i + 1,
			Key:         agg.Key,
			Login:       agg.Login,
			DisplayName: agg.DisplayName,
			Commits:     agg.Commits,
			Additions:   agg.Additions,
			Deletions:   agg.Deletions,
			NetLines:    agg.NetLines,
			ActiveDays:  agg.ActiveDays,
			FirstCommit: agg.FirstCommit,
			LastCommit:  agg.LastCommit,
			Activity:    ActivityFor(agg.LastCommit, time.Now()),
		}
		if fileLimit > 0 {
			enriched.TopFiles = agg.TopFiles(fileLimit)
		}
		model.Authors = append(model.Authors, enriched)
	}
	return model
}

// ActivityFor classifies an author by the age of their latest commit.
func ActivityFor(lastCommit, now time.Time) ActivityLevel {
	if lastCommit.IsZero() {
		return UnknownLevel
	}
	age := now.Sub(lastCommit)
	switch {
	case age <= 30*24*time.Hour:
		return ActiveLevel
	case age <= 90*24*time.Hour:
		return QuietLevel
	default:
		return DormantLevel
	}
}
