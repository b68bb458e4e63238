package ghsource

import (
	"strings"

	"github.com/gamsoft/branchlens/schema"
	"github.com/google/go-github/v57/github"
)

// mapRepository converts GitHub repository metadata into the schema model.
func mapRepository(owner, repo string, r *github.Repository) *schema.RepositoryInfo {
	return &schema.RepositoryInfo{
		Owner:         owner,
		Name:          repo,
		FullName:      r.GetFullName(),
		DefaultBranch: r.GetDefaultBranch(),
		Language:      r.GetLanguage(),
		Stars:         r.GetStargazersCount(),
		PushedAt:      r.GetPushedAt().Time.UTC(),
	}
}

// mapCommit converts a GitHub list-commits entry into a schema record.
// The author login comes from the linked GitHub account when present; the
// display name comes from the underlying git signature. Either can be empty.
func mapCommit(rc *github.RepositoryCommit) schema.CommitRecord {
	record := schema.CommitRecord{
		SHA:         rc.GetSHA(),
		AuthorLogin: rc.GetAuthor().GetLogin(),
		AuthorName:  rc.GetCommit().GetAuthor().GetName(),
		Message:     firstLine(rc.GetCommit().GetMessage()),
	}

	if date := rc.GetCommit().GetAuthor().GetDate(); !date.IsZero() {
		record.Timestamp = date.Time.UTC()
	}

	for _, parent := range rc.Parents {
		record.Parents = append(record.Parents, parent.GetSHA())
	}
	return record
}

// applyCommitDetail copies diff stats from a get-commit response onto an
// already-mapped record.
func applyCommitDetail(record *schema.CommitRecord, detail *github.RepositoryCommit) {
	record.Additions = detail.GetStats().GetAdditions()
	record.Deletions = detail.GetStats().GetDeletions()

	for _, f := range detail.Files {
		record.Files = append(record.Files, schema.FileChange{
			Path:      f.GetFilename(),
			Additions: f.GetAdditions(),
			Deletions: f.GetDeletions(),
			Change:    mapChangeType(f.GetStatus()),
		})
	}
}

// mapChangeType normalizes the GitHub file status strings. Unrecognized
// statuses (e.g. "copied", "changed") fall back to modified.
func mapChangeType(status string) schema.ChangeType {
	switch status {
	case "added":
		return schema.AddedChange
	case "removed":
		return schema.RemovedChange
	case "renamed":
		return schema.RenamedChange
	default:
		return schema.ModifiedChange
	}
}

// firstLine returns the subject line of a commit message.
func firstLine(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		return strings.TrimSpace(message[:idx])
	}
	return strings.TrimSpace(message)
}
