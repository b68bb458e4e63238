// Package agg has aggregation logic for branch-exclusive commit data.
package agg

import (
	"sort"
	"strings"

	"github.com/gamsoft/branchlens/schema"
)

// Result holds the outcome of one aggregation pass.
type Result struct {
	// Authors maps canonical author key to its aggregate.
	Authors map[string]*schema.AuthorAggregate

	// Keys orders Authors by commit count descending, then key ascending,
	// so iteration over identical input always yields identical output.
	Keys []string

	// SkippedMalformed counts records dropped for missing SHA or timestamp.
	SkippedMalformed int

	// UnresolvedAuthors counts commits aggregated under the unknown sentinel.
	UnresolvedAuthors int
}

// CanonicalAuthorKey derives the stable aggregation key for a commit author.
// Precedence: lowercased login, then lowercased trimmed display name, then
// the unknown sentinel. Lowercasing merges identities that differ only in
// casing across commits.
func CanonicalAuthorKey(login, name string) string {
	if login != "" {
		return strings.ToLower(login)
	}
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return strings.ToLower(trimmed)
	}
	return schema.UnknownAuthorKey
}

// AggregateAuthors folds a newest-first exclusive commit sequence into
// per-author aggregates. The input is read-only; every call builds fresh
// state, so repeated runs over the same input are idempotent.
func AggregateAuthors(exclusive []schema.CommitRecord) *Result {
	result := &Result{
		Authors: make(map[string]*schema.AuthorAggregate),
	}
	activeDays := make(map[string]map[string]struct{})

	for i := range exclusive {
		record := &exclusive[i]
		if record.IsMalformed() {
			result.SkippedMalformed++
			continue
		}

		key := CanonicalAuthorKey(record.AuthorLogin, record.AuthorName)
		if key == schema.UnknownAuthorKey {
			result.UnresolvedAuthors++
		}

		agg, ok := result.Authors[key]
		if !ok {
			agg = &schema.AuthorAggregate{
				Key:         key,
				Login:       strings.ToLower(record.AuthorLogin),
				DisplayName: displayNameFor(record, key),
				FileTouches: make(map[string]*schema.FileStat),
			}
			result.Authors[key] = agg
			activeDays[key] = make(map[string]struct{})
		}

		agg.Commits++
		agg.Additions += record.Additions
		agg.Deletions += record.Deletions
		agg.NetLines = agg.Additions - agg.Deletions
		agg.CommitSHAs = append(agg.CommitSHAs, record.SHA)

		ts := record.Timestamp.UTC()
		if agg.FirstCommit.IsZero() || ts.Before(agg.FirstCommit) {
			agg.FirstCommit = ts
		}
		if ts.After(agg.LastCommit) {
			agg.LastCommit = ts
		}
		activeDays[key][ts.Format("2006-01-02")] = struct{}{}

		for _, change := range record.Files {
			stat, ok := agg.FileTouches[change.Path]
			if !ok {
				stat = &schema.FileStat{}
				agg.FileTouches[change.Path] = stat
			}
			stat.Touches++
			stat.Additions += change.Additions
			stat.Deletions += change.Deletions
		}
	}

	for key, days := range activeDays {
		result.Authors[key].ActiveDays = len(days)
	}

	result.Keys = sortedKeys(result.Authors)
	return result
}

// displayNameFor picks the human-readable name for an aggregate. The first
// commit seen for a key wins; casing differences between commits never split
// or rename the bucket.
func displayNameFor(record *schema.CommitRecord, key string) string {
	if name := strings.TrimSpace(record.AuthorName); name != "" {
		return name
	}
	if record.AuthorLogin != "" {
		return record.AuthorLogin
	}
	return key
}

// sortedKeys orders author keys by commit count descending, key ascending.
func sortedKeys(authors map[string]*schema.AuthorAggregate) []string {
	keys := make([]string, 0, len(authors))
	for key := range authors {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		ci, cj := authors[keys[i]].Commits, authors[keys[j]].Commits
		if ci != cj {
			return ci > cj
		}
		return keys[i] < keys[j]
	})
	return keys
}
