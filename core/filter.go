package core

import (
	"errors"
	"fmt"

	"github.com/gamsoft/branchlens/schema"
)

// ErrDivergentCommit signals an adapter contract violation: two records in
// one fetched sequence share a SHA but disagree on content.
var ErrDivergentCommit = errors.New("divergent records share one commit identifier")

// ExclusiveCommits scans the target branch's newest-first sequence and
// returns the strict prefix before the first commit that already belongs to
// the default branch lineage.
//
// This is a linear walk over the fetched window, not a merge-base
// computation on the commit graph. For branches that were created from the
// default branch and never merged back, both agree; after a merge from the
// default branch into the target, the walk stops at the first inherited
// commit it meets, which can under-attribute older exclusive work. That
// trade-off keeps the filter a single pass over data already in hand.
//
// The returned bool is the lineage confirmation: it is false when the walk
// exhausted the window without meeting the lineage, meaning the boundary was
// never observed and the result may still include inherited commits. An
// empty target yields an empty, confirmed result.
func ExclusiveCommits(target []schema.CommitRecord, lineage *LineageSet) ([]schema.CommitRecord, bool) {
	if len(target) == 0 {
		return []schema.CommitRecord{}, true
	}

	for i := range target {
		if lineage.Contains(target[i].SHA) {
			exclusive := make([]schema.CommitRecord, i)
			copy(exclusive, target[:i])
			return exclusive, true
		}
	}

	// No intersection inside the fetched window.
	exclusive := make([]schema.CommitRecord, len(target))
	copy(exclusive, target)
	return exclusive, false
}

// ValidateSequence enforces the adapter contract that a SHA identifies
// exactly one commit. Duplicate records are tolerated only when identical in
// the fields the pipeline consumes; divergent duplicates are a hard error
// because silently picking one would corrupt attribution.
func ValidateSequence(records []schema.CommitRecord) error {
	seen := make(map[string]int, len(records))
	for i := range records {
		sha := records[i].SHA
		if sha == "" {
			continue
		}
		if j, ok := seen[sha]; ok {
			if !sameCommit(&records[i], &records[j]) {
				return fmt.Errorf("%w: %s", ErrDivergentCommit, sha)
			}
			continue
		}
		seen[sha] = i
	}
	return nil
}

// sameCommit compares the fields attribution depends on.
func sameCommit(a, b *schema.CommitRecord) bool {
	return a.AuthorLogin == b.AuthorLogin &&
		a.AuthorName == b.AuthorName &&
		a.Timestamp.Equal(b.Timestamp) &&
		a.Additions == b.Additions &&
		a.Deletions == b.Deletions
}
