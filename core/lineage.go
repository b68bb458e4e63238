package core

import "github.com/gamsoft/branchlens/schema"

// LineageSet is an O(1) membership index over the default branch's commit
// identifiers. It is built once per analysis and never mutated afterwards.
type LineageSet struct {
	members map[string]struct{}

	// Complete is false when the default branch history was truncated by
	// pagination, so a miss against this set is not conclusive.
	Complete bool
}

// BuildLineageSet indexes the default branch's commit sequence. The input
// slice is not retained or mutated; an empty sequence yields an empty set.
func BuildLineageSet(records []schema.CommitRecord, complete bool) *LineageSet {
	members := make(map[string]struct{}, len(records))
	for i := range records {
		if records[i].SHA == "" {
			continue
		}
		members[records[i].SHA] = struct{}{}
	}
	return &LineageSet{members: members, Complete: complete}
}

// Contains reports whether the SHA belongs to the default branch lineage.
func (s *LineageSet) Contains(sha string) bool {
	_, ok := s.members[sha]
	return ok
}

// Size returns the number of distinct commits in the lineage.
func (s *LineageSet) Size() int {
	return len(s.members)
}
