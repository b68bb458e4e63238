package core

import (
	"testing"
	"time"

	"github.com/gamsoft/branchlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExclusiveCommitsFeatureBranch(t *testing.T) {
	// Feature branch created from the default branch: the exclusive set is
	// the strict prefix before the first shared commit.
	defaultBranch := []schema.CommitRecord{record("m2"), record("m1")}
	target := []schema.CommitRecord{record("f2"), record("f1"), record("m2"), record("m1")}

	lineage := BuildLineageSet(defaultBranch, true)
	exclusive, confirmed := ExclusiveCommits(target, lineage)

	require.Len(t, exclusive, 2)
	assert.Equal(t, "f2", exclusive[0].SHA)
	assert.Equal(t, "f1", exclusive[1].SHA)
	assert.True(t, confirmed)
}

func TestExclusiveCommitsDefaultBranchAgainstItself(t *testing.T) {
	commits := []schema.CommitRecord{record("m2"), record("m1")}
	lineage := BuildLineageSet(commits, true)

	exclusive, confirmed := ExclusiveCommits(commits, lineage)
	assert.Empty(t, exclusive)
	assert.True(t, confirmed)
}

func TestExclusiveCommitsNoIntersection(t *testing.T) {
	// The window never reaches a shared commit: the whole sequence comes
	// back, but the lineage boundary is unconfirmed.
	defaultBranch := []schema.CommitRecord{record("m9"), record("m8")}
	target := []schema.CommitRecord{record("f3"), record("f2"), record("f1")}

	exclusive, confirmed := ExclusiveCommits(target, BuildLineageSet(defaultBranch, false))
	assert.Len(t, exclusive, 3)
	assert.False(t, confirmed)
}

func TestExclusiveCommitsEmptyTarget(t *testing.T) {
	exclusive, confirmed := ExclusiveCommits(nil, BuildLineageSet(nil, true))
	assert.Empty(t, exclusive)
	assert.True(t, confirmed)
}

func TestExclusiveCommitsDoesNotAliasInput(t *testing.T) {
	defaultBranch := []schema.CommitRecord{record("m1")}
	target := []schema.CommitRecord{record("f1"), record("m1")}

	exclusive, _ := ExclusiveCommits(target, BuildLineageSet(defaultBranch, true))
	require.Len(t, exclusive, 1)
	exclusive[0].SHA = "mutated"
	assert.Equal(t, "f1", target[0].SHA)
}

func TestValidateSequence(t *testing.T) {
	ts := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	base := schema.CommitRecord{SHA: "abc", AuthorLogin: "octocat", Timestamp: ts}

	t.Run("identical duplicates tolerated", func(t *testing.T) {
		assert.NoError(t, ValidateSequence([]schema.CommitRecord{base, base}))
	})

	t.Run("divergent duplicates rejected", func(t *testing.T) {
		divergent := base
		divergent.AuthorLogin = "hubot"
		err := ValidateSequence([]schema.CommitRecord{base, divergent})
		assert.ErrorIs(t, err, ErrDivergentCommit)
	})

	t.Run("empty shas ignored", func(t *testing.T) {
		assert.NoError(t, ValidateSequence([]schema.CommitRecord{{}, {}}))
	})
}
