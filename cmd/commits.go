package cmd

import (
	"github.com/gamsoft/branchlens/core"
	"github.com/gamsoft/branchlens/internal/contract"
	"github.com/spf13/cobra"
)

// commitsCmd lists branch-exclusive commits.
var commitsCmd = &cobra.Command{
	Use:   "commits <repo-url>",
	Short: "List the commits that belong to a branch's own history.",
	Long: `List a branch's exclusive commits, newest first.

A commit is exclusive when it appears on the branch before the first commit
shared with the default branch. Merged or inherited history is excluded, so
the listing shows exactly what the branch itself contributed.

Examples:
  # List a feature branch's own commits
  branchlens commits octocat/hello-world --branch feature/login

  # Include diff stats per commit
  branchlens commits octocat/hello-world -b dev --details

  # Export the listing as JSON
  branchlens commits octocat/hello-world -b dev --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBranchCommits(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run commits analysis", err)
		}
	},
}
