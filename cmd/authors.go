package cmd

import (
	"github.com/gamsoft/branchlens/core"
	"github.com/gamsoft/branchlens/internal/contract"
	"github.com/spf13/cobra"
)

// authorsCmd performs per-author branch attribution.
var authorsCmd = &cobra.Command{
	Use:   "authors <repo-url>",
	Short: "Show who authored a branch's exclusive commits.",
	Long: `Attribute a branch's own commits to their authors with line-level stats.

Separates the branch's exclusive history from commits inherited off the
default branch, then aggregates per author:
- Commit counts and line additions/deletions
- Active days and first/last commit dates
- An activity label (Active, Quiet, Dormant)

Identities are canonicalized by GitHub login first, falling back to the
commit display name, so case variants merge into one author.

Examples:
  # Attribute a feature branch
  branchlens authors octocat/hello-world --branch feature/login

  # Include per-commit diff stats for line counts
  branchlens authors https://github.com/octocat/hello-world --branch dev --details

  # Export to CSV for reporting
  branchlens authors octocat/hello-world -b dev --output csv --output-file authors.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBranchAuthors(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run authors analysis", err)
		}
	},
}
