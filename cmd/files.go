package cmd

import (
	"github.com/gamsoft/branchlens/core"
	"github.com/gamsoft/branchlens/internal/contract"
	"github.com/spf13/cobra"
)

// filesCmd shows which files each author touched on the branch.
var filesCmd = &cobra.Command{
	Use:   "files <repo-url>",
	Short: "Show the files each author touched in exclusive commits.",
	Long: `Rank the files each author touched in the branch's exclusive commits.

Every file is classified by role (Source Code, Testing, Documentation, ...)
so you can see at a glance whether a branch changed production code or just
its scaffolding. This command always fetches per-commit diff stats, which
costs one extra API call per commit.

Examples:
  # See what a feature branch actually changed
  branchlens files octocat/hello-world --branch feature/login

  # Export per-author file detail to CSV
  branchlens files octocat/hello-world -b dev --output csv --output-file files.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBranchFiles(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run files analysis", err)
		}
	},
}
