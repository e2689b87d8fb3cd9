package cmd

import (
	"github.com/huangsam/gitlocalstats/core"
	"github.com/spf13/cobra"
)

// reposCmd lists the remembered repositories.
var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "List the repositories stats will read",
	Long: `Print every repository in the repository list and whether it still exists on disk.

Use --prune to drop the entries that no longer exist.

Examples:
  gitlocalstats repos
  gitlocalstats repos --prune`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteRepos(rootCtx, cfg)
	},
}
