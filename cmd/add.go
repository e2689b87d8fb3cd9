package cmd

import (
	"github.com/huangsam/gitlocalstats/core"
	"github.com/spf13/cobra"
)

// addCmd discovers repositories under a folder and records them in the repository list.
var addCmd = &cobra.Command{
	Use:   "add <folder>",
	Short: "Find Git repositories under a folder and remember them",
	Long: `Recursively scan a folder for Git repositories and append any new ones to the repository list.

Directories named vendor or node_modules are never descended into. Use --skip
to add more names or glob patterns. Repositories already in the list are not
added twice.

Examples:
  # Scan your workspace
  gitlocalstats add ~/code

  # Skip build output as well
  gitlocalstats add ~/code --skip dist,build`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteAdd(rootCtx, cfg)
	},
}
