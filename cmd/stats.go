package cmd

import (
	"github.com/huangsam/gitlocalstats/core"
	"github.com/spf13/cobra"
)

// statsCmd renders the contribution heatmap for one author.
var statsCmd = &cobra.Command{
	Use:   "stats [email]",
	Short: "Draw a heatmap of one author's commits over the last six months",
	Long: `Collect the commits of one author across every remembered repository and draw them
as a calendar heatmap covering the last 183 days.

The author may be given as an argument, with --email, with GITLOCALSTATS_EMAIL or
in the config file. Repositories that fail to read are reported and skipped.

Examples:
  # Heatmap for one email
  gitlocalstats stats me@example.com

  # Per-repository breakdown as well
  gitlocalstats stats me@example.com --detail

  # Daily counts as CSV
  gitlocalstats stats me@example.com --output csv --output-file days.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: statsSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteStats(rootCtx, cfg, cacheManager)
	},
}
