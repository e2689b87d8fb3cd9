package cmd

import (
	"github.com/huangsam/gitlocalstats/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the gitlocalstats MCP server",
	Long:  `Launch an MCP server on stdio that lets AI agents read contribution calendars via standard tools.`,
	Args:  cobra.NoArgs,
	// Header logs are suppressed by the server itself since stdio carries the protocol.
	PreRunE: statsSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
