package cmd

import (
	"github.com/spf13/cobra"

	"github.com/patternagent/fabric-agent/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the fabric tool over the Model Context Protocol (stdio)",
	Long: `Start an MCP server exposing the fabric tool, so AI assistants can run
Fabric patterns as isolated subagents. Communicates via JSON-RPC over stdio.

Use 'fabric-agent mcp register' to add the server to host configurations
(Claude Desktop, Claude Code, Cursor, VS Code).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dispatcher, cleanup, err := buildDispatcher()
		if err != nil {
			return err
		}
		defer cleanup()

		server := mcp.NewServer(dispatcher, GetVersion())
		return server.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
