package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server exposes the parse_character and import_character tools and the
kokoro://characters resources. By default it communicates over stdio using
JSON-RPC.

Use --port to start an HTTP server instead. Use --allow-paths to let
tools read card files from this machine by path.

Examples:
  # Stdio mode (default)
  kokoro mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  kokoro mcp serve --port 8080

Desktop client configuration:
  {
    "mcpServers": {
      "kokoro": {
        "command": "/path/to/kokoro",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().Bool("allow-paths", false, "allow tools to read local card files by path")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	allowPaths, err := cmd.Flags().GetBool("allow-paths")
	if err != nil {
		return fmt.Errorf("getting allow-paths flag: %w", err)
	}

	mcp.Version = version
	ports := &mcp.Ports{
		Characters: characterService,
		AllowPaths: allowPaths,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
