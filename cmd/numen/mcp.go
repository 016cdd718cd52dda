package main

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hazyhaar/numen/pkg/kit"
)

func mcpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the MCP tools over stdio",
		Long: `Serve the numen tools as an MCP server speaking JSON-RPC on stdin and
stdout. Logs go to stderr.

MCP client configuration:
  {
    "mcpServers": {
      "numen": {"command": "/path/to/numen", "args": ["mcp"]}
    }
  }`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h := a.newHost(prometheus.NewRegistry())
			stdio := server.NewStdioServer(h.mcp)
			stdio.SetContextFunc(func(ctx context.Context) context.Context {
				return kit.WithTransport(ctx, "mcp_stdio")
			})
			a.logger.Debug("mcp stdio server started", "version", version)
			return stdio.Listen(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
