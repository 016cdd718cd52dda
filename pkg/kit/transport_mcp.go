package kit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPTool binds an Endpoint to an MCP tool definition. Decode turns the tool
// arguments into the request value the Endpoint expects.
type MCPTool struct {
	Tool     mcp.Tool
	Endpoint Endpoint
	Decode   func(args map[string]any) (any, error)
}

// RegisterMCPTools adds every tool to srv. Calls made without a transport in
// their context are tagged "mcp". Endpoint errors become tool errors
// (IsError results), not JSON-RPC errors.
func RegisterMCPTools(srv *server.MCPServer, tools ...MCPTool) {
	for _, t := range tools {
		srv.AddTool(t.Tool, mcpHandler(t))
	}
}

func mcpHandler(t MCPTool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		request, err := t.Decode(req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if _, ok := ctx.Value(TransportKey).(string); !ok {
			ctx = WithTransport(ctx, "mcp")
		}

		resp, err := t.Endpoint(ctx, request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		data, err := json.Marshal(resp)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshal: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}
