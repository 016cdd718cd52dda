package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"github.com/hazyhaar/numen/pkg/mcpquic"
)

func callCmd(a *app) *cobra.Command {
	var (
		addr     string
		verify   bool
		list     bool
		deadline time.Duration
	)
	cmd := &cobra.Command{
		Use:   "call [TOOL [KEY=VALUE...]]",
		Short: "Call a tool on a remote numen server over QUIC",
		Long: `Connect to a numen server running with transport "chassis" and call one
of its MCP tools. Values that parse as numbers or booleans are sent as such,
everything else as strings.`,
		Example: `  numen call --list
  numen call reduce_number number=1994
  numen call search_words limit=5 max_letters=4 expression=1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !list && len(args) == 0 {
				return fmt.Errorf("a tool name or --list is required")
			}
			toolArgs, err := parseToolArgs(args)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), deadline)
			defer cancel()

			c := mcpquic.NewClient(addr, mcpquic.ClientTLSConfig(!verify))
			if err := c.Connect(ctx, "numen-cli", version); err != nil {
				return err
			}
			defer c.Close()
			a.logger.Debug("connected", "addr", addr)

			w := cmd.OutOrStdout()
			if list {
				tools, err := c.ListTools(ctx)
				if err != nil {
					return err
				}
				for _, t := range tools.Tools {
					fmt.Fprintf(w, "%-16s %s\n", t.Name, t.Description)
				}
				return nil
			}

			res, err := c.CallTool(ctx, args[0], toolArgs)
			if err != nil {
				return err
			}
			for _, content := range res.Content {
				if text, ok := content.(mcp.TextContent); ok {
					fmt.Fprintln(w, text.Text)
				}
			}
			if res.IsError {
				return fmt.Errorf("tool %s failed", args[0])
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&addr, "addr", "localhost:8420", "server address (UDP)")
	f.BoolVar(&verify, "verify", false, "verify the server certificate")
	f.BoolVar(&list, "list", false, "list the available tools")
	f.DurationVar(&deadline, "timeout", 30*time.Second, "overall timeout")
	return cmd
}

// parseToolArgs turns KEY=VALUE pairs after the tool name into arguments.
func parseToolArgs(args []string) (map[string]any, error) {
	out := map[string]any{}
	if len(args) < 2 {
		return out, nil
	}
	for _, kv := range args[1:] {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("argument %q is not KEY=VALUE", kv)
		}
		out[key] = parseToolValue(value)
	}
	return out, nil
}

func parseToolValue(s string) any {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
