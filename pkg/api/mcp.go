package api

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/numen/pkg/kit"
	"github.com/hazyhaar/numen/pkg/numerology"
)

// NewMCPServer returns an MCP server exposing every endpoint as a tool.
func NewMCPServer(eps *Endpoints, version string) *server.MCPServer {
	srv := server.NewMCPServer("numen", version, server.WithToolCapabilities(false))
	RegisterMCPTools(srv, eps)
	return srv
}

// RegisterMCPTools registers the numen MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, eps *Endpoints) {
	kit.RegisterMCPTools(srv,
		kit.MCPTool{
			Tool: mcp.NewTool("name_signature",
				mcp.WithDescription("Compute the numerological expression, soul urge and personality numbers of a name. With a birth date, also returns life path and maturity."),
				mcp.WithString("name", mcp.Required(), mcp.Description("The name, e.g. \"Ada Lovelace\"")),
				mcp.WithString("birth_date", mcp.Description("Optional birth date, e.g. 1815-12-10")),
			),
			Endpoint: eps.NameSignature,
			Decode:   decodeName,
		},
		kit.MCPTool{
			Tool: mcp.NewTool("name_batch",
				mcp.WithDescription("Compute the numerological signature of several names at once."),
				mcp.WithString("names", mcp.Required(), mcp.Description("Comma-separated list of names")),
			),
			Endpoint: eps.NameBatch,
			Decode: func(args map[string]any) (any, error) {
				names, _ := args["names"].(string)
				return &NameBatchRequest{Names: SplitList(names)}, nil
			},
		},
		kit.MCPTool{
			Tool: mcp.NewTool("date_signature",
				mcp.WithDescription("Compute life path, attitude, generation and day of birth numbers of a date."),
				mcp.WithString("date", mcp.Required(), mcp.Description("The date, e.g. 2023-12-10")),
			),
			Endpoint: eps.DateSignature,
			Decode: func(args map[string]any) (any, error) {
				s, _ := args["date"].(string)
				date, err := ParseDate(s)
				if err != nil {
					return nil, err
				}
				return &DateRequest{Date: date}, nil
			},
		},
		kit.MCPTool{
			Tool: mcp.NewTool("find_dates",
				mcp.WithDescription("List the dates between start and end (inclusive) with their numerological values, optionally only those with one of the given life paths."),
				mcp.WithString("start", mcp.Required(), mcp.Description("First date of the range")),
				mcp.WithString("end", mcp.Required(), mcp.Description("Last date of the range")),
				mcp.WithString("life_paths", mcp.Description("Comma-separated life path filter (e.g. 11,22)")),
			),
			Endpoint: eps.DateRange,
			Decode:   decodeDateRange,
		},
		kit.MCPTool{
			Tool: mcp.NewTool("search_words",
				mcp.WithDescription("Generate words of alternating vowels and consonants whose numerological values match the given targets. At least one target is required."),
				mcp.WithNumber("limit", mcp.Required(), mcp.Description("Maximum number of words to return")),
				mcp.WithNumber("min_letters", mcp.Description("Shortest word length (default 1)")),
				mcp.WithNumber("max_letters", mcp.Required(), mcp.Description("Longest word length")),
				mcp.WithNumber("expression", mcp.Description("Required expression number")),
				mcp.WithNumber("soul_urge", mcp.Description("Required soul urge number")),
				mcp.WithNumber("personality", mcp.Description("Required personality number")),
			),
			Endpoint: eps.SearchWords,
			Decode:   decodeSearch,
		},
		kit.MCPTool{
			Tool: mcp.NewTool("reduce_number",
				mcp.WithDescription("Reduce a number to a single digit, keeping the master numbers 11 and 22 unless ignore_masters is set."),
				mcp.WithNumber("number", mcp.Required(), mcp.Description("A non-negative integer")),
				mcp.WithBoolean("ignore_masters", mcp.Description("Reduce master numbers too")),
			),
			Endpoint: eps.ReduceNumber,
			Decode: func(args map[string]any) (any, error) {
				n, ok := args["number"].(float64)
				if !ok {
					return nil, fmt.Errorf("number is required")
				}
				ignore, _ := args["ignore_masters"].(bool)
				return &ReduceRequest{Number: n, IgnoreMasters: ignore}, nil
			},
		},
	)
}

func decodeName(args map[string]any) (any, error) {
	name, _ := args["name"].(string)
	birth, _ := args["birth_date"].(string)
	date, err := ParseOptionalDate(birth)
	if err != nil {
		return nil, err
	}
	return &NameRequest{Name: name, BirthDate: date}, nil
}

func decodeDateRange(args map[string]any) (any, error) {
	startStr, _ := args["start"].(string)
	endStr, _ := args["end"].(string)
	start, err := ParseDate(startStr)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(endStr)
	if err != nil {
		return nil, err
	}
	lp, _ := args["life_paths"].(string)
	lifePaths, err := ParseIntList(lp)
	if err != nil {
		return nil, err
	}
	return &DateRangeRequest{Start: start, End: end, LifePaths: lifePaths}, nil
}

func decodeSearch(args map[string]any) (any, error) {
	intArg := func(key string, def int) (int, error) {
		v, ok := args[key]
		if !ok || v == nil {
			return def, nil
		}
		f, ok := v.(float64)
		if !ok {
			return 0, fmt.Errorf("%s must be a number", key)
		}
		return numerology.Integer(f)
	}

	req := &SearchRequest{Target: map[string]int{}}
	var err error
	if req.Limit, err = intArg("limit", 0); err != nil {
		return nil, err
	}
	if req.MinLetters, err = intArg("min_letters", 1); err != nil {
		return nil, err
	}
	if req.MaxLetters, err = intArg("max_letters", 0); err != nil {
		return nil, err
	}
	for _, attr := range numerology.Attributes {
		key := string(attr)
		if v, ok := args[key]; !ok || v == nil {
			continue
		}
		v, err := intArg(key, 0)
		if err != nil {
			return nil, err
		}
		req.Target[key] = v
	}
	if len(req.Target) == 0 {
		return nil, fmt.Errorf("set at least one of %s", strings.Join(attributeNames(), ", "))
	}
	return req, nil
}

func attributeNames() []string {
	names := make([]string, len(numerology.Attributes))
	for i, a := range numerology.Attributes {
		names[i] = string(a)
	}
	return names
}
