package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all similarity-d MCP tools with the server.
func RegisterTools(s *server.MCPServer) {
	handlers := NewHandlerSet(NewDependencies())

	s.AddTool(mcp.NewTool("find_similar_functions",
		mcp.WithDescription("Detect structurally similar Go functions using normalized syntax trees and tree edit distance"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to Go code (file or directory) to scan")),
		mcp.WithNumber("threshold",
			mcp.Description("Minimum similarity threshold 0.0-1.0 (default: 0.8)")),
		mcp.WithNumber("min_lines",
			mcp.Description("Minimum function line count to consider (default: 5)")),
		mcp.WithNumber("min_tokens",
			mcp.Description("Minimum canonical tree node count to consider (default: 20)")),
		mcp.WithBoolean("cross_file",
			mcp.Description("Allow matches spanning two different files (default: true)")),
		mcp.WithBoolean("collect_nested",
			mcp.Description("Collect nested function literals (default: true)")),
	), handlers.HandleFindSimilarFunctions)

	s.AddTool(mcp.NewTool("compare_functions",
		mcp.WithDescription("Compute the structural similarity score between two Go function snippets"),
		mcp.WithString("function1",
			mcp.Required(),
			mcp.Description("First Go function declaration")),
		mcp.WithString("function2",
			mcp.Required(),
			mcp.Description("Second Go function declaration")),
		mcp.WithBoolean("size_penalty",
			mcp.Description("Penalize size differences between the two trees (default: true)")),
	), handlers.HandleCompareFunctions)
}
