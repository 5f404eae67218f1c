package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lempiji/similarity-d/domain"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies()
	}
	return &HandlerSet{deps: deps}
}

// HandleFindSimilarFunctions handles the find_similar_functions tool.
func (h *HandlerSet) HandleFindSimilarFunctions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	req := domain.DefaultScanRequest()
	req.Paths = []string{path}

	if threshold, ok := args["threshold"].(float64); ok {
		req.Threshold = threshold
	}
	if minLines, ok := args["min_lines"].(float64); ok {
		req.MinLines = int(minLines)
	}
	if minTokens, ok := args["min_tokens"].(float64); ok {
		req.MinTokens = int(minTokens)
	}
	if crossFile, ok := args["cross_file"].(bool); ok {
		req.CrossFile = crossFile
	}
	if collectNested, ok := args["collect_nested"].(bool); ok {
		req.CollectNested = collectNested
	}

	response, err := h.deps.BuildScanUseCase().ExecuteAndReturn(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	// The request echo carries writers and flags meaningless to clients.
	response.Request = nil

	payload, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

// HandleCompareFunctions handles the compare_functions tool.
func (h *HandlerSet) HandleCompareFunctions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	function1, ok := args["function1"].(string)
	if !ok {
		return mcp.NewToolResultError("function1 parameter is required and must be a string"), nil
	}
	function2, ok := args["function2"].(string)
	if !ok {
		return mcp.NewToolResultError("function2 parameter is required and must be a string"), nil
	}

	sizePenalty := true
	if v, ok := args["size_penalty"].(bool); ok {
		sizePenalty = v
	}

	similarity, err := h.deps.Scanner().ComputeSimilarity(ctx, function1, function2, sizePenalty)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	payload, err := json.Marshal(map[string]float64{"similarity": similarity})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
