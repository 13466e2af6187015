package server

import (
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/neuromux/neuromux/internal/tools"
)

// toCallToolResult converts a kernel result into MCP content blocks: the main
// content first, then the continuation offer as a short summary block.
func toCallToolResult(result *tools.Result) *mcp.CallToolResult {
	content := []mcp.Content{&mcp.TextContent{Text: result.Content}}

	if offer := result.ContinuationOffer; offer != nil {
		content = append(content, &mcp.TextContent{Text: renderOffer(offer)})
	}

	return &mcp.CallToolResult{Content: content}
}

func renderOffer(offer *tools.ContinuationOffer) string {
	var sb strings.Builder

	fmt.Fprintf(&sb,
		"You can continue this conversation by passing continuation_id %s (%d exchanges remaining, %d tokens used so far).",
		offer.ThreadID, offer.RemainingTurns, offer.TotalTokens)

	if len(offer.Suggestions) > 0 {
		sb.WriteString("\nSuggested follow-ups:")

		for _, s := range offer.Suggestions {
			sb.WriteString("\n- " + s)
		}
	}

	return sb.String()
}

// errorResult turns a kernel error into a tool-level error result. Provider
// errors already carry their kind and retry hints in the message; the tool
// name anchors the failure for clients running several tools.
func errorResult(tool string, err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("%s failed: %v", tool, err)}},
	}
}
