package tools

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// textResult wraps a JSON-marshalled payload in a single text content item.
func textResult(payload interface{}) *mcp.CallToolResult {
	return rawResult(MarshalJSON(payload))
}

// rawResult wraps pre-rendered text, typically a raw upstream body.
func rawResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// errorResult converts a handler failure into the uniform error envelope.
func errorResult(err error) *mcp.CallToolResult {
	return errorResultText(err.Error())
}

func errorResultText(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: message},
		},
		IsError: true,
	}
}

// MarshalJSON renders v as JSON, falling back to an error object rather
// than returning an empty content item.
func MarshalJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return `{"error":"failed to marshal result"}`
	}
	return string(data)
}
