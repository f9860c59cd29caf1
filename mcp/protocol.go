package mcp

import "encoding/json"

// JSON-RPC protocol constants used by the tool transport layer.
const (
	JSONRPCVersion = "2.0"

	// protocolVersion is the MCP revision this server speaks.
	protocolVersion = "2024-11-05"
)

// Request represents a JSON-RPC 2.0 request. A nil ID marks a notification
// that expects no response.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response represents a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string       `json:"jsonrpc"`
	ID      any          `json:"id"`
	Result  any          `json:"result,omitempty"`
	Error   *ErrorObject `json:"error,omitempty"`
}

// ErrorObject represents a JSON-RPC 2.0 error payload.
type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// TextContent is the content item shape returned by tools/call.
type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// SuccessResponse builds a success response with the provided result payload.
func SuccessResponse(id, result any) Response {
	return Response{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Result:  result,
	}
}

// ErrorResponse builds a response containing the supplied error object.
func ErrorResponse(id any, code int, message string) Response {
	return Response{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Error: &ErrorObject{
			Code:    code,
			Message: message,
		},
	}
}

// textResult wraps plain text as a tools/call result. The tool channel
// reports every outcome this way, including failures.
func textResult(text string) map[string]any {
	return map[string]any{
		"content": []TextContent{{Type: "text", Text: text}},
	}
}
