package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/termfx/unbridge/unraid"
)

// stubExecutor drives the service with canned upstream payloads.
type stubExecutor struct {
	data map[string]any
	err  error
}

func (s *stubExecutor) Execute(_ context.Context, _ string, _ map[string]any) (map[string]any, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

func newTestServer(t *testing.T, exec *stubExecutor) *StdioServer {
	t.Helper()
	service, err := unraid.NewService(exec, unraid.ToolOptions(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return NewStdioServer(service, strings.NewReader(""), &bytes.Buffer{}, zerolog.Nop())
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

// callToolText runs a tools/call request and returns the text payload.
func callToolText(t *testing.T, s *StdioServer, name string) string {
	t.Helper()
	resp := s.handleRequest(Request{
		JSONRPC: JSONRPCVersion,
		ID:      1,
		Method:  "tools/call",
		Params:  mustMarshal(map[string]any{"name": name, "arguments": map[string]any{}}),
	})

	if resp.Error != nil {
		t.Fatalf("tools/call returned protocol error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]any)
	if !ok {
		t.Fatalf("unexpected result type %T", resp.Result)
	}
	content, ok := result["content"].([]TextContent)
	if !ok || len(content) != 1 {
		t.Fatalf("expected one content item, got %v", result["content"])
	}
	return content[0].Text
}

func TestHandleListTools(t *testing.T) {
	s := newTestServer(t, &stubExecutor{data: map[string]any{}})

	resp := s.handleRequest(Request{JSONRPC: JSONRPCVersion, ID: 1, Method: "tools/list"})
	if resp.Error != nil {
		t.Fatalf("tools/list failed: %+v", resp.Error)
	}

	result := resp.Result.(map[string]any)
	tools := result["tools"].([]ToolDefinition)
	if len(tools) != 9 {
		t.Fatalf("expected 9 tools, got %d", len(tools))
	}

	names := map[string]bool{}
	for _, tool := range tools {
		names[tool.Name] = true
		if tool.Description == "" {
			t.Errorf("tool %s has no description", tool.Name)
		}
	}
	for _, required := range []string{"get_system_info", "get_array_status", "list_docker_containers", "health_check"} {
		if !names[required] {
			t.Errorf("missing tool %s", required)
		}
	}
}

func TestHandleInitialize(t *testing.T) {
	s := newTestServer(t, &stubExecutor{data: map[string]any{}})

	resp := s.handleRequest(Request{
		JSONRPC: JSONRPCVersion,
		ID:      1,
		Method:  "initialize",
		Params: mustMarshal(map[string]any{
			"protocolVersion": protocolVersion,
			"clientInfo":      map[string]any{"name": "test-client", "version": "1.0.0"},
		}),
	})
	if resp.Error != nil {
		t.Fatalf("initialize failed: %+v", resp.Error)
	}

	result := resp.Result.(map[string]any)
	if result["protocolVersion"] != protocolVersion {
		t.Errorf("wrong protocol version: %v", result["protocolVersion"])
	}
}

func TestHandleUnknownMethod(t *testing.T) {
	s := newTestServer(t, &stubExecutor{data: map[string]any{}})

	resp := s.handleRequest(Request{JSONRPC: JSONRPCVersion, ID: 1, Method: "bogus/method"})
	if resp.Error == nil || resp.Error.Code != MethodNotFound {
		t.Fatalf("expected MethodNotFound, got %+v", resp.Error)
	}
}

func TestCallToolUnknownNameReturnsTextError(t *testing.T) {
	s := newTestServer(t, &stubExecutor{data: map[string]any{}})

	text := callToolText(t, s, "nonexistent")
	if !strings.HasPrefix(text, "Error: ") {
		t.Fatalf("expected textual error payload, got %q", text)
	}
	if !strings.Contains(text, "Unknown tool: nonexistent") {
		t.Errorf("unexpected message: %q", text)
	}
}

func TestCallToolOperationFailureReturnsTextError(t *testing.T) {
	s := newTestServer(t, &stubExecutor{err: errors.New("connection refused")})

	text := callToolText(t, s, "get_system_info")
	if !strings.HasPrefix(text, "Error: ") {
		t.Fatalf("expected textual error payload, got %q", text)
	}
	if !strings.Contains(text, "Failed to retrieve system information") {
		t.Errorf("missing operation wrap: %q", text)
	}
}

func TestCallToolSystemInfo(t *testing.T) {
	s := newTestServer(t, &stubExecutor{data: map[string]any{
		"info": map[string]any{
			"cpu": map[string]any{"manufacturer": "Intel", "brand": "i7", "cores": float64(8), "threads": float64(16)},
		},
	}})

	text := callToolText(t, s, "get_system_info")

	var report map[string]any
	if err := json.Unmarshal([]byte(text), &report); err != nil {
		t.Fatalf("result is not pretty-printed JSON: %v", err)
	}
	summary := report["summary"].(map[string]any)
	if summary["cpu"] != "Intel i7 (8 cores, 16 threads)" {
		t.Errorf("wrong cpu summary: %v", summary["cpu"])
	}
}

func TestCallToolContainersReturnsRawList(t *testing.T) {
	s := newTestServer(t, &stubExecutor{data: map[string]any{
		"docker": map[string]any{
			"containers": []any{
				map[string]any{"id": "1", "state": "running"},
			},
		},
	}})

	text := callToolText(t, s, "list_docker_containers")

	// The tool channel returns the raw sequence, not a summary wrapper.
	var containers []map[string]any
	if err := json.Unmarshal([]byte(text), &containers); err != nil {
		t.Fatalf("expected a JSON array, got %q", text)
	}
	if len(containers) != 1 || containers[0]["id"] != "1" {
		t.Errorf("unexpected containers payload: %v", containers)
	}
}

func TestCallToolHealthCheckNeverFails(t *testing.T) {
	s := newTestServer(t, &stubExecutor{err: errors.New("dial tcp: connection refused")})

	text := callToolText(t, s, "health_check")
	if strings.HasPrefix(text, "Error: ") {
		t.Fatalf("health_check must not produce an error payload, got %q", text)
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload["status"] != "unhealthy" {
		t.Errorf("expected unhealthy status, got %v", payload["status"])
	}
	if _, ok := payload["error"]; !ok {
		t.Error("unhealthy payload missing error field")
	}
}

func TestStartProcessesRequestStream(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"method":"ping"}
{"jsonrpc":"2.0","method":"notifications/initialized"}
{"jsonrpc":"2.0","id":2,"method":"tools/list"}
`
	service, err := unraid.NewService(&stubExecutor{data: map[string]any{}}, unraid.ToolOptions(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	var out bytes.Buffer
	s := NewStdioServer(service, strings.NewReader(input), &out, zerolog.Nop())
	if err := s.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 responses (notification gets none), got %d: %v", len(lines), lines)
	}

	var first Response
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("first response not JSON: %v", err)
	}
	if first.Error != nil {
		t.Errorf("ping failed: %+v", first.Error)
	}
}

func TestStartRecoversFromParseError(t *testing.T) {
	input := `this is not json
{"jsonrpc":"2.0","id":1,"method":"ping"}
`
	service, err := unraid.NewService(&stubExecutor{data: map[string]any{}}, unraid.ToolOptions(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	var out bytes.Buffer
	s := NewStdioServer(service, strings.NewReader(input), &out, zerolog.Nop())
	if err := s.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	if !strings.Contains(out.String(), "Parse error") {
		t.Errorf("expected a parse error response, got %q", out.String())
	}
}
