// Package mcp implements the tool-protocol front end: a JSON-RPC 2.0 server
// over stdio exposing the gateway operations as discoverable tools.
package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/termfx/unbridge/unraid"
)

// ToolHandler represents a function that handles a tool call.
type ToolHandler func(params json.RawMessage) (any, error)

// StdioServer handles tool-protocol communication over stdio.
type StdioServer struct {
	service *unraid.Service

	reader *bufio.Reader
	writer *bufio.Writer

	tools map[string]ToolHandler
	mu    sync.RWMutex

	log zerolog.Logger
}

// NewStdioServer creates a server reading requests from in and writing
// responses to out. Logging goes to the supplied logger; out carries only
// protocol frames.
func NewStdioServer(service *unraid.Service, in io.Reader, out io.Writer, logger zerolog.Logger) *StdioServer {
	server := &StdioServer{
		service: service,
		reader:  bufio.NewReader(in),
		writer:  bufio.NewWriter(out),
		tools:   make(map[string]ToolHandler),
		log:     logger,
	}
	server.registerBuiltinTools()
	return server
}

// Start processes JSON-RPC requests until EOF.
func (s *StdioServer) Start() error {
	s.log.Info().Msg("tool-protocol server started")

	decoder := json.NewDecoder(s.reader)

	for {
		var req Request
		err := decoder.Decode(&req)

		if err == io.EOF {
			s.log.Debug().Msg("EOF received, shutting down")
			return nil
		}

		if err != nil {
			if err == io.ErrUnexpectedEOF {
				s.log.Debug().Msg("unexpected EOF, waiting for more data")
				continue
			}

			s.log.Debug().Err(err).Msg("failed to decode request")
			s.sendResponse(ErrorResponse(nil, ParseError, fmt.Sprintf("Parse error: %v", err)))

			// Recover by starting a fresh decoder past the bad input.
			decoder = json.NewDecoder(s.reader)
			continue
		}

		s.log.Debug().Str("method", req.Method).Any("id", req.ID).Msg("received request")

		response := s.handleRequest(req)

		// Notifications expect no response.
		if req.ID != nil {
			s.sendResponse(response)
		}
	}
}

// handleRequest routes requests to the appropriate handlers.
func (s *StdioServer) handleRequest(req Request) Response {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "initialized", "notifications/initialized":
		return s.handleInitialized(req)
	case "ping":
		return SuccessResponse(req.ID, map[string]any{})
	case "tools/list":
		return s.handleListTools(req)
	case "tools/call":
		return s.handleCallTool(req)
	case "prompts/list":
		return SuccessResponse(req.ID, map[string]any{
			"prompts": []any{},
		})
	case "resources/list":
		return SuccessResponse(req.ID, map[string]any{
			"resources": []any{},
		})
	default:
		return ErrorResponse(req.ID, MethodNotFound,
			fmt.Sprintf("Method not found: %s", req.Method))
	}
}

// sendResponse writes a response frame followed by a newline.
func (s *StdioServer) sendResponse(resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal response")
		return
	}

	fmt.Fprintf(s.writer, "%s\n", data)
	s.writer.Flush()
}

// RegisterTool adds a tool handler.
func (s *StdioServer) RegisterTool(name string, handler ToolHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tools[name] = handler
}
