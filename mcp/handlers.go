package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/termfx/unbridge/graphql"
)

// handleInitialize handles the initialization handshake.
func (s *StdioServer) handleInitialize(req Request) Response {
	var params struct {
		ProtocolVersion string `json:"protocolVersion"`
		ClientInfo      struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"clientInfo"`
	}

	if req.Params != nil {
		json.Unmarshal(req.Params, &params)
		s.log.Debug().
			Str("client", params.ClientInfo.Name).
			Str("client_version", params.ClientInfo.Version).
			Str("protocol", params.ProtocolVersion).
			Msg("client connected")
	}

	return SuccessResponse(req.ID, map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{
				"listChanged": false,
			},
		},
		"serverInfo": map[string]any{
			"name":    "unbridge",
			"version": "0.1.0",
		},
	})
}

// handleInitialized confirms initialization complete.
func (s *StdioServer) handleInitialized(req Request) Response {
	s.log.Debug().Msg("initialization complete")
	if req.ID == nil {
		// Notification, response is never sent.
		return Response{}
	}
	return SuccessResponse(req.ID, map[string]any{})
}

// handleListTools returns the tool catalog to the client.
func (s *StdioServer) handleListTools(req Request) Response {
	return SuccessResponse(req.ID, map[string]any{
		"tools": GetToolDefinitions(),
	})
}

// handleCallTool executes a tool and reports the outcome as text content.
// This channel never surfaces a protocol fault for a failed operation: an
// unknown name or an upstream error becomes an "Error: ..." payload.
func (s *StdioServer) handleCallTool(req Request) Response {
	var params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}

	if err := json.Unmarshal(req.Params, &params); err != nil {
		return ErrorResponse(req.ID, InvalidParams, "Invalid params structure")
	}

	s.log.Debug().Str("tool", params.Name).Msg("calling tool")

	s.mu.RLock()
	handler, exists := s.tools[params.Name]
	s.mu.RUnlock()

	if !exists {
		err := graphql.UnknownTool(params.Name)
		return SuccessResponse(req.ID, textResult("Error: "+err.Error()))
	}

	result, err := handler(params.Arguments)
	if err != nil {
		s.log.Error().Str("tool", params.Name).Err(err).Msg("tool failed")
		return SuccessResponse(req.ID, textResult("Error: "+err.Error()))
	}

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return SuccessResponse(req.ID, textResult(fmt.Sprintf("Error: failed to encode result: %v", err)))
	}

	return SuccessResponse(req.ID, textResult(string(pretty)))
}

// registerBuiltinTools binds every gateway operation to its tool name.
// Arguments are accepted but unused; all operations are snapshots.
func (s *StdioServer) registerBuiltinTools() {
	s.RegisterTool("get_system_info", func(_ json.RawMessage) (any, error) {
		return s.service.SystemInfo(context.Background())
	})
	s.RegisterTool("get_array_status", func(_ json.RawMessage) (any, error) {
		return s.service.ArrayStatus(context.Background())
	})
	s.RegisterTool("list_docker_containers", func(_ json.RawMessage) (any, error) {
		report, err := s.service.DockerContainers(context.Background())
		if err != nil {
			return nil, err
		}
		// Tool clients get the raw container sequence alone.
		return report.Containers, nil
	})
	s.RegisterTool("health_check", func(_ json.RawMessage) (any, error) {
		payload, _ := s.service.Health(context.Background())
		return payload, nil
	})
	s.RegisterTool("get_network_config", func(_ json.RawMessage) (any, error) {
		return s.service.NetworkConfig(context.Background())
	})
	s.RegisterTool("get_registration_info", func(_ json.RawMessage) (any, error) {
		return s.service.RegistrationInfo(context.Background())
	})
	s.RegisterTool("get_shares_info", func(_ json.RawMessage) (any, error) {
		return s.service.Shares(context.Background())
	})
	s.RegisterTool("list_vms", func(_ json.RawMessage) (any, error) {
		return s.service.VMs(context.Background())
	})
	s.RegisterTool("get_notifications_overview", func(_ json.RawMessage) (any, error) {
		return s.service.NotificationsOverview(context.Background())
	})
}
