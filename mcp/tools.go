package mcp

// ToolDefinition describes a tool for the client.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// noArgs is the schema shared by every tool: all operations are read-only
// snapshots and take no arguments.
func noArgs() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

// GetToolDefinitions returns all available tool definitions. The REST front
// end serves the same catalog under /tools.
func GetToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "get_system_info",
			Description: "Get comprehensive Unraid system information including OS, CPU, and memory details",
			InputSchema: noArgs(),
		},
		{
			Name:        "get_array_status",
			Description: "Get current status of the Unraid storage array including capacity and disk health",
			InputSchema: noArgs(),
		},
		{
			Name:        "list_docker_containers",
			Description: "List all Docker containers running on the Unraid system",
			InputSchema: noArgs(),
		},
		{
			Name:        "health_check",
			Description: "Check the health status of the Unraid MCP server and system",
			InputSchema: noArgs(),
		},
		{
			Name:        "get_network_config",
			Description: "Get network configuration details, including access URLs",
			InputSchema: noArgs(),
		},
		{
			Name:        "get_registration_info",
			Description: "Get Unraid license registration details",
			InputSchema: noArgs(),
		},
		{
			Name:        "get_shares_info",
			Description: "Get information about user shares",
			InputSchema: noArgs(),
		},
		{
			Name:        "list_vms",
			Description: "List all virtual machines on the Unraid system and their current state",
			InputSchema: noArgs(),
		},
		{
			Name:        "get_notifications_overview",
			Description: "Get an overview of system notifications, unread and archive counts by severity",
			InputSchema: noArgs(),
		},
	}
}
