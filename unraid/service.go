// Package unraid implements the gateway's operation handlers. Both front
// ends delegate to the same Service; the places where their responses
// deliberately diverge are explicit Options fields, not duplicated logic.
package unraid

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/termfx/unbridge/graphql"
)

const serverVersion = "1.0.0"

// Options captures the per-front-end response shaping choices.
type Options struct {
	// ServerName is the fixed identifier stamped into health payloads.
	ServerName string

	// IncludeVersions requests versions{unraid} with the system info query
	// and surfaces unraid_version in the summary.
	IncludeVersions bool

	// IncludeCapacity adds formatted capacity figures to the array summary.
	IncludeCapacity bool

	// IncludePorts requests container port mappings.
	IncludePorts bool

	// HealthTimestamps stamps health payloads with the current UTC time.
	HealthTimestamps bool

	// HealthFields extracts machine_id/time into named subfields instead of
	// echoing the whole info object, and adds the version/api_connection
	// fields of the richer health shape.
	HealthFields bool
}

// RESTOptions is the HTTP front end's profile.
func RESTOptions() Options {
	return Options{
		ServerName:       "Unraid MCP Server HTTP",
		IncludeVersions:  true,
		IncludeCapacity:  true,
		IncludePorts:     true,
		HealthTimestamps: true,
		HealthFields:     true,
	}
}

// ToolOptions is the tool-protocol front end's profile.
func ToolOptions() Options {
	return Options{ServerName: "Unraid MCP Server"}
}

// Report pairs a derived summary with the raw payload it came from.
type Report struct {
	Summary map[string]any `json:"summary"`
	Details map[string]any `json:"details"`
}

// ContainerReport is the docker listing result. The HTTP front end returns
// it whole; the tool front end returns Containers alone.
type ContainerReport struct {
	Summary    ContainerSummary `json:"summary"`
	Containers []any            `json:"containers"`
}

// Service executes the read-only gateway operations against one upstream.
type Service struct {
	client graphql.Executor
	opts   Options
	log    zerolog.Logger
}

// NewService builds a Service and checks every fixed query document for
// syntactic validity, so a malformed document fails at startup.
func NewService(client graphql.Executor, opts Options, logger zerolog.Logger) (*Service, error) {
	documents := []string{
		systemInfoQuery(opts.IncludeVersions),
		queryArrayStatus,
		dockerContainersQuery(opts.IncludePorts),
		queryHealthCheck,
		queryNetworkConfig,
		queryRegistrationInfo,
		querySharesInfo,
		queryListVMs,
		queryNotificationsOverview,
	}
	for _, doc := range documents {
		if err := graphql.ValidateDocument(doc); err != nil {
			return nil, err
		}
	}
	return &Service{client: client, opts: opts, log: logger}, nil
}

// SystemInfo retrieves OS, CPU and identity details.
func (s *Service) SystemInfo(ctx context.Context) (*Report, error) {
	s.log.Info().Msg("getting system information")

	data, err := s.client.Execute(ctx, systemInfoQuery(s.opts.IncludeVersions), nil)
	if err != nil {
		return nil, s.fail("get_system_info", "Failed to retrieve system information", err)
	}

	info, ok := data["info"].(map[string]any)
	if !ok || len(info) == 0 {
		err := graphql.NotFound("No system info returned from Unraid API")
		return nil, s.fail("get_system_info", "Failed to retrieve system information", err)
	}

	return &Report{
		Summary: systemSummary(info, s.opts.IncludeVersions),
		Details: info,
	}, nil
}

// ArrayStatus retrieves the storage array state and disk roster.
func (s *Service) ArrayStatus(ctx context.Context) (*Report, error) {
	s.log.Info().Msg("getting array status")

	data, err := s.client.Execute(ctx, queryArrayStatus, nil)
	if err != nil {
		return nil, s.fail("get_array_status", "Failed to retrieve array status", err)
	}

	arr, ok := data["array"].(map[string]any)
	if !ok || len(arr) == 0 {
		err := graphql.NotFound("No array information returned from Unraid API")
		return nil, s.fail("get_array_status", "Failed to retrieve array status", err)
	}

	return &Report{
		Summary: arraySummary(arr, s.opts.IncludeCapacity),
		Details: arr,
	}, nil
}

// DockerContainers lists containers. An absent docker field is an empty
// result, not an error.
func (s *Service) DockerContainers(ctx context.Context) (*ContainerReport, error) {
	s.log.Info().Msg("listing Docker containers")

	data, err := s.client.Execute(ctx, dockerContainersQuery(s.opts.IncludePorts), nil)
	if err != nil {
		return nil, s.fail("list_docker_containers", "Failed to list Docker containers", err)
	}

	containers := []any{}
	if docker, ok := data["docker"].(map[string]any); ok {
		if list, ok := docker["containers"].([]any); ok {
			containers = list
		}
	}

	return &ContainerReport{
		Summary:    containerCounts(containers),
		Containers: containers,
	}, nil
}

// Health probes the upstream with a minimal query. A failure becomes an
// unhealthy payload, never an error; the bool reports which one was built.
func (s *Service) Health(ctx context.Context) (map[string]any, bool) {
	data, err := s.client.Execute(ctx, queryHealthCheck, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("health check failed")
		payload := map[string]any{
			"status": "unhealthy",
			"error":  err.Error(),
		}
		if s.opts.HealthTimestamps {
			payload["timestamp"] = time.Now().UTC().Format(time.RFC3339)
		}
		return payload, false
	}

	info, _ := data["info"].(map[string]any)

	payload := map[string]any{
		"status":         "healthy",
		"server":         s.opts.ServerName,
		"api_connection": "ok",
	}
	if s.opts.HealthTimestamps {
		payload["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	}
	if s.opts.HealthFields {
		payload["version"] = serverVersion
		payload["unraid_system"] = map[string]any{
			"machine_id": info["machineId"],
			"time":       info["time"],
		}
	} else {
		if info == nil {
			info = map[string]any{}
		}
		payload["unraid_system"] = info
	}
	return payload, true
}

// NetworkConfig retrieves network access URL details.
func (s *Service) NetworkConfig(ctx context.Context) (map[string]any, error) {
	s.log.Info().Msg("getting network configuration")

	data, err := s.client.Execute(ctx, queryNetworkConfig, nil)
	if err != nil {
		return nil, s.fail("get_network_config", "Failed to retrieve network configuration", err)
	}
	if network, ok := data["network"].(map[string]any); ok {
		return network, nil
	}
	return map[string]any{}, nil
}

// RegistrationInfo retrieves license registration details.
func (s *Service) RegistrationInfo(ctx context.Context) (map[string]any, error) {
	s.log.Info().Msg("getting registration information")

	data, err := s.client.Execute(ctx, queryRegistrationInfo, nil)
	if err != nil {
		return nil, s.fail("get_registration_info", "Failed to retrieve registration information", err)
	}
	if registration, ok := data["registration"].(map[string]any); ok {
		return registration, nil
	}
	return map[string]any{}, nil
}

// Shares lists user shares.
func (s *Service) Shares(ctx context.Context) ([]any, error) {
	s.log.Info().Msg("getting shares information")

	data, err := s.client.Execute(ctx, querySharesInfo, nil)
	if err != nil {
		return nil, s.fail("get_shares_info", "Failed to retrieve shares information", err)
	}
	if shares, ok := data["shares"].([]any); ok {
		return shares, nil
	}
	return []any{}, nil
}

// VMs lists virtual machine domains. The schema exposes both vms.domains
// and vms.domain; domains wins when present.
func (s *Service) VMs(ctx context.Context) ([]any, error) {
	s.log.Info().Msg("listing virtual machines")

	data, err := s.client.Execute(ctx, queryListVMs, nil)
	if err != nil {
		return nil, s.fail("list_vms", "Failed to list virtual machines", err)
	}
	if vms, ok := data["vms"].(map[string]any); ok {
		if domains, ok := vms["domains"].([]any); ok {
			return domains, nil
		}
		if domain, ok := vms["domain"].([]any); ok {
			return domain, nil
		}
	}
	return []any{}, nil
}

// NotificationsOverview retrieves unread/archive notification counts.
func (s *Service) NotificationsOverview(ctx context.Context) (map[string]any, error) {
	s.log.Info().Msg("getting notifications overview")

	data, err := s.client.Execute(ctx, queryNotificationsOverview, nil)
	if err != nil {
		return nil, s.fail("get_notifications_overview", "Failed to retrieve notifications overview", err)
	}
	if notifications, ok := data["notifications"].(map[string]any); ok {
		if overview, ok := notifications["overview"].(map[string]any); ok {
			return overview, nil
		}
	}
	return map[string]any{}, nil
}

// fail logs an operation failure and wraps it with the operation's message,
// keeping the structured kind reachable through the chain.
func (s *Service) fail(op, message string, err error) error {
	s.log.Error().Str("operation", op).Err(err).Msg("operation failed")
	return fmt.Errorf("%s: %w", message, err)
}
