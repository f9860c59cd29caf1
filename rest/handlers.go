package rest

import (
	"net/http"

	"github.com/termfx/unbridge/mcp"
)

// handleRoot serves the capability index.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"name":      "Unraid MCP Server",
		"version":   "1.0.0",
		"transport": "HTTP",
		"endpoints": map[string]string{
			"/health":                 "Health check",
			"/system-info":            "Get system information",
			"/array-status":           "Get array status",
			"/docker/containers":      "List Docker containers",
			"/network-config":         "Get network configuration",
			"/registration":           "Get registration information",
			"/shares":                 "List user shares",
			"/vms":                    "List virtual machines",
			"/notifications/overview": "Get notifications overview",
			"/tools":                  "List available tools",
		},
	})
}

// handleTools serves the tool catalog as name/description pairs.
func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	definitions := mcp.GetToolDefinitions()
	tools := make([]entry, len(definitions))
	for i, def := range definitions {
		tools[i] = entry{Name: def.Name, Description: def.Description}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"tools": tools})
}

// handleHealth reports 200 with a healthy payload or 503 with an unhealthy
// one. An upstream failure is a response here, not an error.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	payload, healthy := s.service.Health(r.Context())
	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, status, payload)
}

func (s *Server) handleSystemInfo(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.SystemInfo(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleArrayStatus(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.ArrayStatus(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleDockerContainers(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.DockerContainers(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleNetworkConfig(w http.ResponseWriter, r *http.Request) {
	network, err := s.service.NetworkConfig(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, network)
}

func (s *Server) handleRegistration(w http.ResponseWriter, r *http.Request) {
	registration, err := s.service.RegistrationInfo(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, registration)
}

func (s *Server) handleShares(w http.ResponseWriter, r *http.Request) {
	shares, err := s.service.Shares(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, shares)
}

func (s *Server) handleVMs(w http.ResponseWriter, r *http.Request) {
	vms, err := s.service.VMs(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, vms)
}

func (s *Server) handleNotificationsOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.service.NotificationsOverview(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, overview)
}
