// Package config builds the gateway's one configuration struct from the
// process environment. Request-handling code never reads the environment;
// everything flows from here at startup.
package config

import (
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/termfx/unbridge/graphql"
)

// Config holds everything the gateway needs at startup.
type Config struct {
	// Upstream GraphQL API.
	APIURL    string
	APIKey    string
	VerifySSL bool
	Timeout   time.Duration

	// HTTP front end listener.
	Host string
	Port int

	LogLevel string
}

// FromEnv reads the environment once. A missing API URL or key is a fatal
// configuration error; everything else has a default.
func FromEnv() (*Config, error) {
	apiURL := os.Getenv("UNRAID_API_URL")
	apiKey := os.Getenv("UNRAID_API_KEY")
	if apiURL == "" || apiKey == "" {
		return nil, graphql.ConfigError("UNRAID_API_URL and UNRAID_API_KEY must be set")
	}

	cfg := &Config{
		APIURL:    apiURL,
		APIKey:    apiKey,
		VerifySSL: parseBool(getenv("UNRAID_VERIFY_SSL", "true")),
		Timeout:   30 * time.Second,
		Host:      getenv("UNRAID_MCP_HOST", "0.0.0.0"),
		Port:      6970,
		LogLevel:  getenv("UNRAID_MCP_LOG_LEVEL", "info"),
	}

	if raw := os.Getenv("UNRAID_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, graphql.ConfigError("UNRAID_TIMEOUT must be a duration, e.g. 30s")
		}
		cfg.Timeout = timeout
	}

	if raw := os.Getenv("UNRAID_MCP_PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port < 1 || port > 65535 {
			return nil, graphql.ConfigError("UNRAID_MCP_PORT must be a port number")
		}
		cfg.Port = port
	}

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseBool treats "false", "0" and "no" as false, anything else as true,
// matching the upstream project's UNRAID_VERIFY_SSL convention.
func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "false", "0", "no":
		return false
	default:
		return true
	}
}
