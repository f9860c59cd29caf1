// Package graphql implements the single-shot GraphQL executor used by every
// gateway operation: one POST per call, no retries, structured failures.
package graphql

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const userAgent = "unbridge/0.1.0"

// Executor is the upstream contract the operation handlers depend on.
// The concrete Client satisfies it; tests substitute their own.
type Executor interface {
	Execute(ctx context.Context, query string, variables map[string]any) (map[string]any, error)
}

// ClientOptions configures a Client. Endpoint and APIKey are required;
// Timeout bounds the whole round trip.
type ClientOptions struct {
	Endpoint           string
	APIKey             string
	Timeout            time.Duration
	InsecureSkipVerify bool
	Logger             zerolog.Logger
}

// Client issues GraphQL queries to a single upstream endpoint.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	log      zerolog.Logger
}

// NewClient builds a Client from options. The underlying http.Client is
// created once; every Execute call reuses it.
func NewClient(opts ClientOptions) *Client {
	transport := http.DefaultTransport
	if opts.InsecureSkipVerify {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return &Client{
		endpoint: opts.Endpoint,
		apiKey:   opts.APIKey,
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		log: opts.Logger,
	}
}

// envelope is the upstream response shape: data, or errors, or both.
// A non-empty errors array fails the request regardless of data.
type envelope struct {
	Data   map[string]any `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Execute sends one query with optional variables and returns the data
// object. Failures map to the closed kind set in errors.go; nothing is
// retried or suppressed.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) (map[string]any, error) {
	body := map[string]any{"query": query}
	if len(variables) > 0 {
		body["variables"] = variables
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, TransportError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, TransportError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("User-Agent", userAgent)

	c.log.Debug().Str("endpoint", c.endpoint).Str("query", truncate(query, 200)).Msg("executing GraphQL request")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, TransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, TransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Error().Int("status", resp.StatusCode).Msg("upstream returned non-success status")
		return nil, HTTPError(resp.StatusCode, string(raw))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, DecodeError(err)
	}

	if len(env.Errors) > 0 {
		messages := make([]string, len(env.Errors))
		for i, e := range env.Errors {
			messages[i] = e.Message
		}
		c.log.Error().Strs("errors", messages).Msg("upstream returned GraphQL errors")
		return nil, QueryError(messages)
	}

	if env.Data == nil {
		return map[string]any{}, nil
	}
	return env.Data, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
